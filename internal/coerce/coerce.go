// Package coerce converts the loosely-typed fields produced by the extraction
// agent into numbers, fractions and dates. Every function here is total:
// malformed input degrades to zero values instead of returning an error.
// Downstream math depends on that, so keep it that way.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Float converts a value to a float64. Currency formatting ("$4,000.00") is
// stripped before parsing. Missing or unparseable values become 0.
func Float(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	}

	cleaned := strings.TrimSpace(fmt.Sprint(value))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// Percent converts a value to a fraction. Numbers above 1 are treated as
// percent-scale and divided by 100; numbers at or below 1 are already
// fractions. Strings have a trailing "%" stripped, then the same rule applies.
func Percent(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return scalePercent(v)
	case float32:
		return scalePercent(float64(v))
	case int:
		return scalePercent(float64(v))
	case int64:
		return scalePercent(float64(v))
	}

	text := strings.TrimSpace(fmt.Sprint(value))
	text = strings.ReplaceAll(text, "%", "")
	return scalePercent(Float(text))
}

func scalePercent(f float64) float64 {
	if f > 1 {
		return f / 100
	}
	return f
}

// dateLayouts are tried in order; the first successful parse wins.
// Non-padded layouts accept both "1/5/2025" and "01/05/2025".
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Date parses a value into a date. The second return is false when the value
// is missing, empty, or matches none of the known layouts.
func Date(value any) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Round2 rounds to 2 decimal places (currency amounts).
func Round2(f float64) float64 {
	return roundTo(f, 100)
}

// Round4 rounds to 4 decimal places (rate fields).
func Round4(f float64) float64 {
	return roundTo(f, 10000)
}

func roundTo(f float64, scale float64) float64 {
	return math.Round(f*scale) / scale
}
