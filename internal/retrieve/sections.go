package retrieve

import (
	"regexp"
	"strings"

	"github.com/rlevin/matchpoint/internal/model"
)

// defaultKeywords mark handbook text as relevant to match and vesting policy.
// Matching is case-insensitive substring containment.
var defaultKeywords = []string{
	"match",
	"contribute",
	"employer contribution",
	"tiered",
	"%",
	"vesting",
	"cliff",
	"graded",
}

var (
	sectionHeadingRE = regexp.MustCompile(`(?i)section\s+\d+(\.\d+)?\s*:`)
	percentLiteralRE = regexp.MustCompile(`\d+(\.\d+)?%`)
)

// SectionExtractor isolates the policy-bearing parts of a handbook without
// chunking. Heading-bounded blocks are preferred; sentence windows around
// keyword hits are the fallback when no heading block qualifies.
type SectionExtractor struct {
	keywords []string
}

// NewSectionExtractor uses the default keyword set.
func NewSectionExtractor() *SectionExtractor {
	return &SectionExtractor{keywords: defaultKeywords}
}

// Sections returns the unique policy sections in first-seen order and whether
// conflicting percentage figures were detected across them.
func (e *SectionExtractor) Sections(text string) ([]string, bool) {
	normalized := normalize(text)
	if normalized == "" {
		return nil, false
	}

	blocks := headingBlocks(normalized)
	var hits []string
	for _, block := range blocks {
		if e.hasKeyword(block) {
			hits = append(hits, block)
		}
	}
	if len(hits) == 0 {
		hits = e.keywordWindows(normalized)
	}

	var unique []string
	seen := make(map[string]struct{}, len(hits))
	for _, block := range hits {
		trimmed := strings.TrimSpace(block)
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		unique = append(unique, trimmed)
	}

	return unique, detectConflicts(unique)
}

func (e *SectionExtractor) hasKeyword(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range e.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// headingBlocks splits the text at "Section N[.M]:" headings. Each block runs
// from its heading to the next heading or end of text.
func headingBlocks(text string) []string {
	locs := sectionHeadingRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		start := loc[0]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, strings.TrimSpace(text[start:end]))
	}
	return blocks
}

// keywordWindows emits a window of sentences [i-1, i+3) around every sentence
// containing a keyword.
func (e *SectionExtractor) keywordWindows(text string) []string {
	sentences := splitSentences(text)
	var windows []string
	for i, sentence := range sentences {
		if !e.hasKeyword(sentence) {
			continue
		}
		start := i - 1
		if start < 0 {
			start = 0
		}
		end := i + 3
		if end > len(sentences) {
			end = len(sentences)
		}
		windows = append(windows, strings.TrimSpace(strings.Join(sentences[start:end], " ")))
	}
	return windows
}

// splitSentences splits on ./!/? boundaries followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && runes[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// detectConflicts collects every literal percentage substring across the
// sections; more than one distinct literal means the handbook quotes
// competing figures.
func detectConflicts(sections []string) bool {
	distinct := make(map[string]struct{})
	for _, section := range sections {
		for _, m := range percentLiteralRE.FindAllString(section, -1) {
			distinct[m] = struct{}{}
		}
	}
	return len(distinct) > 1
}

// Confidence classifies how trustworthy a policy answer is: low when no
// sections were found, medium when conflicts were detected or the leading
// section is thin, high otherwise.
func Confidence(sections []string, conflicts bool) string {
	if len(sections) == 0 {
		return model.ConfidenceLow
	}
	if conflicts {
		return model.ConfidenceMedium
	}
	if len(sections[0]) < 300 {
		return model.ConfidenceMedium
	}
	return model.ConfidenceHigh
}
