// Package price is the injected stock-price collaborator. The core only
// depends on the Source interface; real quote feeds plug in at the boundary.
package price

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Source resolves an employer name to a share price. Unknown employers
// resolve to 0; a zero price is never an error.
type Source interface {
	Lookup(employerName string) float64
}

// StaticTable is a fixed employer→price table with case-insensitive
// substring matching on the employer name.
type StaticTable struct {
	prices map[string]float64
}

// NewStaticTable returns the built-in demo table.
func NewStaticTable() *StaticTable {
	return &StaticTable{
		prices: map[string]float64{
			"apex": 150.00,
		},
	}
}

// Lookup returns the price for the first table key contained in the employer
// name, or 0 when nothing matches.
func (t *StaticTable) Lookup(employerName string) float64 {
	if employerName == "" {
		return 0
	}
	lowered := strings.ToLower(employerName)
	for key, price := range t.prices {
		if strings.Contains(lowered, key) {
			return price
		}
	}
	return 0
}

// Cached wraps a Source with a TTL cache so repeated analyses of the same
// employer do not hit a slow upstream feed.
type Cached struct {
	src   Source
	cache *gocache.Cache
}

// NewCached caches lookups from src for ttl.
func NewCached(src Source, ttl time.Duration) *Cached {
	return &Cached{
		src:   src,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Lookup returns the cached price when fresh, consulting src otherwise.
// Zero prices are cached too: an unknown employer stays unknown for the TTL.
func (c *Cached) Lookup(employerName string) float64 {
	key := strings.ToLower(strings.TrimSpace(employerName))
	if v, found := c.cache.Get(key); found {
		return v.(float64)
	}
	price := c.src.Lookup(employerName)
	c.cache.Set(key, price, gocache.DefaultExpiration)
	return price
}
