package model

import (
	"reflect"
	"sync"
	"sync/atomic"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// Cache memoizes reflected accessors per struct type. Entries live for the
// lifetime of the cache; there is no eviction.
type Cache struct {
	entries sync.Map // reflect.Type -> *cacheEntry
	size    atomic.Int64
}

type cacheEntry struct {
	fields []pkgmodel.FieldAccessor
	err    error
}

// NewCache returns an empty accessor cache.
func NewCache() *Cache {
	return &Cache{}
}

// Fields returns the accessors for typ, reflecting them on first use.
func (c *Cache) Fields(typ reflect.Type) ([]pkgmodel.FieldAccessor, error) {
	typ = pkgmodel.Indirect(typ)
	if c == nil {
		return reflectFields(typ)
	}
	if v, ok := c.entries.Load(typ); ok {
		entry := v.(*cacheEntry)
		return entry.fields, entry.err
	}
	fields, err := reflectFields(typ)
	actual, loaded := c.entries.LoadOrStore(typ, &cacheEntry{fields: fields, err: err})
	if !loaded {
		c.size.Add(1)
	}
	entry := actual.(*cacheEntry)
	return entry.fields, entry.err
}

// Len reports how many types have been reflected.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return int(c.size.Load())
}
