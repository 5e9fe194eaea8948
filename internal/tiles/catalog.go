package tiles

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is returned when catalog entries are malformed.
var ErrInvalidCatalog = errors.New("tiles: invalid catalog")

// Catalog holds the ordered set of tile variants a map may use.
type Catalog struct {
	variants []*Variant
	byID     map[string]*Variant
}

// NewCatalog validates the variants and builds a catalog over them.
// Order is preserved; it determines domain order and therefore which
// variant a given random draw selects.
func NewCatalog(variants []*Variant) (*Catalog, error) {
	catalog := &Catalog{
		variants: make([]*Variant, 0, len(variants)),
		byID:     make(map[string]*Variant, len(variants)),
	}
	for i, v := range variants {
		if v == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrInvalidCatalog, i)
		}
		if v.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := catalog.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, v.ID)
		}
		if !v.Road && (v.Connect.Top || v.Connect.Bottom || v.Connect.Left || v.Connect.Right) {
			return nil, fmt.Errorf("%w: %q connects but is not a road", ErrInvalidCatalog, v.ID)
		}
		catalog.variants = append(catalog.variants, v)
		catalog.byID[v.ID] = v
	}
	return catalog, nil
}

// All returns the variants in catalog order. The slice is a copy.
func (c *Catalog) All() []*Variant {
	out := make([]*Variant, len(c.variants))
	copy(out, c.variants)
	return out
}

// Roads returns the road variants in catalog order.
func (c *Catalog) Roads() []*Variant {
	var out []*Variant
	for _, v := range c.variants {
		if v.Road {
			out = append(out, v)
		}
	}
	return out
}

// GetByID returns the variant with the given ID, or nil if not found.
func (c *Catalog) GetByID(id string) *Variant {
	return c.byID[id]
}

// Count returns the number of variants in the catalog.
func (c *Catalog) Count() int {
	return len(c.variants)
}
