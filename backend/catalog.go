package backend

import "sort"

// Catalog maps descriptor keys to backends so serialized handles can be rebuilt.
type Catalog struct {
	entries map[string]Backend
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Backend)}
}

// Register associates b with its key and returns the key.
// A later registration for the same key replaces the earlier one.
func (c *Catalog) Register(b Backend) string {
	key := Key(b)
	c.entries[key] = b

	return key
}

// Lookup returns the backend registered for d.
func (c *Catalog) Lookup(d Descriptor) (Backend, bool) {
	b, ok := c.entries[d.Key()]
	return b, ok
}

// Has reports whether a backend is registered for d.
func (c *Catalog) Has(d Descriptor) bool {
	_, ok := c.entries[d.Key()]
	return ok
}

// Forget removes every backend declared by t and returns how many were removed.
func (c *Catalog) Forget(t TypeID) int {
	removed := 0
	for key, b := range c.entries {
		if b.DeclaringType() == t {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Keys returns the registered keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of registered backends.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Reset removes every backend.
func (c *Catalog) Reset() {
	clear(c.entries)
}
