package fx

import "sync"

// Cache loads each rate table once per distinct location and keeps it for the
// lifetime of the run. It is an explicit object rather than package state so
// tests can use synthetic tables and two runs never share hidden state.
// There is no invalidation: a process that needs fresh rates restarts.
type Cache struct {
	mu     sync.Mutex
	tables map[string]*Table
}

// NewCache returns an empty table cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[string]*Table)}
}

// Table returns the rate table at the given file location, loading it on
// first use.
func (c *Cache) Table(path string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[path]; ok {
		return t, nil
	}
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.tables[path] = t
	return t, nil
}
