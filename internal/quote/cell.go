package quote

import "sync"

// Cell holds the quote currently on display. It is replaced, never appended to.
type Cell struct {
	mu sync.RWMutex
	q  Quote
}

func NewCell() *Cell {
	return &Cell{}
}

func (c *Cell) Set(q Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q = q
}

func (c *Cell) Get() Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.q
}
