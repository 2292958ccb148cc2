package builder

import (
	"fmt"
	"sync/atomic"
)

// NameCounter hands out names for class nodes that were given none.
//
// Each Builder owns its counter, so two builds of the same template assign
// the same names ("field_1", "field_2", ...) in the same order.
type NameCounter struct {
	seq    atomic.Int64
	prefix string
}

// NewNameCounter creates a counter starting at 0 that prefixes names with prefix.
func NewNameCounter(prefix string) *NameCounter {
	return &NameCounter{prefix: prefix}
}

// Next returns the next name and advances the counter.
func (c *NameCounter) Next() string {
	return fmt.Sprintf("%s_%d", c.prefix, c.seq.Add(1))
}

// Current returns how many names have been handed out.
func (c *NameCounter) Current() int64 {
	return c.seq.Load()
}
