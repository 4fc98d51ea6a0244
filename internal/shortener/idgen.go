package shortener

import (
	"fmt"
	"math"
)

// IDGenerator issues identifiers for new registry entries.
type IDGenerator interface {
	Next() (int64, error)
}

// Counter issues a strictly increasing sequence starting at a seed.
// It is not safe for concurrent use; Service serializes access.
type Counter struct {
	next      int64
	exhausted bool
}

func NewCounter(start int64) (*Counter, error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: negative start id %d", ErrInvalidArgument, start)
	}
	return &Counter{next: start}, nil
}

// Next returns the current value and advances the counter.
// MaxInt64 is the last value issued; every call after it fails.
func (c *Counter) Next() (int64, error) {
	if c.exhausted {
		return 0, ErrIDExhausted
	}
	id := c.next
	if id == math.MaxInt64 {
		c.exhausted = true
	} else {
		c.next++
	}
	return id, nil
}

// Peek returns the value the next call to Next will issue.
func (c *Counter) Peek() int64 {
	return c.next
}
