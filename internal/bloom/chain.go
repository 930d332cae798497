package bloom

import (
	"github.com/gogpu/postfx/render"
)

// level is one buffer of the mip pyramid.
type level struct {
	handle   render.Handle
	desc     render.BufferDescriptor
	borrowed bool
}

// chain is the ownership stack of a single bloom pass. Its capacity is fixed
// at extend+1 levels.
type chain struct {
	levels []level
}

func newChain(capacity int) *chain {
	return &chain{levels: make([]level, 0, capacity)}
}

// push records a level. Pushing beyond capacity is a programming error.
func (c *chain) push(l level) {
	if len(c.levels) == cap(c.levels) {
		panic("bloom: mip chain overflow")
	}
	c.levels = append(c.levels, l)
}

// pop removes and returns the top level.
func (c *chain) pop() level {
	n := len(c.levels)
	if n == 0 {
		panic("bloom: pop from empty mip chain")
	}
	l := c.levels[n-1]
	c.levels[n-1] = level{}
	c.levels = c.levels[:n-1]
	return l
}

// top returns the top level without removing it.
func (c *chain) top() level {
	return c.levels[len(c.levels)-1]
}

// depth returns the number of levels on the stack, including level 0.
func (c *chain) depth() int {
	return len(c.levels)
}
