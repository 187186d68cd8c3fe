package view

import (
	"sync"

	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/textstyle/decoration"
)

type channel struct {
	kind  gvfocus.ChannelKind
	style decoration.Style

	mu       sync.Mutex
	disposed bool
	release  func()
}

func (c *channel) Kind() gvfocus.ChannelKind {
	return c.kind
}

func (c *channel) Style() decoration.Style {
	return c.style
}

// Dispose releases the channel. Disposing twice is a no-op.
func (c *channel) Dispose() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	c.disposed = true
	if c.release != nil {
		c.release()
	}
	return nil
}

func (c *channel) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
