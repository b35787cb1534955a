package gesture

import "sync/atomic"

// Publisher accepts signals from a producer.
type Publisher interface {
	Publish(Signal)
}

// Cell holds the most recently published signal. Writers overwrite, the
// frame loop reads whatever is there; nothing queues.
// Zero value is ready to use and reads as Neutral.
type Cell struct {
	ptr       atomic.Pointer[Signal]
	published atomic.Uint64
}

// Publish replaces the current signal.
func (c *Cell) Publish(s Signal) {
	c.ptr.Store(&s)
	c.published.Add(1)
}

// Load returns the latest signal, or Neutral if none was published.
func (c *Cell) Load() Signal {
	if p := c.ptr.Load(); p != nil {
		return *p
	}
	return Neutral()
}

// Published returns how many signals have been written to the cell.
func (c *Cell) Published() uint64 {
	return c.published.Load()
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Signal)

// Publish calls f(s).
func (f PublisherFunc) Publish(s Signal) {
	f(s)
}

// Tee publishes every signal to each of pubs in order.
func Tee(pubs ...Publisher) Publisher {
	return PublisherFunc(func(s Signal) {
		for _, p := range pubs {
			p.Publish(s)
		}
	})
}
