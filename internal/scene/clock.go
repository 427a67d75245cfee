package scene

import "sync/atomic"

// handleClock issues object handles in creation order. The first handle is
// 1, so NoHandle never names an object.
type handleClock struct {
	seq atomic.Int64
}

func (c *handleClock) next() Handle {
	return Handle(c.seq.Add(1))
}

// last returns the most recently issued handle, or NoHandle before the first.
func (c *handleClock) last() Handle {
	return Handle(c.seq.Load())
}
