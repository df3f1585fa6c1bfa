package personid

import "sync/atomic"

// AtomicGenerator has the contract of Generator but may be shared
// between goroutines.
type AtomicGenerator struct {
	last atomic.Int64
}

func NewAtomicGenerator(start ID, existing []ID) *AtomicGenerator {
	g := &AtomicGenerator{}
	g.last.Store(int64(seed(start, existing)) - 1)
	return g
}

func (g *AtomicGenerator) Next() ID {
	return ID(g.last.Add(1))
}

// Peek returns the id the next call to Next will issue, unless another
// goroutine gets there first.
func (g *AtomicGenerator) Peek() ID {
	return ID(g.last.Load() + 1)
}
