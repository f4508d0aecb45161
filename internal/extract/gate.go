package extract

import "sync/atomic"

// Gate is the shared quota state for one pipeline run. It transitions
// one-way from open to exhausted and is never reset; once tripped, the
// model path stays off for the remainder of the process.
type Gate struct {
	exhausted atomic.Bool
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{}
}

// Trip marks the quota as exhausted.
func (g *Gate) Trip() {
	g.exhausted.Store(true)
}

// Exhausted reports whether the quota has been exhausted.
func (g *Gate) Exhausted() bool {
	return g.exhausted.Load()
}
