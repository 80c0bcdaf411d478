// Package testutil holds deterministic helpers shared by tests.
package testutil

import "sync"

// FixedIDs returns the same attempt id on every call.
// Safe for concurrent use.
type FixedIDs struct {
	id string
}

// NewFixedIDs creates a generator for id. An empty id becomes
// "test-attempt-default".
func NewFixedIDs(id string) *FixedIDs {
	if id == "" {
		id = "test-attempt-default"
	}
	return &FixedIDs{id: id}
}

func (g *FixedIDs) Generate() string {
	return g.id
}

// SequenceIDs returns predetermined ids in order and panics once they
// are used up, so a test that makes more attempts than expected fails
// loudly.
type SequenceIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

func NewSequenceIDs(ids ...string) *SequenceIDs {
	return &SequenceIDs{ids: ids}
}

func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("SequenceIDs: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
