package snapshot

import "github.com/google/uuid"

// AttemptIDGenerator produces the id that tags every log line of one
// match attempt.
type AttemptIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 attempt ids.
type UUIDv7Generator struct{}

// Generate panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithAttemptIDs replaces the attempt id generator and returns m.
// Must be called before the matcher is shared between goroutines.
func (m *Matcher) WithAttemptIDs(gen AttemptIDGenerator) *Matcher {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	m.ids = gen
	return m
}
