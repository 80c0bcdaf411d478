package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/snapmatch/internal/handler"
	"github.com/roach88/snapmatch/internal/store"
)

// Store is the snapshot storage the matcher needs.
// Read must return *store.NotFoundError for missing keys.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, content []byte) error
}

// Outcome is the terminal state of a match attempt.
type Outcome string

const (
	// OutcomeCreated means no snapshot existed and one was written.
	OutcomeCreated Outcome = "created"

	// OutcomeMatched means the stored snapshot matched.
	OutcomeMatched Outcome = "matched"

	// OutcomeMismatched means the stored snapshot did not match.
	OutcomeMismatched Outcome = "mismatched"

	// OutcomeUpdated means a mismatching snapshot was rewritten on request.
	OutcomeUpdated Outcome = "updated"
)

// Pass reports whether the outcome counts as a passing assertion.
func (o Outcome) Pass() bool {
	return o != OutcomeMismatched
}

// Matcher compares actual values against named snapshots.
type Matcher struct {
	store    Store
	defaults Defaults
	logger   *slog.Logger
	ids      AttemptIDGenerator
}

// NewMatcher creates a matcher over st. A nil logger uses slog.Default().
func NewMatcher(st Store, defaults Defaults, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{
		store:    st,
		defaults: defaults.clone(),
		logger:   logger,
		ids:      UUIDv7Generator{},
	}
}

// Defaults returns a copy of the matcher's defaults.
func (m *Matcher) Defaults() Defaults {
	return m.defaults.clone()
}

// Key returns the storage key for name under the resolved format.
func (m *Matcher) Key(name string, opts Options) (string, error) {
	h, err := handler.For(Resolve(m.defaults, opts).handlerOptions())
	if err != nil {
		return "", err
	}
	return name + h.Extension(), nil
}

// Matches reports whether actual passes against the snapshot called name.
// A missing snapshot is created and counts as a pass.
func (m *Matcher) Matches(ctx context.Context, actual []byte, name string, opts Options) (bool, error) {
	outcome, err := m.Match(ctx, actual, name, opts)
	if err != nil {
		return false, err
	}
	return outcome.Pass(), nil
}

// Match runs one match attempt and returns its terminal state.
//
// The actual value is validated before the store is consulted, so
// malformed input never creates a snapshot. Store errors are returned
// wrapped; nothing is retried.
func (m *Matcher) Match(ctx context.Context, actual []byte, name string, opts Options) (Outcome, error) {
	co := Resolve(m.defaults, opts)
	h, err := handler.For(co.handlerOptions())
	if err != nil {
		return "", err
	}
	key := name + h.Extension()

	log := m.logger.With(
		"attempt", m.ids.Generate(),
		"name", name,
		"format", string(h.Format()),
	)

	actualForm, err := h.Comparable(actual)
	if err != nil {
		return "", withSource(err, "actual")
	}

	exists, err := m.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("check snapshot %q: %w", key, err)
	}

	var stored []byte
	if exists {
		stored, err = m.store.Read(ctx, key)
		if store.IsNotFound(err) {
			// Removed between Exists and Read: treat as absent.
			exists = false
		} else if err != nil {
			return "", fmt.Errorf("read snapshot %q: %w", key, err)
		}
	}

	if !exists {
		if err := m.store.Write(ctx, key, h.Writable(actual)); err != nil {
			return "", fmt.Errorf("create snapshot %q: %w", key, err)
		}
		log.Info("snapshot created", "key", key)
		return OutcomeCreated, nil
	}

	storedForm, err := h.Comparable(stored)
	if err != nil {
		return "", withSource(err, "stored")
	}

	if h.Compare(storedForm, actualForm) {
		log.Debug("snapshot matched", "key", key)
		return OutcomeMatched, nil
	}

	if co.Update() {
		if err := m.store.Write(ctx, key, h.Writable(actual)); err != nil {
			return "", fmt.Errorf("update snapshot %q: %w", key, err)
		}
		log.Info("snapshot updated", "key", key)
		return OutcomeUpdated, nil
	}

	log.Debug("snapshot mismatched", "key", key)
	return OutcomeMismatched, nil
}

func withSource(err error, source string) error {
	var me *handler.MalformedInputError
	if errors.As(err, &me) {
		tagged := *me
		tagged.Source = source
		return &tagged
	}
	return err
}
