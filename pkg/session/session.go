// Package session holds the working state of an editing session: the active
// configuration name, its rule list, and the store they persist to.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/log"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/store"
)

var (
	// ErrExists indicates a configuration name that is already taken.
	ErrExists = errors.New("configuration already exists")
	// ErrNoActive indicates an edit without an active configuration.
	ErrNoActive = errors.New("no active configuration")
)

// Session is the single writer of a rule list. Every edit is persisted
// synchronously; a failed persist is returned but the edit is kept.
type Session struct {
	store  *store.Store
	engine *engine.Engine
	name   string
	rules  rule.List
}

// Open creates a [Session] and restores the last-active configuration, if
// one is recorded and can be loaded.
func Open(s *store.Store, e *engine.Engine) *Session {
	if e == nil {
		e = engine.New()
	}

	sess := &Session{store: s, engine: e}

	name, ok := s.LoadLastActive()
	if !ok {
		return sess
	}

	rules, ok := s.Load(name)
	if !ok {
		slog.Debug("last active configuration not found", slog.String("name", name))

		return sess
	}

	sess.name = name
	sess.rules = rules

	return sess
}

// Store returns the backing store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Name returns the active configuration name, or "" when none is active.
func (s *Session) Name() string {
	return s.name
}

// Active reports whether a configuration is active.
func (s *Session) Active() bool {
	return s.name != ""
}

// Rules returns a copy of the active rule list.
func (s *Session) Rules() rule.List {
	return s.rules.Clone()
}

// New creates an empty configuration, persists it, and makes it active.
func (s *Session) New(name string) error {
	err := store.ValidateName(name)
	if err != nil {
		return err //nolint:wrapcheck // Already describes the name.
	}

	if s.store.Exists(name) {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}

	s.name = name
	s.rules = rule.List{}

	err = s.store.Save(name, s.rules)
	if err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}

	return s.markActive()
}

// Load replaces the rule list with the named configuration and makes it
// active. The session is unchanged if the configuration cannot be loaded.
func (s *Session) Load(name string) error {
	rules, ok := s.store.Load(name)
	if !ok {
		return fmt.Errorf("load %q: %w", name, store.ErrNotFound)
	}

	s.name = name
	s.rules = rules

	return s.markActive()
}

// Delete removes the named configuration. If it was active, the first
// remaining configuration (by name) is loaded in its place, or the session
// is left with none active. If only the last-active pointer named it, the
// pointer is repaired and the session is unchanged.
func (s *Session) Delete(name string) error {
	err := s.store.Delete(name)
	if err != nil {
		return err //nolint:wrapcheck // Already describes the name.
	}

	if name == s.name {
		return s.reassign(name)
	}

	last, ok := s.store.LoadLastActive()
	if !ok || last != name {
		return nil
	}

	if s.Active() {
		return s.markActive()
	}

	next, _, ok := s.firstLoadable()
	if !ok {
		return s.clearActive(name)
	}

	err = s.store.SaveLastActive(next)
	if err != nil {
		return fmt.Errorf("mark %q active: %w", next, err)
	}

	return nil
}

// reassign makes the first loadable configuration active after deleted was
// removed, or leaves none active.
func (s *Session) reassign(deleted string) error {
	next, rules, ok := s.firstLoadable()
	if !ok {
		s.name = ""
		s.rules = nil

		return s.clearActive(deleted)
	}

	slog.Debug("reassigning active configuration",
		slog.String("deleted", deleted),
		slog.String("active", next),
	)

	s.name = next
	s.rules = rules

	return s.markActive()
}

func (s *Session) firstLoadable() (string, rule.List, bool) {
	for _, name := range s.store.Names() {
		rules, ok := s.store.Load(name)
		if ok {
			return name, rules, true
		}
	}

	return "", nil, false
}

func (s *Session) clearActive(deleted string) error {
	err := s.store.ClearLastActive()
	if err != nil {
		return fmt.Errorf("delete %q: %w", deleted, err)
	}

	return nil
}

// AddRule appends r.
func (s *Session) AddRule(r rule.Rule) error {
	if !s.Active() {
		return ErrNoActive
	}

	s.rules.Add(r)

	return s.persist()
}

// InsertRule inserts r before index i.
func (s *Session) InsertRule(i int, r rule.Rule) error {
	if !s.Active() {
		return ErrNoActive
	}

	err := s.rules.Insert(i, r)
	if err != nil {
		return err //nolint:wrapcheck // Already describes the index.
	}

	return s.persist()
}

// UpdateRule replaces the rule at index i.
func (s *Session) UpdateRule(i int, r rule.Rule) error {
	if !s.Active() {
		return ErrNoActive
	}

	err := s.rules.Update(i, r)
	if err != nil {
		return err //nolint:wrapcheck // Already describes the index.
	}

	return s.persist()
}

// DeleteRule removes the rule at index i.
func (s *Session) DeleteRule(i int) error {
	if !s.Active() {
		return ErrNoActive
	}

	err := s.rules.Delete(i)
	if err != nil {
		return err //nolint:wrapcheck // Already describes the index.
	}

	return s.persist()
}

// MoveRule moves the rule at index i by one position and returns its new
// index. Moving past either end is a no-op and is not persisted.
func (s *Session) MoveRule(i, delta int) (int, error) {
	if !s.Active() {
		return i, ErrNoActive
	}

	j, err := s.rules.Move(i, delta)
	if err != nil {
		return i, err //nolint:wrapcheck // Already describes the index.
	}

	if j == i {
		return j, nil
	}

	return j, s.persist()
}

// Apply runs the active rule list against p.
func (s *Session) Apply(ctx context.Context, p engine.Provider) *engine.Report {
	log.WithContext(ctx).Debug("applying configuration", slog.String("name", s.name))

	return s.engine.ApplyAll(ctx, s.rules, p)
}

// DirectApply loads the last-active configuration from st and applies it to
// p, without an editing session. It reports [engine.ReasonNoRules] when no
// configuration can be loaded.
func DirectApply(ctx context.Context, st *store.Store, e *engine.Engine, p engine.Provider) *engine.Report {
	return Open(st, e).Apply(ctx, p)
}

func (s *Session) persist() error {
	err := s.store.Save(s.name, s.rules)
	if err != nil {
		return fmt.Errorf("persist %q: %w", s.name, err)
	}

	return nil
}

func (s *Session) markActive() error {
	err := s.store.SaveLastActive(s.name)
	if err != nil {
		return fmt.Errorf("mark %q active: %w", s.name, err)
	}

	return nil
}
