package session_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/session"
	"github.com/macropower/trackhue/pkg/store"
	"github.com/macropower/trackhue/pkg/track"
)

var (
	red  = color.RGB(255, 0, 0)
	blue = color.RGB(0, 0, 255)
)

type memProvider struct {
	colors map[string]color.Color
	tracks []track.Track
}

func newMemProvider(names ...string) *memProvider {
	p := &memProvider{colors: map[string]color.Color{}}
	for _, name := range names {
		p.tracks = append(p.tracks, track.Track{ID: name, Name: name})
	}

	return p
}

func (p *memProvider) Tracks() []track.Track { return p.tracks }

func (p *memProvider) SetColor(id string, c color.Color) error {
	p.colors[id] = c

	return nil
}

func newStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), store.WithChannelOrder(color.OrderRGB))
	require.NoError(t, err)

	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup    func(t *testing.T, s *store.Store)
		wantName string
		wantLen  int
	}{
		"fresh store": {
			setup: func(*testing.T, *store.Store) {},
		},
		"restores last active": {
			setup: func(t *testing.T, s *store.Store) {
				t.Helper()
				require.NoError(t, s.Save("mix", rule.List{rule.New("kick", red, blue, false)}))
				require.NoError(t, s.SaveLastActive("mix"))
			},
			wantName: "mix",
			wantLen:  1,
		},
		"pointer to missing configuration": {
			setup: func(t *testing.T, s *store.Store) {
				t.Helper()
				require.NoError(t, s.SaveLastActive("gone"))
			},
		},
		"corrupt pointer": {
			setup: func(t *testing.T, s *store.Store) {
				t.Helper()
				require.NoError(t, os.WriteFile(s.LastActivePath(), []byte("{lastConfig ="), 0o600))
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newStore(t)
			tc.setup(t, s)

			sess := session.Open(s, nil)
			assert.Equal(t, tc.wantName, sess.Name())
			assert.Equal(t, tc.wantName != "", sess.Active())
			assert.Len(t, sess.Rules(), tc.wantLen)
		})
	}
}

func TestSession_New(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	sess := session.Open(s, nil)

	require.NoError(t, sess.New("mix"))
	assert.Equal(t, "mix", sess.Name())
	assert.Empty(t, sess.Rules())

	got, ok := s.Load("mix")
	require.True(t, ok)
	assert.Empty(t, got)

	last, ok := s.LoadLastActive()
	require.True(t, ok)
	assert.Equal(t, "mix", last)

	require.ErrorIs(t, sess.New("mix"), session.ErrExists)
	require.ErrorIs(t, sess.New("a/b"), store.ErrInvalidName)
}

func TestSession_Load(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	sess := session.Open(s, nil)

	require.NoError(t, sess.New("a"))
	require.NoError(t, sess.AddRule(rule.New("kick", red, blue, false)))
	require.NoError(t, sess.New("b"))

	require.NoError(t, sess.Load("a"))
	assert.Equal(t, "a", sess.Name())
	assert.Len(t, sess.Rules(), 1)

	require.ErrorIs(t, sess.Load("missing"), store.ErrNotFound)
	assert.Equal(t, "a", sess.Name())
	assert.Len(t, sess.Rules(), 1)

	last, ok := s.LoadLastActive()
	require.True(t, ok)
	assert.Equal(t, "a", last)
}

func TestSession_Delete(t *testing.T) {
	t.Parallel()

	t.Run("only configuration leaves none active", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		sess := session.Open(s, nil)

		require.NoError(t, sess.New("only"))
		require.NoError(t, sess.Delete("only"))

		assert.False(t, sess.Active())
		assert.Empty(t, sess.Rules())

		_, ok := s.LoadLastActive()
		assert.False(t, ok)
		assert.Empty(t, s.Names())
	})

	t.Run("active reassigns to first remaining", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		sess := session.Open(s, nil)

		require.NoError(t, sess.New("zeta"))
		require.NoError(t, sess.New("beta"))
		require.NoError(t, sess.AddRule(rule.New("kick", red, blue, false)))
		require.NoError(t, sess.New("mid"))

		require.NoError(t, sess.Delete("mid"))
		assert.Equal(t, "beta", sess.Name())
		assert.Len(t, sess.Rules(), 1)

		last, ok := s.LoadLastActive()
		require.True(t, ok)
		assert.Equal(t, "beta", last)
	})

	t.Run("inactive keeps active", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		sess := session.Open(s, nil)

		require.NoError(t, sess.New("a"))
		require.NoError(t, sess.New("b"))

		require.NoError(t, sess.Delete("a"))
		assert.Equal(t, "b", sess.Name())
		assert.Equal(t, []string{"b"}, s.Names())
	})

	t.Run("pointer only repairs pointer", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		sess := session.Open(s, nil)

		require.NoError(t, sess.New("a"))
		require.NoError(t, sess.New("b"))
		require.NoError(t, sess.AddRule(rule.New("kick", red, blue, false)))
		require.NoError(t, s.SaveLastActive("a"))

		require.NoError(t, sess.Delete("a"))
		assert.Equal(t, "b", sess.Name())
		assert.Equal(t, rule.List{rule.New("kick", red, blue, false)}, sess.Rules())

		last, ok := s.LoadLastActive()
		require.True(t, ok)
		assert.Equal(t, "b", last)
	})

	t.Run("pointer only without active session", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		require.NoError(t, s.Save("a", rule.List{}))
		require.NoError(t, s.Save("b", rule.List{}))
		require.NoError(t, s.SaveLastActive("missing"))

		sess := session.Open(s, nil)
		require.False(t, sess.Active())

		require.NoError(t, s.SaveLastActive("a"))
		require.NoError(t, sess.Delete("a"))
		assert.False(t, sess.Active())

		last, ok := s.LoadLastActive()
		require.True(t, ok)
		assert.Equal(t, "b", last)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		sess := session.Open(newStore(t), nil)
		require.ErrorIs(t, sess.Delete("nope"), store.ErrNotFound)
	})
}

func TestSession_EditRules(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	sess := session.Open(s, nil)

	require.ErrorIs(t, sess.AddRule(rule.New("kick", red, blue, false)), session.ErrNoActive)

	require.NoError(t, sess.New("mix"))
	require.NoError(t, sess.AddRule(rule.New("kick", red, blue, false)))
	require.NoError(t, sess.AddRule(rule.New("snare", blue, red, true)))
	require.NoError(t, sess.InsertRule(0, rule.New("bass", red, red, false)))

	j, err := sess.MoveRule(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, j)

	j, err = sess.MoveRule(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, j)

	require.NoError(t, sess.UpdateRule(2, rule.New("snare,clap", blue, red, true)))
	require.NoError(t, sess.DeleteRule(0))
	require.ErrorIs(t, sess.DeleteRule(5), rule.ErrIndexOutOfRange)

	want := rule.List{
		rule.New("bass", red, red, false),
		rule.New("snare,clap", blue, red, true),
	}
	assert.Equal(t, want, sess.Rules())

	got, ok := s.Load("mix")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSession_PersistFailureKeepsEdit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	sess := session.Open(s, nil)
	require.NoError(t, sess.New("mix"))

	// Replace the configuration file with a directory so the rename fails.
	require.NoError(t, os.Remove(s.Path("mix")))
	require.NoError(t, os.Mkdir(s.Path("mix"), 0o700))
	require.NoError(t, os.WriteFile(s.Path("mix")+"/keep", nil, 0o600))

	require.Error(t, sess.AddRule(rule.New("kick", red, blue, false)))
	assert.Len(t, sess.Rules(), 1)
}

func TestSession_Apply(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	sess := session.Open(s, nil)

	p := newMemProvider("Kick", "Snare")

	report := sess.Apply(t.Context(), p)
	assert.Equal(t, engine.StatusSkipped, report.Status)
	assert.Equal(t, engine.ReasonNoRules, report.Reason)

	require.NoError(t, sess.New("mix"))
	require.NoError(t, sess.AddRule(rule.New("kick", red, blue, false)))

	report = sess.Apply(t.Context(), p)
	assert.Equal(t, engine.StatusApplied, report.Status)
	assert.Equal(t, map[string]color.Color{"Kick": red}, p.colors)
}

func TestDirectApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)
	p := newMemProvider("Kick", "Snare")

	report := session.DirectApply(ctx, s, nil, p)
	assert.Equal(t, engine.ReasonNoRules, report.Reason)
	assert.Empty(t, p.colors)

	require.NoError(t, s.Save("mix", rule.List{rule.New("snare", blue, red, true)}))
	require.NoError(t, s.SaveLastActive("mix"))

	report = session.DirectApply(ctx, s, engine.New(), p)
	assert.Equal(t, engine.StatusApplied, report.Status)
	assert.Equal(t, map[string]color.Color{"Snare": blue}, p.colors)

	require.NoError(t, os.WriteFile(s.Path("mix"), []byte("garbage"), 0o600))

	p = newMemProvider("Snare")
	report = session.DirectApply(ctx, s, nil, p)
	assert.Equal(t, engine.ReasonNoRules, report.Reason)
	assert.Empty(t, p.colors)
}
