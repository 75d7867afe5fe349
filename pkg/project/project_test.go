package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/project"
	"github.com/macropower/trackhue/pkg/rule"
)

var (
	red  = color.RGB(255, 0, 0)
	blue = color.RGB(0, 0, 255)
)

const drumsProject = `channelOrder: rgb
tracks:
  - name: Kick Drum
    depth: 1
  - name: Kick Mic
  - name: Kick Mic 2
    depth: -1
  - id: snare
    name: Snare Top
    color: 16777471
`

func writeProject(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	p, err := project.Load(writeProject(t, drumsProject))
	require.NoError(t, err)

	assert.Equal(t, color.OrderRGB, p.ChannelOrder())

	tracks := p.Tracks()
	require.Len(t, tracks, 4)

	assert.Equal(t, "t0", tracks[0].ID)
	assert.Equal(t, "t2", tracks[2].ID)
	assert.Equal(t, "snare", tracks[3].ID)

	assert.Equal(t, 1, tracks[0].Depth)
	assert.Equal(t, -1, tracks[2].Depth)

	assert.False(t, tracks[0].HasColor)
	assert.True(t, tracks[3].HasColor)
	assert.Equal(t, blue, tracks[3].Color)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		wantErr error
	}{
		"duplicate id": {
			content: "tracks:\n  - id: a\n    name: A\n  - id: a\n    name: B\n",
			wantErr: project.ErrDuplicateID,
		},
		"unknown channel order": {
			content: "channelOrder: grb\ntracks: []\n",
		},
		"negative color": {
			content: "tracks:\n  - name: A\n    color: -5\n",
		},
		"unknown field": {
			content: "tracks:\n  - name: A\n    volume: 3\n",
		},
		"missing name": {
			content: "tracks:\n  - depth: 1\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := project.Load(writeProject(t, tc.content))
			require.Error(t, err)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}

	_, err := project.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProject_ChannelOrder(t *testing.T) {
	t.Parallel()

	doc := project.Document{Tracks: []project.Track{{Name: "Kick"}}}

	p, err := project.New("p.yaml", doc, project.WithChannelOrder(color.OrderBGR))
	require.NoError(t, err)
	assert.Equal(t, color.OrderBGR, p.ChannelOrder())

	require.NoError(t, p.SetColor("t0", red))
	assert.Equal(t, int64(0x10000FF), p.Document().Tracks[0].Color)
	assert.Equal(t, red, p.Tracks()[0].Color)

	doc.ChannelOrder = "rgb"

	p, err = project.New("p.yaml", doc, project.WithChannelOrder(color.OrderBGR))
	require.NoError(t, err)
	assert.Equal(t, color.OrderRGB, p.ChannelOrder())
}

func TestProject_SetColor(t *testing.T) {
	t.Parallel()

	p, err := project.Load(writeProject(t, drumsProject))
	require.NoError(t, err)

	require.ErrorIs(t, p.SetColor("nope", red), project.ErrUnknownTrack)
	require.Error(t, p.SetColor("t0", color.Invalid))

	require.NoError(t, p.SetColor("t0", red))
	assert.Equal(t, int64(0x1FF0000), p.Document().Tracks[0].Color)
	assert.Empty(t, p.History())
}

func TestProject_ApplyAndUndo(t *testing.T) {
	t.Parallel()

	path := writeProject(t, drumsProject)

	p, err := project.Load(path)
	require.NoError(t, err)

	rules := rule.List{rule.New("kick,snare", red, blue, false)}

	report := engine.New().ApplyAll(t.Context(), rules, p)
	require.Equal(t, engine.StatusApplied, report.Status)
	assert.Equal(t, 6, report.Writes)

	require.Len(t, p.History(), 1)
	assert.Equal(t, engine.BatchDescription, p.History()[0].Description)
	assert.Len(t, p.History()[0].Colors, 4)

	tracks := p.Tracks()
	assert.Equal(t, red, tracks[0].Color)
	assert.Equal(t, red, tracks[3].Color)

	require.NoError(t, p.Save())

	p, err = project.Load(path)
	require.NoError(t, err)
	require.Len(t, p.History(), 1)
	assert.Equal(t, red, p.Tracks()[0].Color)

	desc, err := p.Undo()
	require.NoError(t, err)
	assert.Equal(t, engine.BatchDescription, desc)

	tracks = p.Tracks()
	assert.False(t, tracks[0].HasColor)
	assert.Equal(t, blue, tracks[3].Color)
	assert.Empty(t, p.History())

	_, err = p.Undo()
	require.ErrorIs(t, err, project.ErrNothingToUndo)
}

func TestProject_EmptyBatchNotRecorded(t *testing.T) {
	t.Parallel()

	p, err := project.Load(writeProject(t, drumsProject))
	require.NoError(t, err)

	report := engine.New().ApplyAll(t.Context(), rule.List{rule.New("guitar", red, blue, false)}, p)
	assert.Equal(t, 0, report.Writes)
	assert.Empty(t, p.History())
}

func TestProject_HistoryBounded(t *testing.T) {
	t.Parallel()

	p, err := project.Load(writeProject(t, drumsProject))
	require.NoError(t, err)

	for i := range project.MaxHistory + 5 {
		p.BeginBatch("pass")
		require.NoError(t, p.SetColor("snare", color.RGB(i, i, i)))
		p.EndBatch()
	}

	assert.Len(t, p.History(), project.MaxHistory)
}
