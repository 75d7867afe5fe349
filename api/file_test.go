package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/api"
)

//nolint:paralleltest // We need to set environment variables, so run tests sequentially.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		setupEnv func(t *testing.T)
		want     string
	}{
		"XDG_CONFIG_HOME is set": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "/custom/config")
			},
			want: "/custom/config/trackhue/config.yaml",
		},
		"XDG_CONFIG_HOME is empty and HOME is set": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "")
				t.Setenv("HOME", "/test/home")
			},
			want: "/test/home/.config/trackhue/config.yaml",
		},
		"XDG_CONFIG_HOME and HOME are empty": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "")
				t.Setenv("HOME", "")
			},
			want: filepath.Join(os.TempDir(), "trackhue", "config.yaml"), //nolint:usetesting // Needs to equal host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			tc.setupEnv(t)

			assert.Equal(t, tc.want, api.GetConfigPath("config.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	got, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))

	_, err = api.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = api.ReadFile(t.TempDir())
	require.ErrorContains(t, err, "path is a directory")
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	data, err := api.MarshalYAML(struct {
		Name    string  `json:"name"`
		MaxStep float64 `json:"maxStep"`
	}{Name: "drums", MaxStep: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "name: drums\nmaxStep: 0.3\n", string(data))
}

func TestWriteIfNotExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	require.NoError(t, api.WriteIfNotExists(path, []byte("first")))
	require.NoError(t, api.WriteIfNotExists(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.ErrorContains(t, api.WriteIfNotExists(t.TempDir(), nil), "path is a directory")
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing   string
		want       string
		force      bool
		wantBackup bool
	}{
		"new file": {
			want: "default",
		},
		"existing file is kept": {
			existing: "mine",
			want:     "mine",
		},
		"force backs up existing file": {
			existing:   "mine",
			force:      true,
			want:       "default",
			wantBackup: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if tc.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			require.NoError(t, api.WriteDefaultFile(path, []byte("default"), tc.force, "settings"))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))

			backups, err := filepath.Glob(filepath.Join(dir, "*.old"))
			require.NoError(t, err)

			if tc.wantBackup {
				require.Len(t, backups, 1)

				old, err := os.ReadFile(backups[0])
				require.NoError(t, err)
				assert.Equal(t, tc.existing, string(old))
			} else {
				assert.Empty(t, backups)
			}
		})
	}
}

func TestFindFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sub := filepath.Join(root, "mixes", "live")
	require.NoError(t, os.MkdirAll(sub, 0o700))

	want := filepath.Join(root, "trackhue.project.yaml")
	require.NoError(t, os.WriteFile(want, nil, 0o600))

	got, err := api.FindFile(sub, []string{"trackhue.project.yaml"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = api.FindFile(want, []string{"trackhue.project.yaml"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = api.FindFile(sub, []string{"nothing.yaml"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = api.FindFile(filepath.Join(root, "missing"), []string{"x"})
	require.Error(t, err)
}
