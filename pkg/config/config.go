package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/macropower/trackhue/api/v1beta1/settings"
	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/store"
)

// App is the resolved application configuration.
type App struct {
	Settings *settings.Settings
	// Path is the settings file the configuration was loaded from.
	Path string
}

// LoadSettings loads and validates the settings file at path. A missing file
// is created with default content first.
func LoadSettings(path string) (*App, error) {
	_, err := NewLoaderFromFile(path, settings.New, settings.DefaultValidator)
	if errors.Is(err, fs.ErrNotExist) {
		err = settings.WriteDefault(path, false)
		if err != nil {
			return nil, err //nolint:wrapcheck // Already describes the write.
		}
	}

	l, err := NewLoaderFromFile(path, settings.New, settings.DefaultValidator)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	err = l.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	s, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	slog.Debug("loaded settings", slog.String("path", path))

	return &App{Settings: s, Path: path}, nil
}

// Default returns the default configuration rooted at path, without reading
// or writing any file.
func Default(path string) *App {
	return &App{Settings: settings.New(), Path: path}
}

// StoreDir returns the resolved store directory.
func (a *App) StoreDir() string {
	return a.Settings.StoreDir(filepath.Dir(a.Path))
}

// Store opens the configuration store described by the settings.
func (a *App) Store() (*store.Store, error) {
	opts, err := a.Settings.StoreOptions()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already describes the setting.
	}

	s, err := store.New(a.StoreDir(), opts...)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return s, nil
}

// Engine creates a rule engine with the configured gradient settings.
func (a *App) Engine() *engine.Engine {
	a.Settings.EnsureDefaults()

	return engine.New(engine.WithMaxStep(a.Settings.Gradient.MaxStep))
}
