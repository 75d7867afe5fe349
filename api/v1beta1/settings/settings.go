// Package settings provides the Settings configuration type for trackhue.
package settings

//go:generate go run ../../../internal/schemagen -kind settings -o settings.v1beta1.json

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/trackhue/api"
	"github.com/macropower/trackhue/api/v1beta1"
	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/gradient"
	"github.com/macropower/trackhue/pkg/store"
	"github.com/macropower/trackhue/pkg/yaml"
)

const (
	// Kind is the kind of a settings document.
	Kind = "Settings"
	// FileName is the settings file name within the config directory.
	FileName = "config.yaml"
	// SchemaFileName is written next to the settings file.
	SchemaFileName = "settings.v1beta1.json"
	// DefaultStoreDir is the store directory, relative to the config directory.
	DefaultStoreDir = "configs"
)

var (
	//go:embed settings.yaml
	defaultSettingsYAML []byte

	// ValidKinds contains the valid kind values for settings.
	ValidKinds = []string{Kind}

	// DefaultValidator validates settings against the reflected JSON schema.
	DefaultValidator = yaml.MustNewValidatorFor("/"+SchemaFileName, &Settings{})

	_ v1beta1.Object = (*Settings)(nil)
)

// Store configures where and how rule configurations are persisted.
type Store struct {
	// Dir is the directory holding configuration files.
	Dir string `json:"dir,omitempty" jsonschema:"title=Directory"`
	// Prefix is the file name prefix.
	Prefix string `json:"prefix,omitempty" jsonschema:"title=Prefix,pattern=^[^/\\\\]+$"`
	// Format is the file format.
	Format string `json:"format,omitempty" jsonschema:"title=Format,enum=literal,enum=yaml,enum=toml"`
}

// Gradient configures gradient computation.
type Gradient struct {
	// MaxStep is the largest increase of the blend factor between tracks.
	MaxStep float64 `json:"maxStep,omitempty" jsonschema:"title=Max Step,exclusiveMinimum=0,maximum=1"`
}

// Settings represents the trackhue application settings.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Settings struct {
	Store    *Store    `json:"store,omitempty"    jsonschema:"title=Store"`
	Gradient *Gradient `json:"gradient,omitempty" jsonschema:"title=Gradient"`
	// ChannelOrder is the byte order of packed colors.
	ChannelOrder     string `json:"channelOrder,omitempty" jsonschema:"title=Channel Order,enum=auto,enum=rgb,enum=bgr"`
	v1beta1.TypeMeta `json:",inline"`
}

// New creates new [Settings] with default values.
func New() *Settings {
	s := &Settings{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	s.EnsureDefaults()

	return s
}

// EnsureDefaults initializes unset fields to their default values.
func (s *Settings) EnsureDefaults() {
	if s.Store == nil {
		s.Store = &Store{}
	}

	if s.Store.Prefix == "" {
		s.Store.Prefix = store.DefaultPrefix
	}

	if s.Store.Format == "" {
		s.Store.Format = string(store.FormatLiteral)
	}

	if s.Gradient == nil {
		s.Gradient = &Gradient{}
	}

	if s.Gradient.MaxStep <= 0 {
		s.Gradient.MaxStep = gradient.DefaultMaxStep
	}

	if s.ChannelOrder == "" {
		s.ChannelOrder = "auto"
	}
}

// StoreDir resolves the store directory. Relative paths are resolved against
// base, the directory of the settings file.
func (s *Settings) StoreDir(base string) string {
	dir := ""
	if s.Store != nil {
		dir = s.Store.Dir
	}

	if dir == "" {
		dir = DefaultStoreDir
	}

	if filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(base, dir)
}

// StoreOptions returns the [store.Opt]s described by the settings.
func (s *Settings) StoreOptions() ([]store.Opt, error) {
	s.EnsureDefaults()

	format, err := store.ParseFormat(s.Store.Format)
	if err != nil {
		return nil, fmt.Errorf("store format: %w", err)
	}

	order, err := s.Order()
	if err != nil {
		return nil, err
	}

	return []store.Opt{
		store.WithPrefix(s.Store.Prefix),
		store.WithFormat(format),
		store.WithChannelOrder(order),
	}, nil
}

// Order parses the channel order.
func (s *Settings) Order() (color.ChannelOrder, error) {
	order, err := color.ParseChannelOrder(s.ChannelOrder)
	if err != nil {
		return order, fmt.Errorf("channel order: %w", err)
	}

	return order, nil
}

func (s Settings) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the settings to YAML.
func (s Settings) MarshalYAML() ([]byte, error) {
	type alias Settings

	b, err := api.MarshalYAML(alias(s))
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	return b, nil
}

// Write writes the settings to path if it doesn't already exist.
func (s Settings) Write(path string) error {
	b, err := s.MarshalYAML()
	if err != nil {
		return err
	}

	err = api.WriteIfNotExists(path, b)
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// WriteDefault writes the default settings file to path, and its JSON schema
// next to it.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultSettingsYAML, force, "settings")
	if err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}

	schema, err := yaml.GenerateSchema(&Settings{})
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	err = os.WriteFile(filepath.Join(filepath.Dir(path), SchemaFileName), schema, 0o600)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}

// GetPath returns the path to the settings file.
func GetPath() string {
	return api.GetConfigPath(FileName)
}
