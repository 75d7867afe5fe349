package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
)

// DefaultPrefix is the default file name prefix.
const DefaultPrefix = "trackhue"

var (
	// ErrInvalidName indicates a configuration name that cannot be used as
	// part of a file name.
	ErrInvalidName = errors.New("invalid configuration name")
	// ErrNotFound indicates a configuration that does not exist.
	ErrNotFound = errors.New("configuration not found")
)

// Info describes a persisted configuration.
type Info struct {
	ModTime time.Time
	Name    string
	Path    string
}

// Store reads and writes named rule lists in a directory.
type Store struct {
	codec  Codec
	dir    string
	prefix string
}

type options struct {
	prefix string
	format Format
	order  color.ChannelOrder
}

// Opt configures a [Store].
type Opt func(*options)

// WithPrefix sets the file name prefix.
func WithPrefix(prefix string) Opt {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithFormat sets the file format.
func WithFormat(f Format) Opt {
	return func(o *options) {
		o.format = f
	}
}

// WithChannelOrder sets the channel order used for packed colors.
func WithChannelOrder(order color.ChannelOrder) Opt {
	return func(o *options) {
		o.order = order
	}
}

// New creates a [Store] rooted at dir. The directory is created on first write.
func New(dir string, opts ...Opt) (*Store, error) {
	o := &options{
		prefix: DefaultPrefix,
		format: FormatLiteral,
		order:  color.DefaultChannelOrder(),
	}
	for _, opt := range opts {
		opt(o)
	}

	codec, err := NewCodec(o.format, o.order)
	if err != nil {
		return nil, err
	}

	if strings.ContainsAny(o.prefix, `/\`) {
		return nil, fmt.Errorf("prefix %q: %w", o.prefix, ErrInvalidName)
	}

	return &Store{codec: codec, dir: dir, prefix: o.prefix}, nil
}

// Dir returns the directory holding the configuration files.
func (s *Store) Dir() string {
	return s.dir
}

// Codec returns the codec used for files.
//
//nolint:ireturn // Codec is selected at runtime.
func (s *Store) Codec() Codec {
	return s.codec
}

// ValidateName reports whether name can be used as a configuration name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}

	return nil
}

// Path returns the file path of the named configuration.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", s.prefix, name, s.codec.Ext()))
}

// LastActivePath returns the file path of the last-active pointer.
func (s *Store) LastActivePath() string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%s", s.prefix, s.codec.Ext()))
}

// Save writes rules under name, replacing any existing configuration.
func (s *Store) Save(name string, rules rule.List) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	data, err := s.codec.EncodeRules(rules)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}

	err = writeFile(s.Path(name), data)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}

	slog.Debug("saved configuration",
		slog.String("name", name),
		slog.Int("rules", len(rules)),
	)

	return nil
}

// Load reads the named configuration. It returns false when the file is
// missing, unreadable, or malformed.
func (s *Store) Load(name string) (rule.List, bool) {
	if ValidateName(name) != nil {
		return nil, false
	}

	path := s.Path(name)

	data, ok := readFile(path)
	if !ok {
		return nil, false
	}

	rules, err := s.codec.DecodeRules(data)
	if err != nil {
		slog.Warn("ignoring malformed configuration",
			slog.String("path", path),
			slog.Any("err", err),
		)

		return nil, false
	}

	return rules, true
}

// Check returns the reason [Store.Load] rejects the named configuration, or
// nil if it loads. Decode errors are returned as-is, so a syntax error keeps
// its position.
func (s *Store) Check(name string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	path := s.Path(name)

	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is built from the store directory.
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("read %q: %w", name, err)
	}

	_, err = s.codec.DecodeRules(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Exists reports whether the named configuration has a file.
func (s *Store) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}

	info, err := os.Stat(s.Path(name))

	return err == nil && info.Mode().IsRegular()
}

// List returns every persisted configuration, sorted by name.
// A missing directory yields an empty list.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	head := s.prefix + "_"
	tail := "." + s.codec.Ext()

	var infos []Info

	for _, e := range entries {
		fileName := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(fileName, head) || !strings.HasSuffix(fileName, tail) {
			continue
		}

		name := strings.TrimSuffix(strings.TrimPrefix(fileName, head), tail)
		if ValidateName(name) != nil {
			continue
		}

		info := Info{Name: name, Path: filepath.Join(s.dir, fileName)}

		fi, err := e.Info()
		if err == nil {
			info.ModTime = fi.ModTime()
		}

		infos = append(infos, info)
	}

	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})

	return infos, nil
}

// Names returns the names of every persisted configuration, sorted.
func (s *Store) Names() []string {
	infos, err := s.List()
	if err != nil {
		slog.Warn("list configurations", slog.Any("err", err))
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}

	return names
}

// Delete removes the named configuration. It does not touch the last-active
// pointer.
func (s *Store) Delete(name string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	err = os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}

	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}

	return nil
}

// SaveLastActive records name as the most recently active configuration.
func (s *Store) SaveLastActive(name string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	data, err := s.codec.EncodeLastActive(name)
	if err != nil {
		return fmt.Errorf("save last active: %w", err)
	}

	err = writeFile(s.LastActivePath(), data)
	if err != nil {
		return fmt.Errorf("save last active: %w", err)
	}

	return nil
}

// LoadLastActive returns the most recently active configuration name.
// It returns false when no usable pointer is stored.
func (s *Store) LoadLastActive() (string, bool) {
	path := s.LastActivePath()

	data, ok := readFile(path)
	if !ok {
		return "", false
	}

	name, err := s.codec.DecodeLastActive(data)
	if err == nil {
		err = ValidateName(name)
	}

	if err != nil {
		slog.Warn("ignoring malformed last active configuration",
			slog.String("path", path),
			slog.Any("err", err),
		)

		return "", false
	}

	return name, true
}

// ClearLastActive removes the last-active pointer, so that no configuration
// is active.
func (s *Store) ClearLastActive() error {
	err := os.Remove(s.LastActivePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear last active: %w", err)
	}

	return nil
}

// readFile returns the contents of path, or false if it cannot be read.
func readFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is built from the store directory.
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}

	if err != nil {
		slog.Warn("could not read file", slog.String("path", path), slog.Any("err", err))

		return nil, false
	}

	return data, true
}

// writeFile writes data next to path and renames it into place, so readers
// never observe a partially written file.
func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success.
	}()

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close() //nolint:errcheck // Write error takes precedence.

		return fmt.Errorf("write file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	return nil
}
