// Package project reads and writes project files: YAML documents that list a
// host's tracks in project order, together with their packed custom colors
// and an undo history of color passes.
//
// A [Project] implements [engine.Provider] and [engine.Batcher].
package project

//go:generate go run ../../internal/schemagen -kind project -o project.v1beta1.json

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/track"
	"github.com/macropower/trackhue/pkg/yaml"
)

// MaxHistory is the number of undo entries kept in a project file.
const MaxHistory = 20

var (
	// FileNames are searched for, from the working directory upwards, when
	// no project path is given.
	FileNames = []string{"trackhue.project.yaml", "trackhue.project.yml"}

	// ErrUnknownTrack indicates a track ID that is not in the project.
	ErrUnknownTrack = errors.New("unknown track")
	// ErrDuplicateID indicates two tracks sharing one ID.
	ErrDuplicateID = errors.New("duplicate track id")
	// ErrNothingToUndo indicates an empty undo history.
	ErrNothingToUndo = errors.New("nothing to undo")

	validator = yaml.MustNewValidatorFor("/project.json", &Document{})
)

// Track is a track as stored in a project file.
type Track struct {
	ID   string `json:"id,omitempty"    jsonschema:"title=ID"`
	Name string `json:"name"            jsonschema:"title=Name"`
	// Depth is the folder depth-change marker.
	Depth int `json:"depth,omitempty" jsonschema:"title=Depth"`
	// Color is the packed native color with [color.OverrideFlag] set, or 0.
	Color int64 `json:"color,omitempty" jsonschema:"title=Color,minimum=0"`
}

// TrackColor is a track's packed color before a pass changed it.
type TrackColor struct {
	ID    string `json:"id"`
	Color int64  `json:"color"`
}

// Entry is one undoable pass.
type Entry struct {
	Description string       `json:"description"`
	Colors      []TrackColor `json:"colors"`
}

// Document is the on-disk form of a [Project].
type Document struct {
	ChannelOrder string  `json:"channelOrder,omitempty" jsonschema:"title=Channel Order,enum=auto,enum=rgb,enum=bgr"`
	Tracks       []Track `json:"tracks"                 jsonschema:"title=Tracks"`
	History      []Entry `json:"history,omitempty"      jsonschema:"title=History"`
}

// Project is an in-memory project file.
type Project struct {
	pending *Entry
	path    string
	doc     Document
	order   color.ChannelOrder
}

// Opt configures a [Project].
type Opt func(*Project)

// WithChannelOrder sets the channel order used when the file does not name
// one, or names "auto".
func WithChannelOrder(order color.ChannelOrder) Opt {
	return func(p *Project) {
		p.order = order
	}
}

// New creates a [Project] from a document, to be saved at path.
func New(path string, doc Document, opts ...Opt) (*Project, error) {
	p := &Project{path: path, doc: doc, order: color.DefaultChannelOrder()}
	for _, opt := range opts {
		opt(p)
	}

	if name := strings.ToLower(doc.ChannelOrder); name != "" && name != "auto" {
		order, err := color.ParseChannelOrder(name)
		if err != nil {
			return nil, fmt.Errorf("channel order: %w", err)
		}

		p.order = order
	}

	seen := make(map[string]bool, len(p.doc.Tracks))

	for i := range p.doc.Tracks {
		t := &p.doc.Tracks[i]
		if t.ID == "" {
			t.ID = fmt.Sprintf("t%d", i)
		}

		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}

		seen[t.ID] = true
	}

	return p, nil
}

// Load reads and validates the project file at path.
func Load(path string, opts ...Opt) (*Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: User-provided project path.
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return New(path, doc, opts...)
}

// Parse validates and decodes a project document.
func Parse(data []byte) (Document, error) {
	var (
		anyDoc any
		doc    Document
	)

	err := yaml.Unmarshal(data, &anyDoc)
	if err != nil {
		return doc, fmt.Errorf("parse project: %w", err)
	}

	err = yaml.NewErrorWrapper(yaml.WithSource(data)).Wrap(validator.Validate(anyDoc))
	if err != nil {
		return doc, fmt.Errorf("validate project: %w", err)
	}

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return doc, fmt.Errorf("parse project: %w", err)
	}

	return doc, nil
}

// Path returns the file the project is saved to.
func (p *Project) Path() string {
	return p.path
}

// ChannelOrder returns the channel order of the packed track colors.
func (p *Project) ChannelOrder() color.ChannelOrder {
	return p.order
}

// Document returns the on-disk form of the project.
func (p *Project) Document() Document {
	return p.doc
}

// Tracks implements [engine.Provider].
func (p *Project) Tracks() []track.Track {
	out := make([]track.Track, 0, len(p.doc.Tracks))

	for _, t := range p.doc.Tracks {
		n := color.Native(t.Color)
		tr := track.Track{ID: t.ID, Name: t.Name, Depth: t.Depth}

		if n.HasOverride() {
			tr.Color = color.Unpack(n, p.order)
			tr.HasColor = tr.Color.Valid()
		}

		out = append(out, tr)
	}

	return out
}

// SetColor implements [engine.Provider]. The color is packed with the
// project's channel order and the override flag.
func (p *Project) SetColor(id string, c color.Color) error {
	if !c.Valid() {
		return fmt.Errorf("track %q: invalid color %s", id, c)
	}

	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}

	t := &p.doc.Tracks[i]

	if p.pending != nil && !p.pending.touched(id) {
		p.pending.Colors = append(p.pending.Colors, TrackColor{ID: id, Color: t.Color})
	}

	t.Color = int64(color.PackOverride(c, p.order))

	return nil
}

// BeginBatch implements [engine.Batcher].
func (p *Project) BeginBatch(desc string) {
	p.pending = &Entry{Description: desc}
}

// EndBatch implements [engine.Batcher]. Batches that changed nothing are
// not recorded.
func (p *Project) EndBatch() {
	e := p.pending
	p.pending = nil

	if e == nil || len(e.Colors) == 0 {
		return
	}

	p.doc.History = append(p.doc.History, *e)
	if over := len(p.doc.History) - MaxHistory; over > 0 {
		p.doc.History = p.doc.History[over:]
	}
}

// History returns the undo entries, oldest first.
func (p *Project) History() []Entry {
	return p.doc.History
}

// Undo reverts the most recent batch and returns its description.
func (p *Project) Undo() (string, error) {
	n := len(p.doc.History)
	if n == 0 {
		return "", ErrNothingToUndo
	}

	e := p.doc.History[n-1]
	p.doc.History = p.doc.History[:n-1]

	for _, tc := range e.Colors {
		i := p.index(tc.ID)
		if i < 0 {
			slog.Warn("cannot restore color of removed track", slog.String("id", tc.ID))

			continue
		}

		p.doc.Tracks[i].Color = tc.Color
	}

	return e.Description, nil
}

// Marshal encodes the project document.
func (p *Project) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(p.doc)
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}

	return b, nil
}

// Save writes the project back to its path.
func (p *Project) Save() error {
	b, err := p.Marshal()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(p.path), "."+filepath.Base(p.path)+".tmp")

	err = os.WriteFile(tmp, b, 0o600)
	if err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	err = os.Rename(tmp, p.path)
	if err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	return nil
}

func (p *Project) index(id string) int {
	for i, t := range p.doc.Tracks {
		if t.ID == id {
			return i
		}
	}

	return -1
}

func (e *Entry) touched(id string) bool {
	for _, tc := range e.Colors {
		if tc.ID == id {
			return true
		}
	}

	return false
}

var (
	_ engine.Provider = (*Project)(nil)
	_ engine.Batcher  = (*Project)(nil)
)
