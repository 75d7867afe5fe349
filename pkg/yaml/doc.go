// Package yaml wraps [github.com/goccy/go-yaml] with the encoder settings,
// schema validation, and source-annotated errors used by trackhue's settings,
// project, and rule list files.
package yaml
