// Package track models the host's ordered track list, and resolves which
// tracks belong to a gradient group and which tracks a keyword matches.
//
// Tracks are owned by the host. This package never reorders or creates them;
// it only reads the name and depth-change marker of each [Track].
package track
