// Package store persists named rule lists and the "last active
// configuration" pointer as plain text files.
//
// Each configuration lives at <dir>/<prefix>_<name>.<ext>, and the pointer at
// <dir>/<prefix>.<ext>. The file format is chosen with a [Format]; the
// default [FormatLiteral] writes table literals (see package literal).
//
// Reads are forgiving: a missing, unreadable, or malformed file is reported
// as "not found" and logged, never returned as an error. Writes return their
// errors so the caller can tell the user.
package store
