// Package literal reads and writes table literals, the plain text format
// used for persisted rule lists:
//
//	{
//	  {keyword = "kick,snare", startColor = 16711680, endColor = 255, exactMatch = false},
//	}
//
// A literal is a single value: nil, true, false, a number, a quoted string,
// or a table in braces. A table holds positional items and named fields,
// separated by commas or semicolons. Field names are identifiers or quoted
// strings in brackets (["some key"] = 1). Line comments start with "--",
// and block comments are written as --[[ ... ]]. A leading "return" keyword
// is accepted and ignored.
//
// [Parse] is a recursive-descent parser over a hand-written lexer. It builds
// a [Value] tree and never evaluates anything.
package literal
