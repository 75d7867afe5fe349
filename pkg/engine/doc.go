// Package engine applies a [rule.List] to the tracks of a host [Provider].
//
// Rules run in list order. For each keyword of a rule, every matching track
// becomes the root of a gradient group, and each color is written to the
// provider as soon as it is computed. Later writes to the same track replace
// earlier ones.
//
// A pass never fails part way: rules that cannot produce colors are skipped,
// and the reason is recorded in the returned [Report].
package engine
