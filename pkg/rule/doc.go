// Package rule defines coloring rules and the ordered [List] that holds them.
//
// A [Rule] names one or more comma-separated keywords and the two colors of
// the gradient applied to every group whose root matches a keyword. The order
// of a [List] is the order rules are applied in, so when two rules color the
// same track, the later rule wins.
package rule
