// Package tabular parses the tab-separated text that simulation tools place
// on the clipboard and exposes it as a column-oriented Frame. Date and Time
// columns stay raw strings; every other column is coerced to float64 with
// unparseable cells collapsing to zero.
package tabular
