// Package match finds the names closest to a misspelled one.
//
// Names are compared after normalization (CamelCase split, case folded,
// separators dropped) with a Levenshtein similarity. Suggest is used to add
// "did you mean" hints to diagnostics.
package match
