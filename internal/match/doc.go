// Package match finds the closest known name to a misspelled one, so errors
// about unknown tables or type tokens can say what was probably meant.
//
// Key functions:
//   - Normalize: folds case and separators of a name
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate above a similarity threshold
package match
