// Package match suggests properties for column names that match none.
//
// Names are split into lower-case words (Tokenize) so that snake_case columns,
// CamelCase fields and upper-cased keys compare equal, then ranked by
// Levenshtein similarity (RankCandidates). Suggest only answers when one
// property is clearly ahead of the others.
package match
