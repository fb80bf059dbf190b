// Package diagnostic provides structured warnings, errors, and
// notes for the rowmap generator.
//
// Key capabilities:
//   - Targets that cannot be mapped (not a struct, not found)
//   - Properties whose matching key is shadowed by an earlier one
//   - Types that get a setter but no materializer
//   - Column names that match no property (check command)
package diagnostic
