// Package plan turns analyzed types into mapping units consumed by code
// generation and by the runtime mapper.
//
// Planning pipeline:
//  1. Adapt a type to a Source (go/types via AnalyzedSource, reflect via ReflectSource)
//  2. Resolve properties: own exported fields first, then promoted fields of
//     embedded bases; derived declarations shadow base declarations
//  3. Classify each property (reference, nullable-value, enum, primitive-value)
//     and select its coercion strategy
//  4. Mark later properties whose upper-cased key repeats an earlier one,
//     and gate the materializer on zero-argument construction
//  5. Emit diagnostics (duplicate keys, missing materializer, non-struct targets)
package plan
