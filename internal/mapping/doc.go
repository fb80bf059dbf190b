// Package mapping provides the YAML form of a mapping plan: schema, parsing,
// validation and column checks.
//
// The analyze command writes one of these files; check reads it back to tell
// which columns of a result set would set which property, without loading the
// Go packages again.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - type: rowmap-generator/store.Order
//	    package: store
//	    setter: SetOrderPropertyByName
//	    materializer: MaterializeOrder
//	    constructor: NewOrder
//	    properties:
//	      - name: ID
//	        key: ID
//	        type: int64
//	        category: primitive-value
//	        strategy: value_convert
//	      - name: Audit.CreatedAt
//	        key: CREATEDAT
//	        type: time.Time
//	        category: primitive-value
//	        strategy: value_convert
//	        owner: rowmap-generator/store.Audit
//
// Properties are listed in matching order. A property whose key was already
// claimed is kept with duplicate: true and never matches.
package mapping
