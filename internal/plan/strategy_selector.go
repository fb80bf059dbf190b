package plan

import (
	"fmt"
)

// Diagnostic codes produced while planning.
const (
	CodeDuplicateKey   = "duplicate_key"
	CodeNoProperties   = "no_properties"
	CodeNoMaterializer = "no_materializer"
)

// Strategy explanation constants.
const (
	explReference = "reference type: assert, zero value on mismatch"
	explNullable  = "nullable value: pointer or element, nil on mismatch"
	explEnum      = "enum: skip absent, cast underlying integer or convert"
	explValue     = "value type: skip absent, assign exact type or convert"
)

// StrategyFor returns the coercion strategy for a category.
func StrategyFor(c Category) CoercionStrategy {
	strategy, _ := determineStrategy(c)
	return strategy
}

func determineStrategy(c Category) (CoercionStrategy, string) {
	switch c {
	case CategoryNullableValue:
		return StrategyNullableLift, explNullable
	case CategoryEnum:
		return StrategyEnumConvert, explEnum
	case CategoryPrimitiveValue:
		return StrategyValueConvert, explValue
	default:
		return StrategyAssertOrZero, explReference
	}
}

// Plan resolves the properties of src and selects a coercion strategy for each,
// producing the mapping unit for target.
func Plan[T any](target TargetType, src Source[T]) MappingUnit[T] {
	unit := MappingUnit[T]{
		Target:          target,
		HasMaterializer: target.Constructible,
	}

	props := Resolve(src)
	if len(props) == 0 {
		unit.Diagnostics.AddWarning(CodeNoProperties,
			"type has no settable properties; the setter ignores every name", target.ID, "")
	}

	firstByKey := make(map[string]string, len(props))

	for _, p := range props {
		strategy, explanation := determineStrategy(p.Category)
		m := PropertyMapping[T]{
			Property:    p,
			Strategy:    strategy,
			Explanation: explanation,
		}

		if first, ok := firstByKey[p.Key]; ok {
			m.Duplicate = true
			unit.Diagnostics.AddWarning(CodeDuplicateKey,
				fmt.Sprintf("key %s already matches %s; %s is never assigned by name", p.Key, first, p.Name),
				target.ID, p.Selector())
		} else {
			firstByKey[p.Key] = p.Selector()
		}

		unit.Mappings = append(unit.Mappings, m)
	}

	if !unit.HasMaterializer {
		unit.Diagnostics.AddInfo(CodeNoMaterializer,
			"type cannot be constructed without arguments; only the setter is available", target.ID, "")
	}

	return unit
}
