package plan

import (
	"reflect"
	"time"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// ReflectSource adapts a struct reflect.Type to the property resolver.
type ReflectSource struct {
	Type reflect.Type
}

// NewReflectSource wraps a struct type.
func NewReflectSource(t reflect.Type) *ReflectSource {
	return &ReflectSource{Type: t}
}

// ID implements Source.
func (s *ReflectSource) ID() string {
	if s.Type.PkgPath() == "" {
		return s.Type.String()
	}

	return s.Type.PkgPath() + "." + s.Type.Name()
}

// Fields implements Source.
//
// Bases embedded through an unexported pointer are not reported: reflection
// cannot allocate them, so their promoted fields are unreachable at run time.
func (s *ReflectSource) Fields() []Field[reflect.Type] {
	if s.Type.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]Field[reflect.Type], 0, s.Type.NumField())

	for i := range s.Type.NumField() {
		sf := s.Type.Field(i)

		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		field := Field[reflect.Type]{
			Name:     sf.Name,
			Exported: sf.IsExported(),
			Embedded: sf.Anonymous,
			Index:    i,
			Tag:      sf.Tag,
			Type:     sf.Type,
			Category: CategoryOfReflect(sf.Type),
		}

		if sf.Anonymous {
			switch {
			case sf.Type.Kind() == reflect.Struct:
				field.Base = NewReflectSource(sf.Type)
			case sf.Type.Kind() == reflect.Pointer && sf.Type.Elem().Kind() == reflect.Struct:
				if !sf.IsExported() {
					continue
				}

				field.Base = NewReflectSource(sf.Type.Elem())
				field.Pointer = true
			}
		}

		fields = append(fields, field)
	}

	return fields
}

// CategoryOfReflect classifies a reflect type.
func CategoryOfReflect(t reflect.Type) Category {
	named := t.PkgPath() != "" && t.Name() != ""

	switch t.Kind() {
	case reflect.String:
		if named {
			return CategoryPrimitiveValue
		}

		return CategoryReference

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if named && t != durationType {
			return CategoryEnum
		}

		return CategoryPrimitiveValue

	case reflect.Pointer:
		elem := t.Elem()
		if elem == timeType || isBasicKind(elem.Kind()) {
			return CategoryNullableValue
		}

		return CategoryReference

	case reflect.Bool, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Struct, reflect.Array:
		return CategoryPrimitiveValue

	default:
		// Slices, maps, interfaces, channels, funcs, unsafe pointers
		return CategoryReference
	}
}

func isBasicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}
