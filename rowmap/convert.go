package rowmap

import (
	"reflect"

	"rowmap-generator/primitive"
)

// Convert converts value to T.
//
// Numbers are converted with range checks, text is parsed, and time.Time and
// time.Duration accept their textual and numeric forms. See primitive.Convert
// for the full list.
func Convert[T any](value any) (T, error) {
	if v, ok := value.(T); ok {
		return v, nil
	}

	var zero T

	out, err := primitive.Convert(value, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return out.Interface().(T), nil
}
