package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupported is returned when no conversion exists between two types.
	ErrUnsupported = errors.New("unsupported conversion")
	// ErrOverflow is returned when a numeric value does not fit the target type.
	ErrOverflow = errors.New("value out of range")
	// ErrSyntax is returned when a textual value cannot be parsed into the target type.
	ErrSyntax = errors.New("invalid syntax")
)

// timeLayouts are tried in order when parsing text into time.Time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Convert converts value into a value of type to.
//
// Supported conversions:
//   - number <-> number, with range checks and round-half-to-even for float -> integer
//   - number, bool, time.Time, time.Duration <-> string (and []byte as text source)
//   - number <-> bool: 0 is false, everything else is true
//   - text (yes, no, on, off, true, false, 1, 0) -> bool
//   - string (RFC3339Nano and common SQL layouts), int (Unix seconds) -> time.Time
//   - string (2h45m), int (nanoseconds), float (seconds) -> time.Duration
//   - any pair accepted by reflect.Value.Convert
//
// Non-nil pointers are dereferenced before converting.
func Convert(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, fmt.Errorf("%w: <nil> to %s", ErrUnsupported, to)
	}

	src := reflect.ValueOf(value)
	for src.Kind() == reflect.Pointer {
		if src.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s to %s", ErrUnsupported, src.Type(), to)
		}

		src = src.Elem()
	}

	if src.Type() == to {
		return src, nil
	}

	out := reflect.New(to).Elem()

	var err error

	switch {
	case to == timeType || (to.ConvertibleTo(timeType) && to.Kind() == reflect.Struct):
		var t time.Time
		if t, err = toTime(src); err == nil {
			out.Set(reflect.ValueOf(t).Convert(to))
		}

	case to == durationType:
		var d time.Duration
		if d, err = toDuration(src); err == nil {
			out.SetInt(int64(d))
		}

	default:
		err = convertByKind(src, out)
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("converting %s to %s: %w", src.Type(), to, err)
	}

	return out, nil
}

// convertByKind fills out from src according to the kind of the target type.
func convertByKind(src, out reflect.Value) error {
	dstKind := FromReflectKind(out.Kind())

	switch {
	case dstKind.IsSigned():
		n, err := toInt64(src)
		if err != nil {
			return err
		}

		if out.OverflowInt(n) {
			return fmt.Errorf("%w: %d", ErrOverflow, n)
		}

		out.SetInt(n)

		return nil

	case dstKind.IsUnsigned():
		n, err := toUint64(src)
		if err != nil {
			return err
		}

		if out.OverflowUint(n) {
			return fmt.Errorf("%w: %d", ErrOverflow, n)
		}

		out.SetUint(n)

		return nil

	case dstKind.IsFloat():
		f, err := toFloat64(src)
		if err != nil {
			return err
		}

		if out.OverflowFloat(f) {
			return fmt.Errorf("%w: %g", ErrOverflow, f)
		}

		out.SetFloat(f)

		return nil

	case dstKind == KindBool:
		b, err := toBool(src)
		if err != nil {
			return err
		}

		out.SetBool(b)

		return nil

	case dstKind == KindString:
		s, err := toString(src)
		if err != nil {
			return err
		}

		out.SetString(s)

		return nil
	}

	// []T -> [N]T and []T -> *[N]T panic on length mismatch.
	if src.Kind() == reflect.Slice && (out.Kind() == reflect.Array || out.Kind() == reflect.Pointer) {
		return ErrUnsupported
	}

	if src.Type().ConvertibleTo(out.Type()) {
		out.Set(src.Convert(out.Type()))

		return nil
	}

	return ErrUnsupported
}

// text returns the textual form of string and []byte sources.
func text(src reflect.Value) (string, bool) {
	switch {
	case src.Kind() == reflect.String:
		return src.String(), true
	case src.Kind() == reflect.Slice && src.Type().Elem().Kind() == reflect.Uint8:
		return string(src.Bytes()), true
	default:
		return "", false
	}
}

func toInt64(src reflect.Value) (int64, error) {
	kind := FromReflectKind(src.Kind())

	switch {
	case kind.IsSigned():
		return src.Int(), nil

	case kind.IsUnsigned():
		u := src.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOverflow, u)
		}

		return int64(u), nil

	case kind.IsFloat():
		f := math.RoundToEven(src.Float())
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %g", ErrOverflow, src.Float())
		}

		return int64(f), nil

	case kind == KindBool:
		if src.Bool() {
			return 1, nil
		}

		return 0, nil
	}

	if s, ok := text(src); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}

		return n, nil
	}

	return 0, ErrUnsupported
}

func toUint64(src reflect.Value) (uint64, error) {
	kind := FromReflectKind(src.Kind())

	switch {
	case kind.IsSigned():
		n := src.Int()
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", ErrOverflow, n)
		}

		return uint64(n), nil

	case kind.IsUnsigned():
		return src.Uint(), nil

	case kind.IsFloat():
		f := math.RoundToEven(src.Float())
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: %g", ErrOverflow, src.Float())
		}

		return uint64(f), nil

	case kind == KindBool:
		if src.Bool() {
			return 1, nil
		}

		return 0, nil
	}

	if s, ok := text(src); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}

		return n, nil
	}

	return 0, ErrUnsupported
}

func toFloat64(src reflect.Value) (float64, error) {
	kind := FromReflectKind(src.Kind())

	switch {
	case kind.IsSigned():
		return float64(src.Int()), nil
	case kind.IsUnsigned():
		return float64(src.Uint()), nil
	case kind.IsFloat():
		return src.Float(), nil
	case kind == KindBool:
		if src.Bool() {
			return 1, nil
		}

		return 0, nil
	}

	if s, ok := text(src); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}

		return f, nil
	}

	return 0, ErrUnsupported
}

func toBool(src reflect.Value) (bool, error) {
	kind := FromReflectKind(src.Kind())

	switch {
	case kind == KindBool:
		return src.Bool(), nil
	case kind.IsSigned():
		return src.Int() != 0, nil
	case kind.IsUnsigned():
		return src.Uint() != 0, nil
	case kind.IsFloat():
		return src.Float() != 0, nil
	}

	if s, ok := text(src); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "t", "true", "yes", "y", "on":
			return true, nil
		case "0", "f", "false", "no", "n", "off":
			return false, nil
		default:
			return false, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}

	return false, ErrUnsupported
}

func toString(src reflect.Value) (string, error) {
	if s, ok := text(src); ok {
		return s, nil
	}

	switch src.Type() {
	case timeType:
		return src.Interface().(time.Time).Format(time.RFC3339Nano), nil
	case durationType:
		return time.Duration(src.Int()).String(), nil
	}

	if src.Type().Implements(stringerType) {
		return src.Interface().(fmt.Stringer).String(), nil
	}

	kind := FromReflectKind(src.Kind())

	switch {
	case kind.IsSigned():
		return strconv.FormatInt(src.Int(), 10), nil
	case kind.IsUnsigned():
		return strconv.FormatUint(src.Uint(), 10), nil
	case kind.IsFloat():
		return strconv.FormatFloat(src.Float(), 'f', -1, kind.Bits()), nil
	case kind == KindBool:
		return strconv.FormatBool(src.Bool()), nil
	}

	return "", ErrUnsupported
}

func toTime(src reflect.Value) (time.Time, error) {
	if src.Type().ConvertibleTo(timeType) && src.Kind() == reflect.Struct {
		return src.Convert(timeType).Interface().(time.Time), nil
	}

	if s, ok := text(src); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}

		return time.Time{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	kind := FromReflectKind(src.Kind())
	if kind.IsInteger() {
		n, err := toInt64(src)
		if err != nil {
			return time.Time{}, err
		}

		return time.Unix(n, 0).UTC(), nil
	}

	return time.Time{}, ErrUnsupported
}

func toDuration(src reflect.Value) (time.Duration, error) {
	if s, ok := text(src); ok {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}

		return d, nil
	}

	kind := FromReflectKind(src.Kind())

	switch {
	case kind.IsInteger():
		n, err := toInt64(src)
		if err != nil {
			return 0, err
		}

		return time.Duration(n), nil

	case kind.IsFloat():
		seconds := src.Float()
		if math.IsNaN(seconds) || math.Abs(seconds) >= float64(math.MaxInt64)/float64(time.Second) {
			return 0, fmt.Errorf("%w: %g", ErrOverflow, seconds)
		}

		return time.Duration(seconds * float64(time.Second)), nil
	}

	return 0, ErrUnsupported
}
