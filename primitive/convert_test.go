package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmap-generator/primitive"
)

type Level int

type Code string

func TestConvert(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	seven := 7

	tests := []struct {
		name  string
		value any
		to    reflect.Type
		want  any
	}{
		{"int16 to int", int16(7), reflect.TypeFor[int](), 7},
		{"int64 to int32", int64(-12), reflect.TypeFor[int32](), int32(-12)},
		{"uint8 to int64", uint8(200), reflect.TypeFor[int64](), int64(200)},
		{"float rounds half to even", 2.5, reflect.TypeFor[int](), 2},
		{"float rounds up", 3.5, reflect.TypeFor[int](), 4},
		{"int to float", 3, reflect.TypeFor[float64](), 3.0},
		{"text to int", " 42 ", reflect.TypeFor[int](), 42},
		{"bytes to int", []byte("17"), reflect.TypeFor[int](), 17},
		{"text to float32", "1.5", reflect.TypeFor[float32](), float32(1.5)},
		{"bool to int", true, reflect.TypeFor[int](), 1},
		{"int to bool", int64(0), reflect.TypeFor[bool](), false},
		{"yes to bool", "Yes", reflect.TypeFor[bool](), true},
		{"off to bool", "off", reflect.TypeFor[bool](), false},
		{"int to string", 12, reflect.TypeFor[string](), "12"},
		{"bytes to string", []byte("abc"), reflect.TypeFor[string](), "abc"},
		{"float to string", 0.25, reflect.TypeFor[string](), "0.25"},
		{"time to string", stamp, reflect.TypeFor[string](), "2024-03-01T12:30:00Z"},
		{"string to time", "2024-03-01T12:30:00Z", reflect.TypeFor[time.Time](), stamp},
		{"sql layout to time", "2024-03-01 12:30:00", reflect.TypeFor[time.Time](), stamp},
		{"unix seconds to time", stamp.Unix(), reflect.TypeFor[time.Time](), stamp},
		{"text to duration", "2h45m", reflect.TypeFor[time.Duration](), 2*time.Hour + 45*time.Minute},
		{"nanoseconds to duration", int64(1500), reflect.TypeFor[time.Duration](), 1500 * time.Nanosecond},
		{"seconds to duration", 1.5, reflect.TypeFor[time.Duration](), 1500 * time.Millisecond},
		{"int16 to defined int", int16(3), reflect.TypeFor[Level](), Level(3)},
		{"string to defined string", "X1", reflect.TypeFor[Code](), Code("X1")},
		{"pointer is dereferenced", &seven, reflect.TypeFor[int64](), int64(7)},
		{"identical type", stamp, reflect.TypeFor[time.Time](), stamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := primitive.Convert(tt.value, tt.to)
			require.NoError(t, err, spew.Sdump(tt.value))
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  any
		to     reflect.Type
		target error
	}{
		{"nil", nil, reflect.TypeFor[int](), primitive.ErrUnsupported},
		{"nil pointer", (*int)(nil), reflect.TypeFor[int](), primitive.ErrUnsupported},
		{"overflow int8", 300, reflect.TypeFor[int8](), primitive.ErrOverflow},
		{"negative to uint", -1, reflect.TypeFor[uint](), primitive.ErrOverflow},
		{"bad number text", "abc", reflect.TypeFor[int](), primitive.ErrSyntax},
		{"bad bool text", "maybe", reflect.TypeFor[bool](), primitive.ErrSyntax},
		{"bad time text", "yesterday", reflect.TypeFor[time.Time](), primitive.ErrSyntax},
		{"struct to int", struct{}{}, reflect.TypeFor[int](), primitive.ErrUnsupported},
		{"slice to array", []int{1}, reflect.TypeFor[[2]int](), primitive.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := primitive.Convert(tt.value, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
