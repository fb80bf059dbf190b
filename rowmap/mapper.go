package rowmap

import (
	"fmt"
	"reflect"
	"sync"

	"rowmap-generator/internal/common"
	"rowmap-generator/internal/plan"
	"rowmap-generator/primitive"
)

// cache holds one *Mapper[T] per struct type, keyed by reflect.Type.
var cache sync.Map

// Mapper assigns values to the properties of T by name.
// A Mapper is immutable and safe for concurrent use.
type Mapper[T any] struct {
	typeName string
	entries  []entry
	byKey    map[string]int
	newT     func() T
}

// entry is one row of the dispatch table.
type entry struct {
	name     string
	key      string
	selector string
	path     []plan.Step
	index    int
	typ      reflect.Type
	category plan.Category
	strategy plan.CoercionStrategy
	// enumBase is the underlying integer type of an enum property.
	enumBase reflect.Type
}

// Option configures a Mapper.
type Option[T any] func(*Mapper[T])

// WithConstructor sets the function used by Materialize to create instances.
func WithConstructor[T any](fn func() T) Option[T] {
	return func(m *Mapper[T]) {
		m.newT = fn
	}
}

// New builds a Mapper for T. T must be a struct type.
func New[T any](opts ...Option[T]) (*Mapper[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, rt)
	}

	target := plan.TargetType{
		ID:            plan.NewReflectSource(rt).ID(),
		Name:          rt.Name(),
		PkgPath:       rt.PkgPath(),
		Constructible: true,
	}

	unit := plan.Plan[reflect.Type](target, plan.NewReflectSource(rt))

	m := &Mapper[T]{
		typeName: rt.String(),
		byKey:    make(map[string]int, len(unit.Mappings)),
	}

	for _, pm := range unit.Active() {
		e := entry{
			name:     pm.Name,
			key:      pm.Key,
			selector: pm.Selector(),
			path:     pm.Path,
			index:    pm.Index,
			typ:      pm.Type,
			category: pm.Category,
			strategy: pm.Strategy,
		}

		if pm.Strategy == plan.StrategyEnumConvert {
			e.enumBase = underlyingInteger(pm.Type)
		}

		m.byKey[e.key] = len(m.entries)
		m.entries = append(m.entries, e)
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// For returns the cached Mapper for T, building it on first use.
// It panics if T is not a struct type.
func For[T any]() *Mapper[T] {
	rt := reflect.TypeFor[T]()
	if m, ok := cache.Load(rt); ok {
		return m.(*Mapper[T])
	}

	m, err := New[T]()
	if err != nil {
		panic(err)
	}

	actual, _ := cache.LoadOrStore(rt, m)

	return actual.(*Mapper[T])
}

// SetByName assigns value to the property of t matching name case-insensitively,
// using the cached Mapper for T.
func SetByName[T any](t *T, name string, value any) error {
	return For[T]().SetByName(t, name, value)
}

// Materialize reads every row of cur into a new T, using the cached Mapper for T.
func Materialize[T any](cur Cursor) ([]T, error) {
	return For[T]().Materialize(cur)
}

// PropertyInfo describes one entry of a Mapper's dispatch table.
type PropertyInfo struct {
	Name     string
	Key      string
	Selector string
	Category string
	Strategy string
}

// Properties lists the properties the Mapper can assign, in matching order.
func (m *Mapper[T]) Properties() []PropertyInfo {
	infos := make([]PropertyInfo, 0, len(m.entries))
	for _, e := range m.entries {
		infos = append(infos, PropertyInfo{
			Name:     e.name,
			Key:      e.key,
			Selector: e.selector,
			Category: e.category.String(),
			Strategy: e.strategy.String(),
		})
	}

	return infos
}

// SetByName assigns value to the property of t matching name case-insensitively.
// Unknown names are ignored. A nil value is the absent value.
func (m *Mapper[T]) SetByName(t *T, name string, value any) error {
	return m.setByKey(t, common.Key(name), value)
}

func (m *Mapper[T]) setByKey(t *T, key string, value any) error {
	i, ok := m.byKey[key]
	if !ok {
		return nil
	}

	e := &m.entries[i]

	if value == nil && e.strategy.SkipsAbsent() {
		return nil
	}

	field := e.field(reflect.ValueOf(t).Elem())

	if err := e.assign(field, value); err != nil {
		return NewFieldError(m.typeName, e.selector, value, err)
	}

	return nil
}

// Materialize reads every row of cur into a new T. It always closes cur.
// Column names are read once, after the first row is fetched.
func (m *Mapper[T]) Materialize(cur Cursor) (_ []T, err error) {
	defer CloseInto(cur, &err)

	out := []T{}
	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return nil, err
		}

		return out, nil
	}

	keys := Keys(cur)

	for {
		t := m.newInstance()

		for i, key := range keys {
			if err := m.setByKey(&t, key, Value(cur, i)); err != nil {
				return nil, err
			}
		}

		out = append(out, t)

		if !cur.Next() {
			break
		}
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (m *Mapper[T]) newInstance() T {
	if m.newT != nil {
		return m.newT()
	}

	var t T

	return t
}

// field walks the embedding path from root, allocating nil embedded pointers.
func (e *entry) field(root reflect.Value) reflect.Value {
	v := root
	for _, step := range e.path {
		v = v.Field(step.Index)
		if step.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}
	}

	return v.Field(e.index)
}

func (e *entry) assign(field reflect.Value, value any) error {
	switch e.strategy {
	case plan.StrategyAssertOrZero:
		if value != nil && assertable(reflect.TypeOf(value), e.typ) {
			field.Set(reflect.ValueOf(value))
		} else {
			field.SetZero()
		}

	case plan.StrategyNullableLift:
		rv := reflect.ValueOf(value)

		switch {
		case value == nil:
			field.SetZero()
		case rv.Type() == e.typ:
			field.Set(rv)
		case rv.Type() == e.typ.Elem():
			ptr := reflect.New(e.typ.Elem())
			ptr.Elem().Set(rv)
			field.Set(ptr)
		default:
			field.SetZero()
		}

	case plan.StrategyEnumConvert:
		rv := reflect.ValueOf(value)

		switch rv.Type() {
		case e.typ:
			field.Set(rv)
		case e.enumBase:
			field.Set(rv.Convert(e.typ))
		default:
			cv, err := primitive.Convert(value, e.enumBase)
			if err != nil {
				return err
			}

			field.Set(cv.Convert(e.typ))
		}

	case plan.StrategyValueConvert:
		rv := reflect.ValueOf(value)
		if rv.Type() == e.typ {
			field.Set(rv)

			return nil
		}

		cv, err := primitive.Convert(value, e.typ)
		if err != nil {
			return err
		}

		field.Set(cv)
	}

	return nil
}

// assertable mirrors the semantics of a type assertion value.(to).
func assertable(from, to reflect.Type) bool {
	if to.Kind() == reflect.Interface {
		return from.Implements(to)
	}

	return from == to
}

// underlyingInteger returns the predeclared integer type with the kind of t.
func underlyingInteger(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64:
		return reflect.TypeFor[int64]()
	case reflect.Uint:
		return reflect.TypeFor[uint]()
	case reflect.Uint8:
		return reflect.TypeFor[uint8]()
	case reflect.Uint16:
		return reflect.TypeFor[uint16]()
	case reflect.Uint32:
		return reflect.TypeFor[uint32]()
	case reflect.Uint64:
		return reflect.TypeFor[uint64]()
	case reflect.Uintptr:
		return reflect.TypeFor[uintptr]()
	default:
		return reflect.TypeFor[int]()
	}
}
