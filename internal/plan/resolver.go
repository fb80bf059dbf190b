package plan

import (
	"slices"
	"strings"

	"rowmap-generator/internal/common"
)

// Resolve enumerates the settable properties of src and, transitively, of every
// embedded base.
//
// Properties declared directly on a type come first, in declaration order,
// followed by the properties of each embedded base in declaration order.
// A name is owned by its shallowest declaration, the way Go promotes fields:
// a more derived declaration shadows every deeper one, even when it is
// excluded with `rowmap:"-"` or is an embedded field itself. Between
// declarations at the same depth the first one in that order wins.
// Names differing only by case are all kept; the first one wins when matching.
func Resolve[T any](src Source[T]) []Property[T] {
	r := &resolver[T]{
		visiting: make(map[string]bool),
	}

	r.walk(src, nil)

	owner := make(map[string]int, len(r.decls))
	for i, d := range r.decls {
		if j, ok := owner[d.name]; !ok || d.depth < r.decls[j].depth {
			owner[d.name] = i
		}
	}

	props := make([]Property[T], 0, len(r.decls))
	for i, d := range r.decls {
		if d.prop != nil && owner[d.name] == i {
			props = append(props, *d.prop)
		}
	}

	return props
}

// decl is a name declared somewhere in the embedding tree. Only settable
// fields carry a property; excluded and embedded fields just claim the name.
type decl[T any] struct {
	name  string
	depth int
	prop  *Property[T]
}

type resolver[T any] struct {
	visiting map[string]bool
	decls    []decl[T]
}

func (r *resolver[T]) walk(src Source[T], path []Step) {
	id := src.ID()
	if r.visiting[id] {
		return
	}

	r.visiting[id] = true
	defer delete(r.visiting, id)

	fields := src.Fields()
	depth := len(path)

	for _, f := range fields {
		d := decl[T]{name: f.Name, depth: depth}

		key, ok := matchingKey(f)
		if ok && f.Base == nil && f.Exported {
			d.prop = &Property[T]{
				Name:     f.Name,
				Key:      key,
				Type:     f.Type,
				Category: f.Category,
				Index:    f.Index,
				Path:     path,
				Owner:    id,
			}
		}

		r.decls = append(r.decls, d)
	}

	for _, f := range fields {
		if f.Base == nil {
			continue
		}

		if _, ok := matchingKey(f); !ok {
			continue
		}

		step := Step{Name: f.Name, Index: f.Index, Pointer: f.Pointer, Exported: f.Exported, Owner: id}
		r.walk(f.Base, append(slices.Clip(path), step))
	}
}

// matchingKey returns the key a field is matched by, or false if the field is
// excluded with `rowmap:"-"`.
func matchingKey[T any](f Field[T]) (string, bool) {
	tag := f.Tag.Get(TagName)
	name, _, _ := strings.Cut(tag, ",")

	switch name {
	case "-":
		return "", false
	case "":
		return common.Key(f.Name), true
	default:
		return common.Key(name), true
	}
}
