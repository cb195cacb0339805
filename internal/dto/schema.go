package dto

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadPolicy controls whether Load marks a field visited.
type LoadPolicy int

const (
	// MarkOnLoad marks the field visited once loaded from an entity.
	MarkOnLoad LoadPolicy = iota
	// SkipOnLoad leaves the field unvisited after Load, for write-only or
	// derived fields that carry no entity value.
	SkipOnLoad
)

// Field describes one patchable DTO field.
type Field[D RestDTO] struct {
	Name string
	// Copy assigns src's value onto dst through dst's setter.
	Copy   func(dst, src D)
	OnLoad LoadPolicy
}

// Schema is the field table of one DTO family and the patch engine over it.
// A Schema is immutable once built.
type Schema[D RestDTO] struct {
	family string
	fields map[string]Field[D]
	names  []string
}

// NewSchema validates fields and builds the schema of family.
func NewSchema[D RestDTO](family string, fields ...Field[D]) (*Schema[D], error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return nil, fmt.Errorf("dto: schema family required")
	}
	s := &Schema[D]{
		family: family,
		fields: make(map[string]Field[D], len(fields)),
		names:  make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("dto: %s: field name required", family)
		}
		if f.Copy == nil {
			return nil, fmt.Errorf("dto: %s.%s: copy func required", family, f.Name)
		}
		if _, dup := s.fields[f.Name]; dup {
			return nil, fmt.Errorf("dto: %s.%s: duplicate field", family, f.Name)
		}
		s.fields[f.Name] = f
		s.names = append(s.names, f.Name)
	}
	sort.Strings(s.names)
	return s, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema[D RestDTO](family string, fields ...Field[D]) *Schema[D] {
	s, err := NewSchema(family, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema[D]) Family() string { return s.family }

// Fields returns the sorted field names.
func (s *Schema[D]) Fields() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema[D]) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Patch copies every field visited on src onto dst. src must be a non-nil
// D and every visited name must be declared; both are checked before dst
// is touched.
func (s *Schema[D]) Patch(dst D, src RestDTO) error {
	if isNil(src) {
		return fmt.Errorf("%w: cannot patch %s with nil", ErrTypeMismatch, s.family)
	}
	other, ok := src.(D)
	if !ok {
		return fmt.Errorf("%w: cannot patch %s with %s", ErrTypeMismatch, s.family, src.Family())
	}

	visited := other.Visited()
	plan := make([]Field[D], 0, len(visited))
	for _, name := range visited {
		f, ok := s.fields[name]
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrSchemaMismatch, s.family, name)
		}
		plan = append(plan, f)
	}

	for _, f := range plan {
		f.Copy(dst, other)
		dst.SetVisited(f.Name)
	}
	return nil
}

// MarkLoaded marks every MarkOnLoad field of dst visited.
func (s *Schema[D]) MarkLoaded(dst D) {
	for _, name := range s.names {
		if s.fields[name].OnLoad == MarkOnLoad {
			dst.SetVisited(name)
		}
	}
}

// isNil also catches a typed nil pointer held in the interface.
func isNil(v RestDTO) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
