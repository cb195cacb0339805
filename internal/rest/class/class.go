// Package class is the typed stand-in for class names: every DTO and form
// type a controller may resolve is registered once under a string name,
// together with its reflect.Type and a factory.
package class

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNilType is returned when a descriptor carries no type.
	ErrNilType = errors.New("class: nil type")
	// ErrEmptyName is returned when a descriptor has an empty name.
	ErrEmptyName = errors.New("class: empty name")
	// ErrConflictingRegistration indicates a name already bound to another type.
	ErrConflictingRegistration = errors.New("class: conflicting registration")
	// ErrUnknownClass marks a name missing from a catalog.
	ErrUnknownClass = errors.New("class: unknown class")
)

// Descriptor identifies one registered class.
type Descriptor struct {
	Name string
	Type reflect.Type
	New  func() any
}

// Of describes *T under name.
func Of[T any](name string) Descriptor {
	return Descriptor{
		Name: name,
		Type: reflect.TypeFor[*T](),
		New:  func() any { return new(T) },
	}
}

// Implements reports whether the described type satisfies iface, without
// instantiating it.
func (d Descriptor) Implements(iface reflect.Type) bool {
	if d.Type == nil || iface == nil || iface.Kind() != reflect.Interface {
		return false
	}
	return d.Type.Implements(iface)
}

func (d Descriptor) IsZero() bool { return d.Name == "" && d.Type == nil }

// Catalog maps class names to descriptors. Registration is safe from
// several goroutines; lookups are expected after registration is done.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Descriptor)}
}

// Register adds d. Re-registering the same name and type is a no-op.
func (c *Catalog) Register(d Descriptor) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.Type == nil {
		return fmt.Errorf("%w: %s", ErrNilType, d.Name)
	}
	if d.New == nil {
		t := d.Type
		d.New = func() any {
			if t.Kind() == reflect.Pointer {
				return reflect.New(t.Elem()).Interface()
			}
			return reflect.New(t).Elem().Interface()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[d.Name]; ok {
		if old.Type == d.Type {
			return nil
		}
		return fmt.Errorf("%w: %s is %s, not %s", ErrConflictingRegistration, d.Name, old.Type, d.Type)
	}
	c.entries[d.Name] = d
	return nil
}

// MustRegister panics on the first registration error.
func (c *Catalog) MustRegister(ds ...Descriptor) *Catalog {
	for _, d := range ds {
		if err := c.Register(d); err != nil {
			panic(err)
		}
	}
	return c
}

func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.entries[name]
	return d, ok
}

// Names returns registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for name := range c.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
