// Package resolver decides which DTO class and which form type a
// controller uses for an action.
//
// Lookups go context::action, then the bare action, then the resource
// default. Tables are validated against the class catalog when the
// Resolver is built and are read-only afterwards, so a Resolver can be
// shared by concurrent requests.
package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/rest/class"
)

var (
	// ErrResourceNotConfigured is returned when nothing maps an action and
	// no default exists, or a mapped name is not registered.
	ErrResourceNotConfigured = errors.New("resolver: resource not configured")
	// ErrInterfaceViolation is returned when a DTO class does not
	// implement dto.RestDTO.
	ErrInterfaceViolation = errors.New("resolver: interface violation")
)

var restDTOType = reflect.TypeFor[dto.RestDTO]()

type Resolver struct {
	catalog    *class.Catalog
	dtoClasses Table
	formTypes  Table
}

// New builds a Resolver over catalog. Every mapped name must be registered
// and every DTO class must implement dto.RestDTO.
func New(catalog *class.Catalog, dtoClasses, formTypes map[string]string) (*Resolver, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil class catalog", ErrResourceNotConfigured)
	}
	r := &Resolver{
		catalog:    catalog,
		dtoClasses: NewTable(dtoClasses),
		formTypes:  NewTable(formTypes),
	}
	for _, key := range r.dtoClasses.Keys() {
		name, _ := r.dtoClasses.Get(key)
		if _, err := r.dtoDescriptor(name); err != nil {
			return nil, fmt.Errorf("dto class for %q: %w", key, err)
		}
	}
	for _, key := range r.formTypes.Keys() {
		name, _ := r.formTypes.Get(key)
		if _, err := r.lookup(name); err != nil {
			return nil, fmt.Errorf("form type for %q: %w", key, err)
		}
	}
	return r, nil
}

// ResolveDTOClass returns the DTO class for k, or fallback when the table
// has no entry.
func (r *Resolver) ResolveDTOClass(k Key, fallback string) (class.Descriptor, error) {
	name, ok := r.dtoClasses.Lookup(k)
	if !ok {
		name = fallback
	}
	if name == "" {
		return class.Descriptor{}, fmt.Errorf("%w: no dto class for %q", ErrResourceNotConfigured, k.String())
	}
	return r.dtoDescriptor(name)
}

// ResolveFormTypeClass is ResolveDTOClass for form types. Form types are
// checked by the binding layer, not here.
func (r *Resolver) ResolveFormTypeClass(k Key, fallback string) (class.Descriptor, error) {
	name, ok := r.formTypes.Lookup(k)
	if !ok {
		name = fallback
	}
	if name == "" {
		return class.Descriptor{}, fmt.Errorf("%w: no form type for %q", ErrResourceNotConfigured, k.String())
	}
	return r.lookup(name)
}

func (r *Resolver) DTOClasses() Table { return r.dtoClasses }

func (r *Resolver) FormTypes() Table { return r.formTypes }

func (r *Resolver) lookup(name string) (class.Descriptor, error) {
	d, ok := r.catalog.Lookup(name)
	if !ok {
		return class.Descriptor{}, fmt.Errorf("%w: %w: %q", ErrResourceNotConfigured, class.ErrUnknownClass, name)
	}
	return d, nil
}

func (r *Resolver) dtoDescriptor(name string) (class.Descriptor, error) {
	d, err := r.lookup(name)
	if err != nil {
		return class.Descriptor{}, err
	}
	if !d.Implements(restDTOType) {
		return class.Descriptor{}, fmt.Errorf("%w: class %q (%s) does not implement %s", ErrInterfaceViolation, name, d.Type, restDTOType)
	}
	return d, nil
}
