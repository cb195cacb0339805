package dto

import "errors"

var (
	// ErrSchemaMismatch is returned when a patch source carries a visited
	// field the target DTO type does not declare.
	ErrSchemaMismatch = errors.New("dto: schema mismatch")
	// ErrTypeMismatch is returned when patching across DTO families.
	ErrTypeMismatch = errors.New("dto: type mismatch")
	// ErrEntityMismatch is returned when Load or Update receives an entity
	// the DTO does not map.
	ErrEntityMismatch = errors.New("dto: entity mismatch")
)
