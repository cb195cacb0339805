// Package dto holds the client-facing data-transfer objects of the REST
// layer, the visited-field bookkeeping they share and the patch engine
// that merges one DTO onto another.
//
// A DTO only ever writes fields that were explicitly assigned through a
// setter (its visited set). That lets PUT, POST and PATCH share a single
// merge routine: the form layer decides which setters run.
package dto

import "github.com/yungbote/restkit-backend/internal/domain"

// RestDTO is implemented by every resource DTO.
type RestDTO interface {
	// Family names the DTO type; patching is only defined within a family.
	Family() string

	// Visited returns the sorted names of fields assigned since construction.
	Visited() []string

	// SetVisited marks field as assigned. It is idempotent and does not
	// check that field exists.
	SetVisited(field string)

	// Patch merges the visited fields of other onto the receiver. It either
	// applies every field or none.
	Patch(other RestDTO) error

	// Load populates the receiver from entity.
	Load(entity domain.Entity) error

	// Update writes the receiver's visited fields onto entity.
	Update(entity domain.Entity) error
}
