// Package resource implements the service side of a REST resource: it
// owns the entity repository and turns DTOs into persisted entities.
package resource

import (
	"context"
	"errors"

	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
)

// ErrReadOnly is returned by write operations on a read-only resource.
var ErrReadOnly = errors.New("resource: read only")

// Resource is what a controller dispatches to.
type Resource interface {
	// DTOClass is the default DTO class name for actions with no mapping.
	DTOClass() string
	// FormTypeClass is the default form type name.
	FormTypeClass() string

	Find(ctx context.Context, q repos.Query) ([]domain.Entity, error)
	FindOne(ctx context.Context, id string) (domain.Entity, error)
	Count(ctx context.Context) (int64, error)
	IDs(ctx context.Context) ([]string, error)

	Create(ctx context.Context, d dto.RestDTO) (domain.Entity, error)
	// Update writes the visited fields of d onto the stored entity.
	Update(ctx context.Context, id string, d dto.RestDTO) (domain.Entity, error)
	// Patch loads the stored entity into base, patches d onto base and
	// writes base back.
	Patch(ctx context.Context, id string, base, d dto.RestDTO) (domain.Entity, error)
	Delete(ctx context.Context, id string) (domain.Entity, error)
}
