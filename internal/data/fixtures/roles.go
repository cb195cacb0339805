package fixtures

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/restkit-backend/internal/domain"
)

type Roles struct{}

func (Roles) Name() string { return "roles" }
func (Roles) Order() int   { return 1 }

// Load creates missing roles and leaves existing rows untouched.
func (Roles) Load(ctx context.Context, tx *gorm.DB, refs References) error {
	for _, id := range domain.Roles() {
		role := &domain.Role{ID: id, Description: "Description - " + id}
		if err := tx.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(role).Error; err != nil {
			return err
		}
		refs["role-"+id] = role
	}
	return nil
}
