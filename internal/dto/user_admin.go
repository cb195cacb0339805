package dto

import (
	"fmt"

	"github.com/yungbote/restkit-backend/internal/domain"
)

var userAdminSchema = MustSchema[*UserAdminDTO]("user.admin", append(
	userFields[*UserAdminDTO](),
	Field[*UserAdminDTO]{Name: FieldEnabled, Copy: func(dst, src *UserAdminDTO) { dst.SetEnabled(src.Enabled()) }},
)...)

// UserAdminDTO extends UserDTO with fields only administrators may write.
type UserAdminDTO struct {
	UserDTO

	enabled bool
}

func NewUserAdminDTO() *UserAdminDTO { return &UserAdminDTO{} }

func (d *UserAdminDTO) Family() string { return userAdminSchema.Family() }

func (d *UserAdminDTO) Enabled() bool { return d.enabled }

func (d *UserAdminDTO) SetEnabled(v bool) *UserAdminDTO {
	d.SetVisited(FieldEnabled)
	d.enabled = v
	return d
}

func (d *UserAdminDTO) Patch(other RestDTO) error {
	return userAdminSchema.Patch(d, other)
}

func (d *UserAdminDTO) Load(entity domain.Entity) error {
	u, ok := entity.(*domain.User)
	if !ok || u == nil {
		return fmt.Errorf("%w: %s cannot load %T", ErrEntityMismatch, d.Family(), entity)
	}
	d.loadUser(u)
	d.enabled = u.Enabled
	userAdminSchema.MarkLoaded(d)
	return nil
}

func (d *UserAdminDTO) Update(entity domain.Entity) error {
	u, ok := entity.(*domain.User)
	if !ok || u == nil {
		return fmt.Errorf("%w: %s cannot update %T", ErrEntityMismatch, d.Family(), entity)
	}
	if err := d.updateUser(u); err != nil {
		return err
	}
	if d.IsVisited(FieldEnabled) {
		u.Enabled = d.enabled
	}
	return nil
}
