package dto

import (
	"fmt"

	"github.com/yungbote/restkit-backend/internal/domain"
)

const (
	FieldName = "name"
	FieldRole = "role"
)

var userGroupSchema = MustSchema[*UserGroupDTO]("user_group",
	Field[*UserGroupDTO]{Name: FieldName, Copy: func(dst, src *UserGroupDTO) { dst.SetName(src.Name()) }},
	Field[*UserGroupDTO]{Name: FieldRole, Copy: func(dst, src *UserGroupDTO) { dst.SetRole(src.Role()) }},
)

type UserGroupDTO struct {
	Visits

	name string
	role string
}

func NewUserGroupDTO() *UserGroupDTO { return &UserGroupDTO{} }

func (d *UserGroupDTO) Family() string { return userGroupSchema.Family() }

func (d *UserGroupDTO) Name() string { return d.name }
func (d *UserGroupDTO) Role() string { return d.role }

func (d *UserGroupDTO) SetName(v string) *UserGroupDTO {
	d.SetVisited(FieldName)
	d.name = v
	return d
}

func (d *UserGroupDTO) SetRole(v string) *UserGroupDTO {
	d.SetVisited(FieldRole)
	d.role = v
	return d
}

func (d *UserGroupDTO) Patch(other RestDTO) error {
	return userGroupSchema.Patch(d, other)
}

func (d *UserGroupDTO) Load(entity domain.Entity) error {
	g, ok := entity.(*domain.UserGroup)
	if !ok || g == nil {
		return fmt.Errorf("%w: %s cannot load %T", ErrEntityMismatch, d.Family(), entity)
	}
	d.name = g.Name
	d.role = g.RoleID
	userGroupSchema.MarkLoaded(d)
	return nil
}

func (d *UserGroupDTO) Update(entity domain.Entity) error {
	g, ok := entity.(*domain.UserGroup)
	if !ok || g == nil {
		return fmt.Errorf("%w: %s cannot update %T", ErrEntityMismatch, d.Family(), entity)
	}
	if d.IsVisited(FieldName) {
		g.Name = d.name
	}
	if d.IsVisited(FieldRole) {
		g.RoleID = d.role
	}
	return nil
}
