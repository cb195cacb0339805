package form

import (
	"fmt"

	"github.com/yungbote/restkit-backend/internal/dto"
)

func asUserGroup(d dto.RestDTO) (*dto.UserGroupDTO, error) {
	g, ok := d.(*dto.UserGroupDTO)
	if !ok {
		return nil, fmt.Errorf("%w: user group form cannot write %s", ErrUnsupportedTarget, d.Family())
	}
	return g, nil
}

type UserGroupForm struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Role string `json:"role" validate:"required,role"`
}

func (f *UserGroupForm) Apply(d dto.RestDTO) error {
	g, err := asUserGroup(d)
	if err != nil {
		return err
	}
	g.SetName(f.Name).SetRole(f.Role)
	return nil
}

type UserGroupPatchForm struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=255"`
	Role *string `json:"role" validate:"omitempty,role"`
}

func (f *UserGroupPatchForm) Apply(d dto.RestDTO) error {
	g, err := asUserGroup(d)
	if err != nil {
		return err
	}
	if f.Name != nil {
		g.SetName(*f.Name)
	}
	if f.Role != nil {
		g.SetRole(*f.Role)
	}
	return nil
}
