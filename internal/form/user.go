package form

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/yungbote/restkit-backend/internal/dto"
)

// userTarget is implemented by dto.UserDTO and everything embedding it.
type userTarget interface {
	SetUsername(string) *dto.UserDTO
	SetFirstName(string) *dto.UserDTO
	SetLastName(string) *dto.UserDTO
	SetEmail(string) *dto.UserDTO
	SetPassword(string) *dto.UserDTO
	SetMetadata(datatypes.JSON) *dto.UserDTO
}

type adminTarget interface {
	userTarget
	SetEnabled(bool) *dto.UserAdminDTO
}

func asUser(d dto.RestDTO) (userTarget, error) {
	u, ok := d.(userTarget)
	if !ok {
		return nil, fmt.Errorf("%w: user form cannot write %s", ErrUnsupportedTarget, d.Family())
	}
	return u, nil
}

func asAdmin(d dto.RestDTO) (adminTarget, error) {
	a, ok := d.(adminTarget)
	if !ok {
		return nil, fmt.Errorf("%w: admin form cannot write %s", ErrUnsupportedTarget, d.Family())
	}
	return a, nil
}

// UserForm is the full user representation used by create and PUT. Every
// field is written; password only when given.
type UserForm struct {
	Username  string          `json:"username" validate:"required,min=2,max=255"`
	FirstName string          `json:"first_name" validate:"required,min=2,max=255"`
	LastName  string          `json:"last_name" validate:"required,min=2,max=255"`
	Email     string          `json:"email" validate:"required,email,max=255"`
	Password  string          `json:"password" validate:"omitempty,min=8,max=72"`
	Metadata  json.RawMessage `json:"metadata"`
}

func (f *UserForm) Apply(d dto.RestDTO) error {
	u, err := asUser(d)
	if err != nil {
		return err
	}
	u.SetUsername(f.Username)
	u.SetFirstName(f.FirstName)
	u.SetLastName(f.LastName)
	u.SetEmail(f.Email)
	u.SetMetadata(datatypes.JSON(f.Metadata))
	if f.Password != "" {
		u.SetPassword(f.Password)
	}
	return nil
}

// UserPatchForm writes only the fields present in the body.
type UserPatchForm struct {
	Username  *string         `json:"username" validate:"omitempty,min=2,max=255"`
	FirstName *string         `json:"first_name" validate:"omitempty,min=2,max=255"`
	LastName  *string         `json:"last_name" validate:"omitempty,min=2,max=255"`
	Email     *string         `json:"email" validate:"omitempty,email,max=255"`
	Password  *string         `json:"password" validate:"omitempty,min=8,max=72"`
	Metadata  json.RawMessage `json:"metadata"`
}

func (f *UserPatchForm) Apply(d dto.RestDTO) error {
	u, err := asUser(d)
	if err != nil {
		return err
	}
	if f.Username != nil {
		u.SetUsername(*f.Username)
	}
	if f.FirstName != nil {
		u.SetFirstName(*f.FirstName)
	}
	if f.LastName != nil {
		u.SetLastName(*f.LastName)
	}
	if f.Email != nil {
		u.SetEmail(*f.Email)
	}
	if f.Password != nil {
		u.SetPassword(*f.Password)
	}
	if f.Metadata != nil {
		u.SetMetadata(datatypes.JSON(f.Metadata))
	}
	return nil
}

type UserAdminForm struct {
	UserForm
	Enabled *bool `json:"enabled" validate:"required"`
}

func (f *UserAdminForm) Apply(d dto.RestDTO) error {
	a, err := asAdmin(d)
	if err != nil {
		return err
	}
	if err := f.UserForm.Apply(d); err != nil {
		return err
	}
	a.SetEnabled(*f.Enabled)
	return nil
}

type UserAdminPatchForm struct {
	UserPatchForm
	Enabled *bool `json:"enabled"`
}

func (f *UserAdminPatchForm) Apply(d dto.RestDTO) error {
	a, err := asAdmin(d)
	if err != nil {
		return err
	}
	if err := f.UserPatchForm.Apply(d); err != nil {
		return err
	}
	if f.Enabled != nil {
		a.SetEnabled(*f.Enabled)
	}
	return nil
}
