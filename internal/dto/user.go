package dto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/yungbote/restkit-backend/internal/domain"
)

const (
	FieldUsername  = "username"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldMetadata  = "metadata"
	FieldEnabled   = "enabled"
)

// userShape is satisfied by every DTO built on top of UserDTO.
type userShape interface {
	RestDTO
	base() *UserDTO
}

func userFields[D userShape]() []Field[D] {
	return []Field[D]{
		{Name: FieldUsername, Copy: func(dst, src D) { dst.base().SetUsername(src.base().Username()) }},
		{Name: FieldFirstName, Copy: func(dst, src D) { dst.base().SetFirstName(src.base().FirstName()) }},
		{Name: FieldLastName, Copy: func(dst, src D) { dst.base().SetLastName(src.base().LastName()) }},
		{Name: FieldEmail, Copy: func(dst, src D) { dst.base().SetEmail(src.base().Email()) }},
		{Name: FieldMetadata, Copy: func(dst, src D) { dst.base().SetMetadata(src.base().Metadata()) }},
		// The stored value is a hash; there is nothing to load.
		{Name: FieldPassword, Copy: func(dst, src D) { dst.base().SetPassword(src.base().Password()) }, OnLoad: SkipOnLoad},
	}
}

var userSchema = MustSchema[*UserDTO]("user", userFields[*UserDTO]()...)

// UserDTO is the default client view of domain.User.
type UserDTO struct {
	Visits

	username  string
	firstName string
	lastName  string
	email     string
	password  string
	metadata  datatypes.JSON
}

func NewUserDTO() *UserDTO { return &UserDTO{} }

func (d *UserDTO) base() *UserDTO { return d }

func (d *UserDTO) Family() string { return userSchema.Family() }

func (d *UserDTO) Username() string         { return d.username }
func (d *UserDTO) FirstName() string        { return d.firstName }
func (d *UserDTO) LastName() string         { return d.lastName }
func (d *UserDTO) Email() string            { return d.email }
func (d *UserDTO) Password() string         { return d.password }
func (d *UserDTO) Metadata() datatypes.JSON { return d.metadata }

func (d *UserDTO) SetUsername(v string) *UserDTO {
	d.SetVisited(FieldUsername)
	d.username = v
	return d
}

func (d *UserDTO) SetFirstName(v string) *UserDTO {
	d.SetVisited(FieldFirstName)
	d.firstName = v
	return d
}

func (d *UserDTO) SetLastName(v string) *UserDTO {
	d.SetVisited(FieldLastName)
	d.lastName = v
	return d
}

func (d *UserDTO) SetEmail(v string) *UserDTO {
	d.SetVisited(FieldEmail)
	d.email = v
	return d
}

// SetPassword takes the plain text password; Update hashes it.
func (d *UserDTO) SetPassword(v string) *UserDTO {
	d.SetVisited(FieldPassword)
	d.password = v
	return d
}

func (d *UserDTO) SetMetadata(v datatypes.JSON) *UserDTO {
	d.SetVisited(FieldMetadata)
	d.metadata = cloneJSON(v)
	return d
}

func (d *UserDTO) Patch(other RestDTO) error {
	return userSchema.Patch(d, other)
}

func (d *UserDTO) Load(entity domain.Entity) error {
	u, ok := entity.(*domain.User)
	if !ok || u == nil {
		return fmt.Errorf("%w: %s cannot load %T", ErrEntityMismatch, d.Family(), entity)
	}
	d.loadUser(u)
	userSchema.MarkLoaded(d)
	return nil
}

func (d *UserDTO) Update(entity domain.Entity) error {
	u, ok := entity.(*domain.User)
	if !ok || u == nil {
		return fmt.Errorf("%w: %s cannot update %T", ErrEntityMismatch, d.Family(), entity)
	}
	return d.updateUser(u)
}

func (d *UserDTO) loadUser(u *domain.User) {
	d.username = u.Username
	d.firstName = u.FirstName
	d.lastName = u.LastName
	d.email = u.Email
	d.metadata = cloneJSON(u.Metadata)
}

func (d *UserDTO) updateUser(u *domain.User) error {
	if d.IsVisited(FieldUsername) {
		u.Username = d.username
	}
	if d.IsVisited(FieldFirstName) {
		u.FirstName = d.firstName
	}
	if d.IsVisited(FieldLastName) {
		u.LastName = d.lastName
	}
	if d.IsVisited(FieldEmail) {
		u.Email = d.email
	}
	if d.IsVisited(FieldMetadata) {
		u.Metadata = cloneJSON(d.metadata)
	}
	// An empty password never clears the stored hash.
	if d.IsVisited(FieldPassword) && d.password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.Password = string(hash)
	}
	return nil
}

func cloneJSON(v datatypes.JSON) datatypes.JSON {
	if v == nil {
		return nil
	}
	out := make(datatypes.JSON, len(v))
	copy(out, v)
	return out
}
