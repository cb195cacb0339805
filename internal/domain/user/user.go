package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User rows are soft deleted; username and email are unique among live
// rows only, so a deleted user's names can be taken again.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex:idx_user_username,where:deleted_at IS NULL;not null;column:username" json:"username"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Email     string    `gorm:"uniqueIndex:idx_user_email,where:deleted_at IS NULL;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Enabled   bool      `gorm:"not null;column:enabled" json:"enabled"`

	// Free-form client settings, stored as jsonb.
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	UserGroups []*UserGroup `gorm:"many2many:user_has_user_group;" json:"user_groups,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "user" }

func (u *User) EntityID() string { return u.ID.String() }

// BeforeCreate assigns an id when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
