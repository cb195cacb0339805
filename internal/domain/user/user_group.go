package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserGroup struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"not null;column:name" json:"name"`
	RoleID string    `gorm:"not null;index;column:role_id" json:"role"`

	Role  *Role   `gorm:"foreignKey:RoleID;references:ID" json:"-"`
	Users []*User `gorm:"many2many:user_has_user_group;" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserGroup) TableName() string { return "user_group" }

func (g *UserGroup) EntityID() string { return g.ID.String() }

func (g *UserGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
