package user

import "time"

const (
	RoleLogged = "ROLE_LOGGED"
	RoleUser   = "ROLE_USER"
	RoleAdmin  = "ROLE_ADMIN"
	RoleRoot   = "ROLE_ROOT"
	RoleAPI    = "ROLE_API"
)

// Roles lists every role in inheritance order, lowest first.
func Roles() []string {
	return []string{RoleLogged, RoleUser, RoleAdmin, RoleRoot, RoleAPI}
}

// IsRole reports whether name is one of Roles.
func IsRole(name string) bool {
	for _, r := range Roles() {
		if r == name {
			return true
		}
	}
	return false
}

// Role is keyed by its name, e.g. ROLE_ADMIN.
type Role struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Role) TableName() string { return "role" }

func (r *Role) EntityID() string { return r.ID }
