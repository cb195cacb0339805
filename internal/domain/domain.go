package domain

import (
	"github.com/yungbote/restkit-backend/internal/domain/user"
)

// Entity is the persistence-side contract the REST layer relies on.
type Entity interface {
	EntityID() string
}

type (
	User      = user.User
	UserGroup = user.UserGroup
	Role      = user.Role
)

const (
	RoleLogged = user.RoleLogged
	RoleUser   = user.RoleUser
	RoleAdmin  = user.RoleAdmin
	RoleRoot   = user.RoleRoot
	RoleAPI    = user.RoleAPI
)

var (
	Roles  = user.Roles
	IsRole = user.IsRole
)

// Models lists every gorm model owned by the service, in migration order.
func Models() []any {
	return []any{
		&Role{},
		&UserGroup{},
		&User{},
	}
}
