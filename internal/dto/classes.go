package dto

import (
	"errors"

	"github.com/yungbote/restkit-backend/internal/rest/class"
)

// Class names under which the DTOs are registered.
const (
	ClassUser      = "UserDTO"
	ClassUserAdmin = "UserAdminDTO"
	ClassUserGroup = "UserGroupDTO"
)

// Register adds every DTO of this package to c.
func Register(c *class.Catalog) error {
	return errors.Join(
		c.Register(class.Of[UserDTO](ClassUser)),
		c.Register(class.Of[UserAdminDTO](ClassUserAdmin)),
		c.Register(class.Of[UserGroupDTO](ClassUserGroup)),
	)
}
