package form

import (
	"errors"

	"github.com/yungbote/restkit-backend/internal/rest/class"
)

const (
	ClassUser           = "UserForm"
	ClassUserPatch      = "UserPatchForm"
	ClassUserAdmin      = "UserAdminForm"
	ClassUserAdminPatch = "UserAdminPatchForm"
	ClassUserGroup      = "UserGroupForm"
	ClassUserGroupPatch = "UserGroupPatchForm"
)

// Register adds every form of this package to c.
func Register(c *class.Catalog) error {
	return errors.Join(
		c.Register(class.Of[UserForm](ClassUser)),
		c.Register(class.Of[UserPatchForm](ClassUserPatch)),
		c.Register(class.Of[UserAdminForm](ClassUserAdmin)),
		c.Register(class.Of[UserAdminPatchForm](ClassUserAdminPatch)),
		c.Register(class.Of[UserGroupForm](ClassUserGroup)),
		c.Register(class.Of[UserGroupPatchForm](ClassUserGroupPatch)),
	)
}
