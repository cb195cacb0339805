package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type (
	UserRepo      = Repo[*domain.User]
	UserGroupRepo = Repo[*domain.UserGroup]
	RoleRepo      = Repo[*domain.Role]
)

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return New(db, baseLog, "UserRepo", func() *domain.User { return &domain.User{} }, WithIDCheck(IsUUID))
}

func NewUserGroupRepo(db *gorm.DB, baseLog *logger.Logger) UserGroupRepo {
	return New(db, baseLog, "UserGroupRepo", func() *domain.UserGroup { return &domain.UserGroup{} }, WithIDCheck(IsUUID))
}

// NewRoleRepo keys roles by name, so any id may be looked up.
func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return New(db, baseLog, "RoleRepo", func() *domain.Role { return &domain.Role{} })
}
