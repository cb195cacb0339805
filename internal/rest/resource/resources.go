package resource

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/restkit-backend/internal/data/cache"
	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/form"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

// Deps are the shared collaborators of the concrete resources. Redis and
// Metrics may be nil.
type Deps struct {
	Log      *logger.Logger
	Redis    *goredis.Client
	CacheTTL time.Duration
	Metrics  *observability.Metrics
}

func NewUserResource(repo repos.UserRepo, deps Deps) *Service[*domain.User] {
	newUser := func() *domain.User { return &domain.User{Enabled: true} }
	return NewService("UserResource", repo, deps.Log, newUser,
		WithDefaults[*domain.User](dto.ClassUser, form.ClassUser),
		WithCache(entityCache(deps, "user", newUser)),
		WithMetrics[*domain.User](deps.Metrics),
	)
}

func NewUserGroupResource(repo repos.UserGroupRepo, deps Deps) *Service[*domain.UserGroup] {
	newGroup := func() *domain.UserGroup { return &domain.UserGroup{} }
	return NewService("UserGroupResource", repo, deps.Log, newGroup,
		WithDefaults[*domain.UserGroup](dto.ClassUserGroup, form.ClassUserGroup),
		WithCache(entityCache(deps, "user_group", newGroup)),
		WithMetrics[*domain.UserGroup](deps.Metrics),
	)
}

// NewRoleResource serves roles read-only. Roles come from fixtures and have
// no DTO.
func NewRoleResource(repo repos.RoleRepo, deps Deps) *Service[*domain.Role] {
	return NewService("RoleResource", repo, deps.Log, func() *domain.Role { return &domain.Role{} },
		ReadOnly[*domain.Role](),
		WithMetrics[*domain.Role](deps.Metrics),
	)
}

func entityCache[E domain.Entity](deps Deps, name string, newEntity func() E) *cache.Entity[E] {
	if deps.Redis == nil {
		return nil
	}
	opts := []cache.Option[E]{}
	if deps.CacheTTL > 0 {
		opts = append(opts, cache.WithTTL[E](deps.CacheTTL))
	}
	return cache.New(deps.Redis, deps.Log, name, newEntity, opts...)
}
