package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/data/repos"
	httpserver "github.com/yungbote/restkit-backend/internal/http"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
	"github.com/yungbote/restkit-backend/internal/rest/controller"
	"github.com/yungbote/restkit-backend/internal/rest/resolver"
	"github.com/yungbote/restkit-backend/internal/rest/resource"
)

type Repos struct {
	User      repos.UserRepo
	UserGroup repos.UserGroupRepo
	Role      repos.RoleRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserGroup: repos.NewUserGroupRepo(db, log),
		Role:      repos.NewRoleRepo(db, log),
	}
}

type Resources struct {
	User      resource.Resource
	UserGroup resource.Resource
	Role      resource.Resource
}

func wireResources(r Repos, deps resource.Deps) Resources {
	deps.Log.Info("Wiring resources...")
	return Resources{
		User:      resource.NewUserResource(r.User, deps),
		UserGroup: resource.NewUserGroupResource(r.UserGroup, deps),
		Role:      resource.NewRoleResource(r.Role, deps),
	}
}

type Controllers struct {
	User      *controller.Controller
	UserAdmin *controller.Controller
	UserGroup *controller.Controller
	Role      *controller.Controller
}

func wireControllers(
	log *logger.Logger,
	res Resources,
	resolvers map[string]*resolver.Resolver,
	h controller.ResponseHandler,
	metrics *observability.Metrics,
) (Controllers, error) {
	log.Info("Wiring controllers...")
	build := func(name string, r resource.Resource, opts ...controller.Option) (*controller.Controller, error) {
		rs, ok := resolvers[name]
		if !ok {
			return nil, fmt.Errorf("%w: no class tables for controller %s", resolver.ErrResourceNotConfigured, name)
		}
		opts = append([]controller.Option{
			controller.WithResolver(rs),
			controller.WithLogger(log),
			controller.WithMetrics(metrics),
		}, opts...)
		return controller.New(name, r, h, opts...), nil
	}

	var (
		out Controllers
		err error
	)
	if out.User, err = build(ControllerUser, res.User); err != nil {
		return Controllers{}, err
	}
	if out.UserAdmin, err = build(ControllerUserAdmin, res.User, controller.WithScope("admin")); err != nil {
		return Controllers{}, err
	}
	if out.UserGroup, err = build(ControllerUserGroup, res.UserGroup); err != nil {
		return Controllers{}, err
	}
	if out.Role, err = build(ControllerRole, res.Role); err != nil {
		return Controllers{}, err
	}
	return out, nil
}

// All lists the controllers in route order.
func (c Controllers) All() []*controller.Controller {
	return []*controller.Controller{c.User, c.UserAdmin, c.UserGroup, c.Role}
}

func (c Controllers) Routes() []httpserver.Route {
	return []httpserver.Route{
		{Path: "/users", Controller: c.User},
		{Path: "/admin/users", Controller: c.UserAdmin},
		{Path: "/user_groups", Controller: c.UserGroup},
		{Path: "/roles", Controller: c.Role, Actions: controller.ReadActions},
	}
}
