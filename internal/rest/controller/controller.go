// Package controller is the HTTP shell of a REST resource. A Controller
// owns no behavior of its own: each action resolves the DTO class and form
// type for "scope::action", binds the request and hands the DTO to the
// resource.
package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/form"
	"github.com/yungbote/restkit-backend/internal/http/response"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
	"github.com/yungbote/restkit-backend/internal/rest/class"
	"github.com/yungbote/restkit-backend/internal/rest/resolver"
	"github.com/yungbote/restkit-backend/internal/rest/resource"
)

// ErrServiceNotConfigured is returned while the resource or the response
// handler is unset.
var ErrServiceNotConfigured = errors.New("controller: service not configured")

// ResponseHandler writes action results.
type ResponseHandler interface {
	Respond(c *gin.Context, status int, payload any)
	Error(c *gin.Context, err error)
}

type Option func(*Controller)

// WithScope prefixes every action key, e.g. "admin" resolves
// "admin::create" before "create".
func WithScope(scope string) Option {
	return func(c *Controller) {
		c.scope = scope
	}
}

func WithResolver(r *resolver.Resolver) Option {
	return func(c *Controller) {
		c.resolver = r
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// Controller is usable as a zero value; its actions fail with
// ErrServiceNotConfigured until Init is called.
type Controller struct {
	name      string
	resource  resource.Resource
	responder ResponseHandler
	resolver  *resolver.Resolver
	scope     string
	log       *logger.Logger
	metrics   *observability.Metrics
}

func New(name string, res resource.Resource, h ResponseHandler, opts ...Option) *Controller {
	c := &Controller{name: name}
	c.Init(res, h)
	for _, opt := range opts {
		opt(c)
	}
	if c.log != nil {
		c.log = c.log.With("controller", name, "scope", c.scope)
	}
	return c
}

func (c *Controller) Init(res resource.Resource, h ResponseHandler) {
	c.resource = res
	c.responder = h
}

func (c *Controller) Name() string  { return c.name }
func (c *Controller) Scope() string { return c.scope }

func (c *Controller) Resource() (resource.Resource, error) {
	if c.resource == nil {
		return nil, fmt.Errorf("%w: resource service not set", ErrServiceNotConfigured)
	}
	return c.resource, nil
}

func (c *Controller) ResponseHandler() (ResponseHandler, error) {
	if c.responder == nil {
		return nil, fmt.Errorf("%w: response handler not set", ErrServiceNotConfigured)
	}
	return c.responder, nil
}

func (c *Controller) Resolver() *resolver.Resolver { return c.resolver }

// Key returns the resolution key of action under the controller scope.
func (c *Controller) Key(action Action) string {
	return resolver.Key{Context: c.scope, Action: string(action)}.String()
}

// DTOClass resolves key ("action" or "context::action") with the
// resource's DTO class as fallback.
func (c *Controller) DTOClass(key string) (class.Descriptor, error) {
	res, err := c.Resource()
	if err != nil {
		return class.Descriptor{}, err
	}
	if c.resolver == nil {
		return class.Descriptor{}, fmt.Errorf("%w: %s has no class resolver", resolver.ErrResourceNotConfigured, c.name)
	}
	return c.resolver.ResolveDTOClass(resolver.ParseKey(key), res.DTOClass())
}

// FormTypeClass is DTOClass for form types.
func (c *Controller) FormTypeClass(key string) (class.Descriptor, error) {
	res, err := c.Resource()
	if err != nil {
		return class.Descriptor{}, err
	}
	if c.resolver == nil {
		return class.Descriptor{}, fmt.Errorf("%w: %s has no class resolver", resolver.ErrResourceNotConfigured, c.name)
	}
	return c.resolver.ResolveFormTypeClass(resolver.ParseKey(key), res.FormTypeClass())
}

func (c *Controller) newDTO(key string) (dto.RestDTO, error) {
	desc, err := c.DTOClass(key)
	if err != nil {
		return nil, err
	}
	d, ok := desc.New().(dto.RestDTO)
	if !ok {
		return nil, fmt.Errorf("%w: class %q", resolver.ErrInterfaceViolation, desc.Name)
	}
	return d, nil
}

func (c *Controller) newForm(key string) (form.Type, error) {
	desc, err := c.FormTypeClass(key)
	if err != nil {
		return nil, err
	}
	return form.As(desc.New())
}

// run resolves the collaborators, runs fn and reports its error through
// the response handler.
func (c *Controller) run(ctx *gin.Context, action Action, fn func(res resource.Resource, h ResponseHandler, key string) error) {
	key := c.Key(action)
	h, err := c.ResponseHandler()
	if err != nil {
		c.observe(key, "error")
		response.RespondError(ctx, http.StatusInternalServerError, "service_not_configured", err)
		ctx.Abort()
		return
	}
	res, err := c.Resource()
	if err == nil {
		err = fn(res, h, key)
	}
	if err != nil {
		c.observe(key, "error")
		if c.log != nil {
			c.log.Debug("Action failed", "action", key, "error", err)
		}
		h.Error(ctx, err)
		return
	}
	c.observe(key, "ok")
}

func (c *Controller) observe(key, outcome string) {
	c.metrics.ObserveAction(c.name, key, outcome)
}
