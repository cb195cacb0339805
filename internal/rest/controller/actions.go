package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/form"
	"github.com/yungbote/restkit-backend/internal/rest/resource"
)

// Action names the controller operations; they are also the bare
// resolution keys.
type Action string

const (
	ActionFind    Action = "find"
	ActionFindOne Action = "findOne"
	ActionCount   Action = "count"
	ActionIDs     Action = "ids"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionPatch   Action = "patch"
	ActionDelete  Action = "delete"
)

var (
	ReadActions  = []Action{ActionFind, ActionFindOne, ActionCount, ActionIDs}
	WriteActions = []Action{ActionCreate, ActionUpdate, ActionPatch, ActionDelete}
	AllActions   = append(append([]Action{}, ReadActions...), WriteActions...)
)

// ErrInvalidQuery is returned when list query parameters do not bind.
var ErrInvalidQuery = errors.New("controller: invalid query")

const maxLimit = 1000

type listQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Register mounts actions on r; no actions means all of them.
func (c *Controller) Register(r gin.IRouter, actions ...Action) {
	if len(actions) == 0 {
		actions = AllActions
	}
	for _, a := range actions {
		switch a {
		case ActionFind:
			r.GET("", c.Find)
		case ActionCount:
			r.GET("/count", c.Count)
		case ActionIDs:
			r.GET("/ids", c.IDs)
		case ActionFindOne:
			r.GET("/:id", c.FindOne)
		case ActionCreate:
			r.POST("", c.Create)
		case ActionUpdate:
			r.PUT("/:id", c.Update)
		case ActionPatch:
			r.PATCH("/:id", c.Patch)
		case ActionDelete:
			r.DELETE("/:id", c.Delete)
		}
	}
}

func (c *Controller) Find(ctx *gin.Context) {
	c.run(ctx, ActionFind, func(res resource.Resource, h ResponseHandler, _ string) error {
		var q listQuery
		if err := ctx.ShouldBindQuery(&q); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		if q.Limit == 0 {
			q.Limit = maxLimit
		}
		rows, err := res.Find(ctx.Request.Context(), repos.Query{Limit: q.Limit, Offset: q.Offset})
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, rows)
		return nil
	})
}

func (c *Controller) FindOne(ctx *gin.Context) {
	c.run(ctx, ActionFindOne, func(res resource.Resource, h ResponseHandler, _ string) error {
		entity, err := res.FindOne(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, entity)
		return nil
	})
}

func (c *Controller) Count(ctx *gin.Context) {
	c.run(ctx, ActionCount, func(res resource.Resource, h ResponseHandler, _ string) error {
		n, err := res.Count(ctx.Request.Context())
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, gin.H{"count": n})
		return nil
	})
}

func (c *Controller) IDs(ctx *gin.Context) {
	c.run(ctx, ActionIDs, func(res resource.Resource, h ResponseHandler, _ string) error {
		ids, err := res.IDs(ctx.Request.Context())
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, ids)
		return nil
	})
}

func (c *Controller) Create(ctx *gin.Context) {
	c.run(ctx, ActionCreate, func(res resource.Resource, h ResponseHandler, key string) error {
		d, err := c.submit(ctx, key)
		if err != nil {
			return err
		}
		entity, err := res.Create(ctx.Request.Context(), d)
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusCreated, entity)
		return nil
	})
}

func (c *Controller) Update(ctx *gin.Context) {
	c.run(ctx, ActionUpdate, func(res resource.Resource, h ResponseHandler, key string) error {
		d, err := c.submit(ctx, key)
		if err != nil {
			return err
		}
		entity, err := res.Update(ctx.Request.Context(), ctx.Param("id"), d)
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, entity)
		return nil
	})
}

func (c *Controller) Patch(ctx *gin.Context) {
	c.run(ctx, ActionPatch, func(res resource.Resource, h ResponseHandler, key string) error {
		base, err := c.newDTO(key)
		if err != nil {
			return err
		}
		d, err := c.submit(ctx, key)
		if err != nil {
			return err
		}
		entity, err := res.Patch(ctx.Request.Context(), ctx.Param("id"), base, d)
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, entity)
		return nil
	})
}

func (c *Controller) Delete(ctx *gin.Context) {
	c.run(ctx, ActionDelete, func(res resource.Resource, h ResponseHandler, _ string) error {
		entity, err := res.Delete(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			return err
		}
		h.Respond(ctx, http.StatusOK, entity)
		return nil
	})
}

// submit builds a fresh DTO for key and fills it from the request body.
func (c *Controller) submit(ctx *gin.Context, key string) (dto.RestDTO, error) {
	d, err := c.newDTO(key)
	if err != nil {
		return nil, err
	}
	ft, err := c.newForm(key)
	if err != nil {
		return nil, err
	}
	if err := form.Submit(ctx, ft, d); err != nil {
		return nil, err
	}
	return d, nil
}
