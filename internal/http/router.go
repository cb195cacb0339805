package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/restkit-backend/internal/http/handlers"
	httpMW "github.com/yungbote/restkit-backend/internal/http/middleware"
	"github.com/yungbote/restkit-backend/internal/http/response"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
	"github.com/yungbote/restkit-backend/internal/rest/controller"
)

// Route mounts a controller under Path, relative to /api. Empty Actions
// mounts all of them.
type Route struct {
	Path       string
	Controller *controller.Controller
	Actions    []controller.Action
}

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	Tracing     bool
	CORSOrigins []string

	HealthHandler *httpH.HealthHandler
	Routes        []Route
}

var errRouteNotFound = errors.New("route not found")

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	for _, route := range cfg.Routes {
		if route.Controller == nil {
			continue
		}
		route.Controller.Register(api.Group(route.Path), route.Actions...)
	}

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, http.StatusNotFound, "not_found", errRouteNotFound)
	})
	return r
}
