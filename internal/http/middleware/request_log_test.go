package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

func TestRequestLoggerAndMetricsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(log), Metrics(observability.NewMetrics()), Metrics(nil))
	r.GET("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
