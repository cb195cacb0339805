package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restkit-backend/internal/platform/apierr"
	"github.com/yungbote/restkit-backend/internal/platform/ctxutil"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// fieldErrors is implemented by validation errors that carry per-field
// messages.
type fieldErrors interface {
	FieldErrors() map[string]string
}

// Handler writes JSON payloads and classified errors.
type Handler struct {
	log        *logger.Logger
	classifier *apierr.Classifier
}

func NewHandler(baseLog *logger.Logger, classifier *apierr.Classifier) *Handler {
	return &Handler{log: baseLog.With("component", "ResponseHandler"), classifier: classifier}
}

// Respond writes payload as JSON. A nil payload writes only the status.
func (h *Handler) Respond(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

// Error classifies err and writes the error envelope. Server errors are
// logged and their message is not exposed.
func (h *Handler) Error(c *gin.Context, err error) {
	apiErr := h.classifier.From(err)
	if apiErr == nil {
		apiErr = apierr.New(http.StatusInternalServerError, "internal_error", nil)
	}
	msg := apiErr.Error()
	if apiErr.Status >= http.StatusInternalServerError {
		fields := append([]interface{}{"path", c.FullPath(), "code", apiErr.Code, "error", err}, ctxutil.LogFields(c.Request.Context())...)
		h.log.Error("Request failed", fields...)
		msg = http.StatusText(apiErr.Status)
	}
	env := ErrorEnvelope{Error: APIError{Message: msg, Code: apiErr.Code}}
	var fe fieldErrors
	if errors.As(err, &fe) {
		env.Error.Details = fe.FieldErrors()
	}
	c.AbortWithStatusJSON(apiErr.Status, env)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
