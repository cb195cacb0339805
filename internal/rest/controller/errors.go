package controller

import (
	"net/http"

	"github.com/yungbote/restkit-backend/internal/data/db"
	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/form"
	"github.com/yungbote/restkit-backend/internal/platform/apierr"
	"github.com/yungbote/restkit-backend/internal/rest/resolver"
	"github.com/yungbote/restkit-backend/internal/rest/resource"
)

// ErrorRules maps the REST layer's errors to HTTP statuses. Client errors
// come first; anything unmatched is a 500.
func ErrorRules() []apierr.Rule {
	return []apierr.Rule{
		{Target: form.ErrInvalidBody, Status: http.StatusBadRequest, Code: "invalid_body"},
		{Target: form.ErrValidation, Status: http.StatusBadRequest, Code: "validation_failed"},
		{Target: ErrInvalidQuery, Status: http.StatusBadRequest, Code: "invalid_query"},
		{Target: repos.ErrNotFound, Status: http.StatusNotFound, Code: "not_found"},
		{Target: db.ErrConflict, Status: http.StatusConflict, Code: "conflict"},
		{Target: resource.ErrReadOnly, Status: http.StatusMethodNotAllowed, Code: "read_only"},
		{Target: dto.ErrSchemaMismatch, Status: http.StatusInternalServerError, Code: "schema_mismatch"},
		{Target: dto.ErrTypeMismatch, Status: http.StatusInternalServerError, Code: "type_mismatch"},
		{Target: dto.ErrEntityMismatch, Status: http.StatusInternalServerError, Code: "entity_mismatch"},
		{Target: resolver.ErrInterfaceViolation, Status: http.StatusInternalServerError, Code: "interface_violation"},
		{Target: resolver.ErrResourceNotConfigured, Status: http.StatusInternalServerError, Code: "resource_not_configured"},
		{Target: ErrServiceNotConfigured, Status: http.StatusInternalServerError, Code: "service_not_configured"},
		{Target: form.ErrNotAForm, Status: http.StatusInternalServerError, Code: "not_a_form"},
		{Target: form.ErrUnsupportedTarget, Status: http.StatusInternalServerError, Code: "unsupported_dto"},
	}
}
