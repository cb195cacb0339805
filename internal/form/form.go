// Package form binds request bodies onto DTOs. A form type decodes and
// validates the JSON body, then calls only the DTO setters for fields the
// client sent, which is what makes those fields visited.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
)

var (
	// ErrInvalidBody is returned when the body cannot be decoded.
	ErrInvalidBody = errors.New("form: invalid body")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("form: validation failed")
	// ErrNotAForm is returned when a resolved form class is not a Type.
	ErrNotAForm = errors.New("form: not a form type")
	// ErrUnsupportedTarget is returned when a form cannot write onto a DTO.
	ErrUnsupportedTarget = errors.New("form: unsupported dto")
)

// Type is implemented by every form.
type Type interface {
	// Apply assigns the submitted fields onto d through its setters.
	Apply(d dto.RestDTO) error
}

// ValidationError lists failed fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) FieldErrors() map[string]string { return e.Fields }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range sortedKeys(e.Fields) {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "form: validation failed: " + strings.Join(parts, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.IsRole(fl.Field().String())
	})
	return v
}

// As checks that v, usually a class.Descriptor product, is a form.
func As(v any) (Type, error) {
	ft, ok := v.(Type)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAForm, v)
	}
	return ft, nil
}

// Bind decodes the request body into ft and validates it.
func Bind(c *gin.Context, ft Type) error {
	if err := c.ShouldBindJSON(ft); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return Validate(ft)
}

// Validate runs the struct rules of ft.
func Validate(ft Type) error {
	err := validate.Struct(ft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

// Submit binds the request into ft and applies it onto d.
func Submit(c *gin.Context, ft Type, d dto.RestDTO) error {
	if err := Bind(c, ft); err != nil {
		return err
	}
	return ft.Apply(d)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "role":
		return "must be one of " + strings.Join(domain.Roles(), ", ")
	default:
		return "failed " + fe.Tag()
	}
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
