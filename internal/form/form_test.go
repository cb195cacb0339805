package form

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/rest/class"
)

func jsonContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestUserPatchFormMarksOnlySentFields(t *testing.T) {
	c := jsonContext(t, `{"first_name":"Alicia"}`)
	d := dto.NewUserDTO()

	require.NoError(t, Submit(c, &UserPatchForm{}, d))

	assert.Equal(t, []string{dto.FieldFirstName}, d.Visited())
	assert.Equal(t, "Alicia", d.FirstName())
}

func TestUserFormMarksEveryField(t *testing.T) {
	c := jsonContext(t, `{"username":"alice","first_name":"Alice","last_name":"Liddell","email":"alice@example.com"}`)
	d := dto.NewUserDTO()

	require.NoError(t, Submit(c, &UserForm{}, d))

	assert.Equal(t, []string{dto.FieldEmail, dto.FieldFirstName, dto.FieldLastName, dto.FieldMetadata, dto.FieldUsername}, d.Visited())
}

func TestUserFormValidation(t *testing.T) {
	c := jsonContext(t, `{"username":"a","first_name":"Alice","email":"nope","password":"short"}`)

	err := Submit(c, &UserForm{}, dto.NewUserDTO())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 2 characters", verr.Fields["username"])
	assert.Equal(t, "is required", verr.Fields["last_name"])
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Contains(t, verr.Fields, "password")
	assert.NotContains(t, verr.Fields, "first_name")
	assert.Contains(t, verr.Error(), "email: must be a valid email address")
}

func TestBindRejectsMalformedBody(t *testing.T) {
	err := Bind(jsonContext(t, `{"name":`), &UserGroupForm{})
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestUserGroupFormRoleRule(t *testing.T) {
	err := Submit(jsonContext(t, `{"name":"Admins","role":"ROLE_NOPE"}`), &UserGroupForm{}, dto.NewUserGroupDTO())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["role"], domain.RoleAdmin)

	d := dto.NewUserGroupDTO()
	require.NoError(t, Submit(jsonContext(t, `{"role":"ROLE_ADMIN"}`), &UserGroupPatchForm{}, d))
	assert.Equal(t, []string{dto.FieldRole}, d.Visited())
}

func TestAdminFormsRequireAdminDTO(t *testing.T) {
	enabled := false
	f := &UserAdminPatchForm{Enabled: &enabled}

	assert.ErrorIs(t, f.Apply(dto.NewUserDTO()), ErrUnsupportedTarget)

	d := dto.NewUserAdminDTO()
	require.NoError(t, f.Apply(d))
	assert.Equal(t, []string{dto.FieldEnabled}, d.Visited())

	err := Validate(&UserAdminForm{UserForm: UserForm{Username: "alice", FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["enabled"])
}

func TestFormsRejectForeignDTOs(t *testing.T) {
	assert.ErrorIs(t, (&UserGroupForm{}).Apply(dto.NewUserDTO()), ErrUnsupportedTarget)
	assert.ErrorIs(t, (&UserForm{}).Apply(dto.NewUserGroupDTO()), ErrUnsupportedTarget)
}

func TestRegisterAndAs(t *testing.T) {
	c := class.NewCatalog()
	require.NoError(t, Register(c))
	assert.Equal(t, 6, c.Len())

	d, ok := c.Lookup(ClassUserPatch)
	require.True(t, ok)
	ft, err := As(d.New())
	require.NoError(t, err)
	assert.IsType(t, &UserPatchForm{}, ft)

	_, err = As(dto.NewUserDTO())
	assert.ErrorIs(t, err, ErrNotAForm)
}
