package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/restkit-backend/internal/domain"
)

func TestUserGroupDTORoundTrip(t *testing.T) {
	g := &domain.UserGroup{ID: uuid.New(), Name: "Admins", RoleID: domain.RoleAdmin}

	d := NewUserGroupDTO()
	require.NoError(t, d.Load(g))
	assert.Equal(t, []string{FieldName, FieldRole}, d.Visited())

	fresh := &domain.UserGroup{ID: g.ID}
	require.NoError(t, d.Update(fresh))
	assert.Equal(t, g, fresh)
}

func TestUserGroupDTOPartialUpdate(t *testing.T) {
	g := &domain.UserGroup{Name: "Admins", RoleID: domain.RoleAdmin}
	require.NoError(t, NewUserGroupDTO().SetRole(domain.RoleRoot).Update(g))

	assert.Equal(t, "Admins", g.Name)
	assert.Equal(t, domain.RoleRoot, g.RoleID)
	assert.ErrorIs(t, NewUserGroupDTO().Load(&domain.User{}), ErrEntityMismatch)
}
