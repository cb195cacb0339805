package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/domain"
)

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, id string) *domain.Role {
	tb.Helper()
	r := &domain.Role{ID: id, Description: "Description - " + id}
	if err := tx.WithContext(ctx).Where(domain.Role{ID: id}).FirstOrCreate(r).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
	return r
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Enabled:   true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedUserGroup(tb testing.TB, ctx context.Context, tx *gorm.DB, name, role string) *domain.UserGroup {
	tb.Helper()
	SeedRole(tb, ctx, tx, role)
	g := &domain.UserGroup{
		ID:     uuid.New(),
		Name:   name,
		RoleID: role,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed user group: %v", err)
	}
	return g
}
