package user

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestUserUniqueIndexesIgnoreDeletedRows(t *testing.T) {
	s, err := schema.Parse(&User{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	for _, name := range []string{"idx_user_username", "idx_user_email"} {
		idx := s.LookIndex(name)
		if idx == nil {
			t.Fatalf("index %s not declared", name)
		}
		if idx.Class != "UNIQUE" {
			t.Fatalf("index %s: expected UNIQUE, got %q", name, idx.Class)
		}
		if idx.Where != "deleted_at IS NULL" {
			t.Fatalf("index %s: expected partial index on live rows, got where %q", name, idx.Where)
		}
	}
}
