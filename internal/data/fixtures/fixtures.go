package fixtures

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

// Fixture seeds one kind of reference data. Lower Order runs first.
type Fixture interface {
	Name() string
	Order() int
	Load(ctx context.Context, tx *gorm.DB, refs References) error
}

// References lets later fixtures find rows created by earlier ones,
// e.g. refs["role-ROLE_ADMIN"].
type References map[string]any

type Loader struct {
	db       *gorm.DB
	log      *logger.Logger
	fixtures []Fixture
}

func NewLoader(db *gorm.DB, baseLog *logger.Logger, fixtures ...Fixture) *Loader {
	sorted := append([]Fixture(nil), fixtures...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order() < sorted[j].Order() })
	return &Loader{db: db, log: baseLog.With("component", "FixtureLoader"), fixtures: sorted}
}

// Load runs every fixture in order inside one transaction.
func (l *Loader) Load(ctx context.Context) (References, error) {
	refs := References{}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range l.fixtures {
			l.log.Info("Loading fixture", "fixture", f.Name(), "order", f.Order())
			if err := f.Load(ctx, tx, refs); err != nil {
				return fmt.Errorf("fixture %s: %w", f.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}
