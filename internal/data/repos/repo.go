package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/data/db"
	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("not found")

// Query narrows Find. Order is a trusted column expression, never client
// input.
type Query struct {
	Limit  int
	Offset int
	Order  string
}

// Repo is the gorm-backed store of one entity type. Every method takes an
// optional transaction; nil uses the repo's own handle.
type Repo[E domain.Entity] interface {
	Find(ctx context.Context, tx *gorm.DB, q Query) ([]E, error)
	FindByID(ctx context.Context, tx *gorm.DB, id string) (E, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	IDs(ctx context.Context, tx *gorm.DB) ([]string, error)
	Create(ctx context.Context, tx *gorm.DB, entity E) error
	Save(ctx context.Context, tx *gorm.DB, entity E) error
	Delete(ctx context.Context, tx *gorm.DB, entity E) error
	DB() *gorm.DB
}

type Option func(*options)

type options struct {
	validID func(id string) bool
}

// WithIDCheck rejects ids that cannot name a row as ErrNotFound before any
// query runs.
func WithIDCheck(valid func(id string) bool) Option {
	return func(o *options) {
		o.validID = valid
	}
}

// IsUUID reports whether id is a canonical 36 character uuid, the only
// text form every supported driver compares against a uuid column.
func IsUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

type repo[E domain.Entity] struct {
	db        *gorm.DB
	log       *logger.Logger
	newEntity func() E
	validID   func(id string) bool
}

func New[E domain.Entity](db *gorm.DB, baseLog *logger.Logger, name string, newEntity func() E, opts ...Option) Repo[E] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	repoLog := baseLog.With("repo", name)
	return &repo[E]{db: db, log: repoLog, newEntity: newEntity, validID: o.validID}
}

func (r *repo[E]) DB() *gorm.DB { return r.db }

func (r *repo[E]) tx(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *repo[E]) Find(ctx context.Context, tx *gorm.DB, q Query) ([]E, error) {
	var results []E
	order := q.Order
	if order == "" {
		order = "created_at"
	}
	stmt := r.tx(tx).WithContext(ctx).Model(r.newEntity()).Order(order)
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	if q.Offset > 0 {
		stmt = stmt.Offset(q.Offset)
	}
	if err := stmt.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repo[E]) FindByID(ctx context.Context, tx *gorm.DB, id string) (E, error) {
	if r.validID != nil && !r.validID(id) {
		var zero E
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	entity := r.newEntity()
	err := r.tx(tx).WithContext(ctx).Where("id = ?", id).First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero E
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		var zero E
		return zero, err
	}
	return entity, nil
}

func (r *repo[E]) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.tx(tx).WithContext(ctx).
		Model(r.newEntity()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo[E]) IDs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	ids := []string{}
	if err := r.tx(tx).WithContext(ctx).
		Model(r.newEntity()).
		Order("created_at").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo[E]) Create(ctx context.Context, tx *gorm.DB, entity E) error {
	if err := r.tx(tx).WithContext(ctx).Create(entity).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *repo[E]) Save(ctx context.Context, tx *gorm.DB, entity E) error {
	if err := r.tx(tx).WithContext(ctx).Save(entity).Error; err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *repo[E]) Delete(ctx context.Context, tx *gorm.DB, entity E) error {
	res := r.tx(tx).WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, entity.EntityID())
	}
	return nil
}
