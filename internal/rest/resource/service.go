package resource

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/data/cache"
	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type Option[E domain.Entity] func(*Service[E])

// WithDefaults sets the classes used when no table entry matches.
func WithDefaults[E domain.Entity](dtoClass, formType string) Option[E] {
	return func(s *Service[E]) {
		s.dtoClass = dtoClass
		s.formType = formType
	}
}

func WithCache[E domain.Entity](c *cache.Entity[E]) Option[E] {
	return func(s *Service[E]) {
		s.cache = c
	}
}

func WithMetrics[E domain.Entity](m *observability.Metrics) Option[E] {
	return func(s *Service[E]) {
		s.metrics = m
	}
}

func ReadOnly[E domain.Entity]() Option[E] {
	return func(s *Service[E]) {
		s.readOnly = true
	}
}

// Service is the Resource over one repository.
type Service[E domain.Entity] struct {
	name      string
	repo      repos.Repo[E]
	cache     *cache.Entity[E]
	metrics   *observability.Metrics
	log       *logger.Logger
	newEntity func() E
	dtoClass  string
	formType  string
	readOnly  bool
}

var _ Resource = (*Service[*domain.User])(nil)

func NewService[E domain.Entity](name string, repo repos.Repo[E], baseLog *logger.Logger, newEntity func() E, opts ...Option[E]) *Service[E] {
	s := &Service[E]{
		name:      name,
		repo:      repo,
		log:       baseLog.With("service", name),
		newEntity: newEntity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[E]) Name() string          { return s.name }
func (s *Service[E]) DTOClass() string      { return s.dtoClass }
func (s *Service[E]) FormTypeClass() string { return s.formType }

func (s *Service[E]) Find(ctx context.Context, q repos.Query) ([]domain.Entity, error) {
	rows, err := s.repo.Find(ctx, nil, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}
	out := make([]domain.Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	return out, nil
}

func (s *Service[E]) FindOne(ctx context.Context, id string) (domain.Entity, error) {
	if cached, ok := s.cached(ctx, id); ok {
		return cached, nil
	}
	version, verr := s.cache.Version(ctx, id)
	if verr != nil {
		s.log.Warn("Cache version lookup failed", "entity_id", id, "error", verr)
	}
	entity, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}
	if verr == nil {
		if _, err := s.cache.SetIfVersion(ctx, entity, version); err != nil {
			s.log.Warn("Cache fill failed", "entity_id", id, "error", err)
		}
	}
	return entity, nil
}

func (s *Service[E]) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.name, err)
	}
	return n, nil
}

func (s *Service[E]) IDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.IDs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ids %s: %w", s.name, err)
	}
	return ids, nil
}

func (s *Service[E]) Create(ctx context.Context, d dto.RestDTO) (domain.Entity, error) {
	if s.readOnly {
		return nil, fmt.Errorf("create %s: %w", s.name, ErrReadOnly)
	}
	entity := s.newEntity()
	if err := d.Update(entity); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	if err := s.transact(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, entity)
	}); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	s.log.Debug("Created entity", "entity_id", entity.EntityID(), "family", d.Family())
	return entity, nil
}

func (s *Service[E]) Update(ctx context.Context, id string, d dto.RestDTO) (domain.Entity, error) {
	return s.write(ctx, "update", id, func(entity E) error {
		return d.Update(entity)
	})
}

func (s *Service[E]) Patch(ctx context.Context, id string, base, d dto.RestDTO) (domain.Entity, error) {
	return s.write(ctx, "patch", id, func(entity E) error {
		if err := base.Load(entity); err != nil {
			return err
		}
		if err := base.Patch(d); err != nil {
			return err
		}
		return base.Update(entity)
	})
}

func (s *Service[E]) Delete(ctx context.Context, id string) (domain.Entity, error) {
	if s.readOnly {
		return nil, fmt.Errorf("delete %s: %w", s.name, ErrReadOnly)
	}
	var deleted E
	err := s.transact(ctx, func(tx *gorm.DB) error {
		entity, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, entity); err != nil {
			return err
		}
		deleted = entity
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", s.name, err)
	}
	s.invalidate(ctx, id)
	return deleted, nil
}

// write loads id, lets mutate change it and saves it, all in one
// transaction. Nothing is saved when mutate fails.
func (s *Service[E]) write(ctx context.Context, op, id string, mutate func(E) error) (domain.Entity, error) {
	if s.readOnly {
		return nil, fmt.Errorf("%s %s: %w", op, s.name, ErrReadOnly)
	}
	var saved E
	err := s.transact(ctx, func(tx *gorm.DB) error {
		entity, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(entity); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, tx, entity); err != nil {
			return err
		}
		saved = entity
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, s.name, err)
	}
	s.invalidate(ctx, id)
	return saved, nil
}

func (s *Service[E]) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.repo.DB()
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *Service[E]) cached(ctx context.Context, id string) (E, bool) {
	var zero E
	if s.cache == nil {
		return zero, false
	}
	entity, ok, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		s.metrics.ObserveCacheLookup(s.name, "error")
		s.log.Warn("Cache lookup failed", "entity_id", id, "error", err)
		return zero, false
	case ok:
		s.metrics.ObserveCacheLookup(s.name, "hit")
		return entity, true
	default:
		s.metrics.ObserveCacheLookup(s.name, "miss")
		return zero, false
	}
}

func (s *Service[E]) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("Cache invalidation failed", "entity_id", id, "error", err)
	}
}
