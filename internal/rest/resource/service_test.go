package resource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/data/repos"
	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

// memRepo is an in-memory repos.Repo without a database handle, so the
// service runs writes without a transaction.
type memRepo struct {
	rows  map[string]*domain.User
	saves int
	finds int
	// onFind runs after FindByID has copied the row, before it returns.
	onFind func()
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]*domain.User{}} }

func (m *memRepo) DB() *gorm.DB { return nil }

func (m *memRepo) Find(_ context.Context, _ *gorm.DB, q repos.Query) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, id := range m.sortedIDs() {
		out = append(out, m.copyOf(id))
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memRepo) FindByID(_ context.Context, _ *gorm.DB, id string) (*domain.User, error) {
	m.finds++
	if _, ok := m.rows[id]; !ok {
		return nil, fmt.Errorf("%w: %s", repos.ErrNotFound, id)
	}
	out := m.copyOf(id)
	if hook := m.onFind; hook != nil {
		hook()
	}
	return out, nil
}

func (m *memRepo) Count(context.Context, *gorm.DB) (int64, error) { return int64(len(m.rows)), nil }

func (m *memRepo) IDs(context.Context, *gorm.DB) ([]string, error) { return m.sortedIDs(), nil }

func (m *memRepo) Create(_ context.Context, _ *gorm.DB, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	m.rows[u.EntityID()] = &cp
	return nil
}

func (m *memRepo) Save(_ context.Context, _ *gorm.DB, u *domain.User) error {
	m.saves++
	cp := *u
	m.rows[u.EntityID()] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, _ *gorm.DB, u *domain.User) error {
	if _, ok := m.rows[u.EntityID()]; !ok {
		return repos.ErrNotFound
	}
	delete(m.rows, u.EntityID())
	return nil
}

func (m *memRepo) copyOf(id string) *domain.User {
	cp := *m.rows[id]
	return &cp
}

func (m *memRepo) sortedIDs() []string {
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

func seedUser(t *testing.T, repo *memRepo) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:  "jdoe",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "stored-hash",
		Enabled:   true,
	}
	require.NoError(t, repo.Create(context.Background(), nil, u))
	return u
}

func TestServiceDefaults(t *testing.T) {
	svc := NewUserResource(newMemRepo(), Deps{Log: testLogger(t)})
	assert.Equal(t, dto.ClassUser, svc.DTOClass())
	assert.Equal(t, "UserForm", svc.FormTypeClass())

	roles := NewRoleResource(nil, Deps{Log: testLogger(t)})
	assert.Empty(t, roles.DTOClass())
	assert.Empty(t, roles.FormTypeClass())
}

func TestServiceCreate(t *testing.T) {
	repo := newMemRepo()
	svc := NewUserResource(repo, Deps{Log: testLogger(t)})

	in := dto.NewUserDTO().
		SetUsername("new").
		SetFirstName("New").
		SetLastName("User").
		SetEmail("new@example.com").
		SetPassword("s3cret-pass")

	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	u := created.(*domain.User)
	assert.Equal(t, "new@example.com", u.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestServicePatchOnlyTouchesVisitedFields(t *testing.T) {
	repo := newMemRepo()
	seeded := seedUser(t, repo)
	svc := NewUserResource(repo, Deps{Log: testLogger(t)})

	patch := dto.NewUserDTO().SetEmail("new@example.com")
	out, err := svc.Patch(context.Background(), seeded.EntityID(), dto.NewUserDTO(), patch)
	require.NoError(t, err)

	u := out.(*domain.User)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, "John", u.FirstName)
	assert.Equal(t, "stored-hash", u.Password)
	assert.Equal(t, 1, repo.saves)
}

func TestServicePatchFamilyMismatchSavesNothing(t *testing.T) {
	repo := newMemRepo()
	seeded := seedUser(t, repo)
	svc := NewUserResource(repo, Deps{Log: testLogger(t)})

	patch := dto.NewUserGroupDTO().SetName("admins")
	_, err := svc.Patch(context.Background(), seeded.EntityID(), dto.NewUserDTO(), patch)
	require.ErrorIs(t, err, dto.ErrTypeMismatch)
	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, "john@example.com", repo.rows[seeded.EntityID()].Email)
}

func TestServiceUpdateAndDeleteMissing(t *testing.T) {
	svc := NewUserResource(newMemRepo(), Deps{Log: testLogger(t)})
	ctx := context.Background()

	_, err := svc.Update(ctx, "nope", dto.NewUserDTO().SetEmail("x@example.com"))
	assert.ErrorIs(t, err, repos.ErrNotFound)

	_, err = svc.Delete(ctx, "nope")
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	repo := newMemRepo()
	seeded := seedUser(t, repo)
	svc := NewUserResource(repo, Deps{Log: testLogger(t)})

	deleted, err := svc.Delete(context.Background(), seeded.EntityID())
	require.NoError(t, err)
	assert.Equal(t, seeded.EntityID(), deleted.EntityID())
	assert.Empty(t, repo.rows)
}

func TestReadOnlyResourceRejectsWrites(t *testing.T) {
	svc := NewService("ReadOnlyUsers", repos.Repo[*domain.User](newMemRepo()), testLogger(t),
		func() *domain.User { return &domain.User{} }, ReadOnly[*domain.User]())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.NewUserDTO())
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = svc.Update(ctx, "x", dto.NewUserDTO())
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = svc.Patch(ctx, "x", dto.NewUserDTO(), dto.NewUserDTO())
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = svc.Delete(ctx, "x")
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestServiceFindOneUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMemRepo()
	seeded := seedUser(t, repo)
	metrics := observability.NewMetrics()
	svc := NewUserResource(repo, Deps{Log: testLogger(t), Redis: client, Metrics: metrics})
	ctx := context.Background()

	first, err := svc.FindOne(ctx, seeded.EntityID())
	require.NoError(t, err)
	second, err := svc.FindOne(ctx, seeded.EntityID())
	require.NoError(t, err)
	assert.Equal(t, first.(*domain.User).Email, second.(*domain.User).Email)
	assert.Equal(t, 1, repo.finds)

	_, err = svc.Patch(ctx, seeded.EntityID(), dto.NewUserDTO(), dto.NewUserDTO().SetLastName("Roe"))
	require.NoError(t, err)
	assert.False(t, mr.Exists("resource:user:"+seeded.EntityID()))

	third, err := svc.FindOne(ctx, seeded.EntityID())
	require.NoError(t, err)
	assert.Equal(t, "Roe", third.(*domain.User).LastName)
}

func TestServiceFindWrapsErrors(t *testing.T) {
	svc := NewUserResource(newMemRepo(), Deps{Log: testLogger(t)})
	_, err := svc.FindOne(context.Background(), "missing")
	assert.True(t, errors.Is(err, repos.ErrNotFound))
}

func TestServiceFindOneDoesNotCacheReadRacingAWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMemRepo()
	seeded := seedUser(t, repo)
	svc := NewUserResource(repo, Deps{Log: testLogger(t), Redis: client})
	ctx := context.Background()
	id := seeded.EntityID()

	repo.onFind = func() {
		repo.onFind = nil
		_, err := svc.Patch(ctx, id, dto.NewUserDTO(), dto.NewUserDTO().SetLastName("Roe"))
		require.NoError(t, err)
	}
	stale, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Doe", stale.(*domain.User).LastName)
	assert.False(t, mr.Exists("resource:user:"+id))

	fresh, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Roe", fresh.(*domain.User).LastName)
	assert.True(t, mr.Exists("resource:user:"+id))
}

func TestServiceMalformedIDIsNotFound(t *testing.T) {
	log := testLogger(t)
	users := NewUserResource(repos.NewUserRepo(nil, log), Deps{Log: log})
	groups := NewUserGroupResource(repos.NewUserGroupRepo(nil, log), Deps{Log: log})
	ctx := context.Background()

	_, err := users.FindOne(ctx, "abc")
	assert.ErrorIs(t, err, repos.ErrNotFound)
	_, err = users.Update(ctx, "abc", dto.NewUserDTO().SetEmail("x@example.com"))
	assert.ErrorIs(t, err, repos.ErrNotFound)
	_, err = users.Patch(ctx, "abc", dto.NewUserDTO(), dto.NewUserDTO().SetEmail("x@example.com"))
	assert.ErrorIs(t, err, repos.ErrNotFound)
	_, err = users.Delete(ctx, "abc")
	assert.ErrorIs(t, err, repos.ErrNotFound)
	_, err = groups.FindOne(ctx, "abc")
	assert.ErrorIs(t, err, repos.ErrNotFound)
}
