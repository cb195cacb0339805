package resolver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/rest/class"
)

type notADTO struct{}

func testCatalog(t *testing.T) *class.Catalog {
	t.Helper()
	c := class.NewCatalog()
	require.NoError(t, dto.Register(c))
	require.NoError(t, c.Register(class.Of[notADTO]("NotADTO")))
	return c
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{
		"create":          {Action: "create"},
		"admin::create":   {Context: "admin", Action: "create"},
		"a::b::patch":     {Context: "a::b", Action: "patch"},
		"  admin::find  ": {Context: "admin", Action: "find"},
		"":                {},
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseKey(raw), raw)
	}
	assert.Equal(t, "admin::create", Key{Context: "admin", Action: "create"}.String())
	assert.Equal(t, "create", Key{Action: "create"}.String())
}

func TestResolveDTOClassPrecedence(t *testing.T) {
	r, err := New(testCatalog(t), map[string]string{
		"create":        dto.ClassUser,
		"admin::create": dto.ClassUserAdmin,
	}, nil)
	require.NoError(t, err)

	d, err := r.ResolveDTOClass(Key{Action: "create"}, dto.ClassUserGroup)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUser, d.Name)

	d, err = r.ResolveDTOClass(Key{Context: "admin", Action: "create"}, dto.ClassUserGroup)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUserAdmin, d.Name)

	d, err = r.ResolveDTOClass(Key{Context: "other", Action: "create"}, dto.ClassUserGroup)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUser, d.Name)

	d, err = r.ResolveDTOClass(Key{Action: "delete"}, dto.ClassUserGroup)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUserGroup, d.Name)

	d, err = r.ResolveDTOClass(Key{}, dto.ClassUserGroup)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUserGroup, d.Name)

	_, isDTO := d.New().(*dto.UserGroupDTO)
	assert.True(t, isDTO)
}

func TestResolveDTOClassWithoutDefault(t *testing.T) {
	r, err := New(testCatalog(t), nil, nil)
	require.NoError(t, err)

	_, err = r.ResolveDTOClass(Key{Action: "delete"}, "")
	assert.ErrorIs(t, err, ErrResourceNotConfigured)

	_, err = r.ResolveDTOClass(Key{Action: "delete"}, "Missing")
	assert.ErrorIs(t, err, ErrResourceNotConfigured)
	assert.ErrorIs(t, err, class.ErrUnknownClass)
}

func TestResolveDTOClassChecksInterface(t *testing.T) {
	r, err := New(testCatalog(t), nil, nil)
	require.NoError(t, err)

	_, err = r.ResolveDTOClass(Key{Action: "find"}, "NotADTO")
	assert.ErrorIs(t, err, ErrInterfaceViolation)
}

func TestNewValidatesTables(t *testing.T) {
	c := testCatalog(t)

	_, err := New(c, map[string]string{"create": "NotADTO"}, nil)
	assert.ErrorIs(t, err, ErrInterfaceViolation)

	_, err = New(c, map[string]string{"create": "Missing"}, nil)
	assert.ErrorIs(t, err, ErrResourceNotConfigured)

	_, err = New(c, nil, map[string]string{"create": "Missing"})
	assert.ErrorIs(t, err, ErrResourceNotConfigured)

	// Form types are not checked against the DTO contract.
	_, err = New(c, nil, map[string]string{"create": "NotADTO"})
	assert.NoError(t, err)

	_, err = New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrResourceNotConfigured)
}

func TestResolveFormTypeClass(t *testing.T) {
	r, err := New(testCatalog(t), nil, map[string]string{"foo": "NotADTO"})
	require.NoError(t, err)

	d, err := r.ResolveFormTypeClass(ParseKey("bar::foo"), dto.ClassUser)
	require.NoError(t, err)
	assert.Equal(t, "NotADTO", d.Name)

	d, err = r.ResolveFormTypeClass(ParseKey("bar::baz"), dto.ClassUser)
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUser, d.Name)

	_, err = r.ResolveFormTypeClass(ParseKey("baz"), "")
	assert.ErrorIs(t, err, ErrResourceNotConfigured)
}

func TestTablesAreCopied(t *testing.T) {
	entries := map[string]string{"create": dto.ClassUser}
	r, err := New(testCatalog(t), entries, nil)
	require.NoError(t, err)

	entries["create"] = "NotADTO"
	d, err := r.ResolveDTOClass(Key{Action: "create"}, "")
	require.NoError(t, err)
	assert.Equal(t, dto.ClassUser, d.Name)
	assert.Equal(t, []string{"create"}, r.DTOClasses().Keys())
}

func TestConcurrentResolution(t *testing.T) {
	r, err := New(testCatalog(t), map[string]string{"admin::patch": dto.ClassUserAdmin}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := r.ResolveDTOClass(ParseKey("admin::patch"), dto.ClassUser)
			assert.NoError(t, err)
			assert.Equal(t, dto.ClassUserAdmin, d.Name)
		}()
	}
	wg.Wait()
}
