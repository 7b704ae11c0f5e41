package parents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Parent
	lookups []string
	err     error // si no es nil, las lecturas fallan con este error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Parent{}}
}

func (r *testRepo) Create(ctx context.Context, p Parent) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByRef(ctx context.Context, ref Ref) (Parent, error) {
	if r.err != nil {
		return Parent{}, r.err
	}
	p, ok := r.byID[ref.ParentID]
	if !ok || p.AdminID != ref.AdminID {
		return Parent{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) FindByPhone(ctx context.Context, phone string) (Parent, error) {
	r.lookups = append(r.lookups, phone)
	if r.err != nil {
		return Parent{}, r.err
	}
	for _, p := range r.byID {
		if p.PhoneNumber == phone {
			return p, nil
		}
	}
	return Parent{}, ErrNotFound
}

func (r *testRepo) ListAll(ctx context.Context) ([]Parent, error) {
	out := make([]Parent, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_FindByPhone_FallsBackToDigits(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{AdminID: "admin-1", PhoneNumber: "51999111222", Name: "Mamá"})
	require.NoError(t, err)

	got, err := svc.FindByPhone(ctx, "+51 999-111-222")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []string{"+51 999-111-222", "51999111222"}, repo.lookups)
}

func TestService_FindByPhone_AddsPlus(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{AdminID: "admin-1", PhoneNumber: "+15550001"})
	require.NoError(t, err)

	_, err = svc.FindByPhone(ctx, "15550001")
	require.NoError(t, err)
}

func TestService_FindByPhone_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.FindByPhone(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindByPhone(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get_ChecksAdmin(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{AdminID: "admin-1", PhoneNumber: "1"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, Ref{AdminID: "other", ParentID: p.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, p.Ref())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestService_StoreErrorsAreNotNotFound(t *testing.T) {
	repo := newTestRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), Ref{AdminID: "a", ParentID: "p"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, repo.err)

	_, err = svc.FindByPhone(context.Background(), "+51999111222")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Len(t, repo.lookups, 1)
}

func TestLocation(t *testing.T) {
	utc := time.UTC
	assert.Equal(t, utc, Location(Parent{}, utc))
	assert.Equal(t, utc, Location(Parent{Timezone: "Nowhere/Land"}, utc))
	assert.Equal(t, "Europe/Madrid", Location(Parent{Timezone: "Europe/Madrid"}, utc).String())
}

func TestLocationOf(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{AdminID: "a", PhoneNumber: "+51999", Timezone: "America/Lima"})
	require.NoError(t, err)

	assert.Equal(t, "America/Lima", svc.LocationOf(ctx, p.Ref(), time.UTC).String())
	assert.Equal(t, time.UTC, svc.LocationOf(ctx, Ref{AdminID: "a", ParentID: "missing"}, time.UTC))
}
