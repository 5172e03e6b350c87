package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/pkg/apperror"
)

type fakeUsers struct {
	byID    map[uuid.UUID]*model.User
	idReads int
	emReads int
	fail    error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.idReads++
	if f.fail != nil {
		return nil, f.fail
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.emReads++
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newUser(email string) *model.User {
	u := &model.User{Email: email}
	u.ID = uuid.New()
	return u
}

func TestResolve_PrincipalWinsAndSkipsLookup(t *testing.T) {
	users := newFakeUsers(newUser("other@example.com"))
	r := NewResolver(users)
	p := member(uuid.New())

	got, err := r.Resolve(context.Background(), &p, "other@example.com", LabelUser)

	require.NoError(t, err)
	assert.Equal(t, p.ID, got)
	assert.Zero(t, users.idReads+users.emReads)
}

func TestResolve_ByID(t *testing.T) {
	u := newUser("a@example.com")
	users := newFakeUsers(u)

	got, err := NewResolver(users).Resolve(context.Background(), nil, u.ID.String(), LabelUser)

	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
	assert.Equal(t, 1, users.idReads)
	assert.Zero(t, users.emReads)
}

func TestResolve_ByEmail(t *testing.T) {
	u := newUser("a@example.com")
	users := newFakeUsers(u)

	got, err := NewResolver(users).Resolve(context.Background(), nil, "a@example.com", LabelOwner)

	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
	assert.Zero(t, users.idReads)
}

func TestResolve_MissingIDDoesNotFallBackToEmail(t *testing.T) {
	users := newFakeUsers(newUser("a@example.com"))
	missing := uuid.New().String()

	_, err := NewResolver(users).Resolve(context.Background(), nil, missing, LabelUser)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "User with ID "+missing+" not found", err.Error())
	assert.Equal(t, 1, users.idReads)
	assert.Zero(t, users.emReads)
}

func TestResolve_UnknownEmail(t *testing.T) {
	_, err := NewResolver(newFakeUsers()).Resolve(context.Background(), nil, "nobody@example.com", LabelOwner)

	require.Error(t, err)
	assert.Equal(t, "Owner with email nobody@example.com not found", err.Error())
}

func TestResolve_NothingSupplied(t *testing.T) {
	_, err := NewResolver(newFakeUsers()).Resolve(context.Background(), nil, "", LabelUser)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindBadInput))
	assert.Equal(t, "User identifier required", err.Error())
}

func TestResolve_StoreFailureIsNotANotFound(t *testing.T) {
	users := newFakeUsers()
	users.fail = errors.New("connection reset")

	_, err := NewResolver(users).Resolve(context.Background(), nil, "a@example.com", LabelUser)

	require.Error(t, err)
	assert.Equal(t, 500, apperror.StatusCode(err))
}

func TestResolveAssignee(t *testing.T) {
	assignee := newUser("assignee@example.com")
	users := newFakeUsers(assignee)
	r := NewResolver(users)
	p := member(uuid.New())

	t.Run("supplied wins over caller", func(t *testing.T) {
		got, err := r.ResolveAssignee(context.Background(), &p, "assignee@example.com", LabelOwner)
		require.NoError(t, err)
		assert.Equal(t, assignee.ID, got)
	})

	t.Run("defaults to caller", func(t *testing.T) {
		got, err := r.ResolveAssignee(context.Background(), &p, "", LabelOwner)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got)
	})

	t.Run("anonymous without identifier", func(t *testing.T) {
		_, err := r.ResolveAssignee(context.Background(), nil, "", LabelOwner)
		require.Error(t, err)
		assert.Equal(t, "Owner identifier required", err.Error())
	})
}
