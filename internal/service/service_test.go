package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/testutil"
	"scheduling/internal/token"
	"scheduling/internal/validation"
	"scheduling/pkg/apperror"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Notify(resource, action string, _ uuid.UUID, _ []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, resource+":"+action)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fixture struct {
	*Services
	db     *gorm.DB
	users  repository.UserRepository
	events *recorder
	tokens *token.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	events := &recorder{}
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	return &fixture{
		Services: New(db, tokens, events),
		db:       db,
		users:    repository.NewUserRepository(db),
		events:   events,
		tokens:   tokens,
	}
}

// account stores a user directly and returns its principal.
func (f *fixture) account(t *testing.T, email string, roles ...access.Role) access.Principal {
	t.Helper()
	u := &model.User{Email: email, FirstName: "Test", LastName: "User", Password: "x", Enabled: model.NewLooseBool(true)}
	tags := make([]string, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, model.UserRole{Role: string(r)})
		tags = append(tags, string(r))
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return access.Principal{ID: u.ID, Email: email, Roles: access.NewRoleSet(tags...)}
}

func (f *fixture) member(t *testing.T, email string) access.Principal {
	return f.account(t, email, access.RoleMember)
}

func (f *fixture) admin(t *testing.T, email string) access.Principal {
	return f.account(t, email, access.RoleAdmin, access.RoleMember)
}

func requireKind(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.Is(err, kind), "got %v", err)
	assert.Equal(t, message, err.Error())
}

func payload(fields map[string]interface{}) validation.Payload {
	return validation.Payload(fields)
}

var ctx = context.Background()
