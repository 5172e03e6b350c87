package access

import (
	"context"
	"fmt"

	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/pkg/apperror"

	"github.com/google/uuid"
)

// Labels name the reference being resolved in error messages.
const (
	LabelUser  = "User"
	LabelOwner = "Owner"
)

// UserLookup is the slice of the user store the resolver reads.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Resolver maps a caller supplied identifier onto an OwnerRef.
type Resolver struct {
	users UserLookup
}

func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// Resolve prefers the authenticated identity and ignores supplied when a principal exists.
// Otherwise supplied is looked up by primary key if it is shaped like one, else by email.
func (r *Resolver) Resolve(ctx context.Context, p *Principal, supplied, label string) (OwnerRef, error) {
	if p != nil {
		return p.ID, nil
	}
	if supplied == "" {
		return uuid.Nil, apperror.IdentifierRequired("%s identifier required", label)
	}
	return r.Lookup(ctx, supplied, label)
}

// ResolveAssignee resolves an independent reference (a lead's assignee): a supplied
// identifier wins, the caller is the default.
func (r *Resolver) ResolveAssignee(ctx context.Context, p *Principal, supplied, label string) (OwnerRef, error) {
	if supplied != "" {
		return r.Lookup(ctx, supplied, label)
	}
	if p != nil {
		return p.ID, nil
	}
	return uuid.Nil, apperror.IdentifierRequired("%s identifier required", label)
}

// Lookup performs exactly one read: by id when supplied parses as a UUID, by email otherwise.
func (r *Resolver) Lookup(ctx context.Context, supplied, label string) (OwnerRef, error) {
	if id, err := uuid.Parse(supplied); err == nil {
		user, err := r.users.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, lookupError(err, "%s with ID %s not found", label, supplied)
		}
		return user.ID, nil
	}

	user, err := r.users.GetByEmail(ctx, supplied)
	if err != nil {
		return uuid.Nil, lookupError(err, "%s with email %s not found", label, supplied)
	}
	return user.ID, nil
}

func lookupError(err error, format string, args ...interface{}) error {
	if repository.IsNotFound(err) {
		return apperror.NotFound(format, args...)
	}
	return fmt.Errorf("resolve owner: %w", err)
}
