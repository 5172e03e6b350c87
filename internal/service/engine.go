package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scheduling/internal/access"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
	"scheduling/pkg/apperror"
)

// Resource is the operation set every owned collection exposes.
type Resource[T any] interface {
	// Create validates body and resolves the owner. caller is nil for anonymous intake.
	Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*T, error)
	List(ctx context.Context, caller access.Principal) ([]T, error)
	Get(ctx context.Context, caller access.Principal, id string) (*T, error)
	Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*T, error)
	Delete(ctx context.Context, caller access.Principal, id string) error
}

// Change actions reported to the Notifier.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notifier receives a message for every committed change.
type Notifier interface {
	Notify(resource, action string, id uuid.UUID, owners []uuid.UUID)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, uuid.UUID, []uuid.UUID) {}

// ownedPtr lets the engine call OwnerIDs and GetID on *T.
type ownedPtr[T any] interface {
	*T
	access.Owned
	GetID() uuid.UUID
}

// engine carries the read, gate and delete paths shared by every collection. Resource
// services embed it and add their own Create and Update.
type engine[T any, P ownedPtr[T]] struct {
	store    repository.Store[T]
	policy   access.Policy
	notifier Notifier
}

func newEngine[T any, P ownedPtr[T]](store repository.Store[T], desc access.Descriptor, notifier Notifier) *engine[T, P] {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &engine[T, P]{store: store, policy: access.NewPolicy(desc), notifier: notifier}
}

func (e *engine[T, P]) resource() string {
	return e.policy.Descriptor().Resource
}

func (e *engine[T, P]) List(ctx context.Context, caller access.Principal) ([]T, error) {
	records, err := e.store.FindMany(ctx, e.policy.ListFilter(caller))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.resource(), err)
	}
	return records, nil
}

func (e *engine[T, P]) Get(ctx context.Context, caller access.Principal, id string) (*T, error) {
	_, record, err := e.load(ctx, caller, id, access.OpRead)
	return record, err
}

func (e *engine[T, P]) Delete(ctx context.Context, caller access.Principal, id string) error {
	key, record, err := e.load(ctx, caller, id, access.OpDelete)
	if err != nil {
		return err
	}
	if err := e.store.Delete(ctx, key); err != nil {
		if repository.IsNotFound(err) {
			return e.notFound()
		}
		return fmt.Errorf("delete %s: %w", e.resource(), err)
	}
	e.notifier.Notify(e.resource(), ActionDeleted, key, P(record).OwnerIDs())
	return nil
}

// load parses the id, fetches the record and runs the gate, in that order.
func (e *engine[T, P]) load(ctx context.Context, caller access.Principal, id string, op access.Operation) (uuid.UUID, *T, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, nil, apperror.BadInput("Invalid %s ID format", e.resource())
	}

	record, err := e.store.FindByID(ctx, key)
	if err != nil {
		if repository.IsNotFound(err) {
			return uuid.Nil, nil, e.notFound()
		}
		return uuid.Nil, nil, fmt.Errorf("find %s: %w", e.resource(), err)
	}

	if err := e.policy.Check(caller, P(record), op); err != nil {
		return uuid.Nil, nil, err
	}
	return key, record, nil
}

// insert stores a validated record and announces it.
func (e *engine[T, P]) insert(ctx context.Context, record *T) (*T, error) {
	if err := e.store.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("create %s: %w", e.resource(), err)
	}
	e.notifier.Notify(e.resource(), ActionCreated, P(record).GetID(), P(record).OwnerIDs())
	return record, nil
}

// update is the common partial update: gate, validate the supplied fields, build and apply the patch.
func (e *engine[T, P]) update(
	ctx context.Context,
	caller access.Principal,
	id string,
	body validation.Payload,
	rules []validation.Rule,
	build func(ctx context.Context, current *T, body validation.Payload) (repository.Patch, error),
) (*T, error) {
	key, current, err := e.load(ctx, caller, id, access.OpUpdate)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePresent(body, rules); err != nil {
		return nil, err
	}
	patch, err := build(ctx, current, body)
	if err != nil {
		return nil, err
	}
	return e.apply(ctx, key, patch)
}

func (e *engine[T, P]) apply(ctx context.Context, key uuid.UUID, patch repository.Patch) (*T, error) {
	updated, err := e.patch(ctx, key, patch)
	if err != nil {
		return nil, err
	}
	e.notifier.Notify(e.resource(), ActionUpdated, key, P(updated).OwnerIDs())
	return updated, nil
}

// patch writes without announcing, for callers that notify after their transaction commits.
func (e *engine[T, P]) patch(ctx context.Context, key uuid.UUID, patch repository.Patch) (*T, error) {
	updated, err := e.store.Update(ctx, key, patch)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, e.notFound()
		}
		return nil, fmt.Errorf("update %s: %w", e.resource(), err)
	}
	return updated, nil
}

func (e *engine[T, P]) notFound() error {
	name := e.resource()
	return apperror.NotFound("%s not found", strings.ToUpper(name[:1])+name[1:])
}
