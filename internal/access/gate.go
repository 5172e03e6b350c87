package access

import (
	"scheduling/internal/query"
	"scheduling/pkg/apperror"

	"github.com/google/uuid"
)

// Operation is the kind of access requested on a single record.
type Operation int

const (
	OpRead Operation = iota
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision is the outcome of the ownership gate.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Owned is implemented by every record carrying ownership fields.
type Owned interface {
	OwnerIDs() []uuid.UUID
}

// Authorize is the ownership gate: the elevated tag passes, otherwise the caller must
// match at least one of the owner fields. The rule is the same for every operation.
func Authorize(p Principal, owners []OwnerRef, _ Operation) Decision {
	if p.Elevated() {
		return Allow
	}
	if p.ID == uuid.Nil {
		return Deny
	}
	for _, owner := range owners {
		if owner == p.ID {
			return Allow
		}
	}
	return Deny
}

// Descriptor describes the ownership shape of one collection.
type Descriptor struct {
	// Resource is the singular name used in messages ("address", "lead").
	Resource string
	// OwnerFields are the columns holding owner references. Any match grants access.
	OwnerFields []string
	// DenyMessage is returned with Forbidden.
	DenyMessage string
}

// Policy applies the gate and the list visibility rule for one collection.
type Policy struct {
	desc Descriptor
}

// NewPolicy binds a descriptor.
func NewPolicy(desc Descriptor) Policy {
	return Policy{desc: desc}
}

// Descriptor returns the bound descriptor.
func (p Policy) Descriptor() Descriptor { return p.desc }

// Check runs the gate on a loaded record.
func (p Policy) Check(pr Principal, rec Owned, op Operation) error {
	if Authorize(pr, rec.OwnerIDs(), op) == Allow {
		return nil
	}
	return apperror.Forbidden("%s", p.desc.DenyMessage)
}

// ListFilter builds the predicate that gives list reads the same visibility as the gate:
// everything for an elevated caller, otherwise rows where any owner field is the caller.
func (p Policy) ListFilter(pr Principal) query.Filter {
	if pr.Elevated() {
		return query.All()
	}
	filters := make([]query.Filter, 0, len(p.desc.OwnerFields))
	for _, field := range p.desc.OwnerFields {
		filters = append(filters, query.Eq(field, pr.ID))
	}
	return query.Or(filters...)
}
