// Package access holds the authorization envelope shared by every owned collection:
// who the caller is, who owns a record, and whether the two may meet.
package access

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// Role is one tag of the closed role enumeration.
type Role string

const (
	// RoleAdmin is the elevated tag: unrestricted access to every tenant's records.
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

var roleBits = map[Role]RoleSet{
	RoleAdmin:  1 << 0,
	RoleMember: 1 << 1,
}

// ParseRole maps a stored or claimed tag onto the enumeration.
func ParseRole(tag string) (Role, bool) {
	r := Role(tag)
	_, ok := roleBits[r]
	return r, ok
}

// RoleSet is an immutable set of roles, resolved once per request.
type RoleSet uint8

// NewRoleSet builds a set from raw tags. Unknown tags are dropped.
func NewRoleSet(tags ...string) RoleSet {
	var s RoleSet
	for _, tag := range tags {
		if r, ok := ParseRole(tag); ok {
			s |= roleBits[r]
		}
	}
	return s
}

// Has reports membership.
func (s RoleSet) Has(r Role) bool {
	bit, ok := roleBits[r]
	return ok && s&bit != 0
}

// Strings lists the member tags in a stable order.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(roleBits))
	for r, bit := range roleBits {
		if s&bit != 0 {
			out = append(out, string(r))
		}
	}
	sort.Strings(out)
	return out
}

// OwnerRef points at exactly one user row.
type OwnerRef = uuid.UUID

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Roles RoleSet
}

// Elevated reports whether the principal bypasses ownership checks.
func (p Principal) Elevated() bool {
	return p.Roles.Has(RoleAdmin)
}

type principalKey struct{}

// NewContext stores the principal in ctx.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the request principal, or nil for an unauthenticated request.
func FromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return nil
	}
	return &p
}
