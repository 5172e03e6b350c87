package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/internal/query"
	"scheduling/pkg/apperror"
)

var allOps = []Operation{OpRead, OpUpdate, OpDelete}

type ownedRecord []uuid.UUID

func (r ownedRecord) OwnerIDs() []uuid.UUID { return r }

func member(id uuid.UUID) Principal {
	return Principal{ID: id, Roles: NewRoleSet("Member")}
}

func TestAuthorize_AdminAllowedOnAnyRecord(t *testing.T) {
	admin := Principal{ID: uuid.New(), Roles: NewRoleSet("Admin")}
	for _, op := range allOps {
		assert.Equal(t, Allow, Authorize(admin, []OwnerRef{uuid.New()}, op), op.String())
	}
}

func TestAuthorize_OwnerAllowed(t *testing.T) {
	id := uuid.New()
	for _, op := range allOps {
		assert.Equal(t, Allow, Authorize(member(id), []OwnerRef{id}, op), op.String())
	}
}

func TestAuthorize_AnyOwnerFieldSuffices(t *testing.T) {
	creator, assignee := uuid.New(), uuid.New()
	owners := []OwnerRef{creator, assignee}

	for _, op := range allOps {
		assert.Equal(t, Allow, Authorize(member(assignee), owners, op), op.String())
		assert.Equal(t, Allow, Authorize(member(creator), owners, op), op.String())
	}
}

func TestAuthorize_NonOwnerDenied(t *testing.T) {
	owners := []OwnerRef{uuid.New(), uuid.New()}
	for _, op := range allOps {
		assert.Equal(t, Deny, Authorize(member(uuid.New()), owners, op), op.String())
	}
}

func TestAuthorize_NilIdentityNeverMatches(t *testing.T) {
	assert.Equal(t, Deny, Authorize(Principal{}, []OwnerRef{uuid.Nil}, OpRead))
}

func TestPolicyCheck_ForbiddenCarriesDenyMessage(t *testing.T) {
	policy := NewPolicy(Descriptor{
		Resource:    "address",
		OwnerFields: []string{"user_id"},
		DenyMessage: "Forbidden - You do not own this address",
	})

	err := policy.Check(member(uuid.New()), ownedRecord{uuid.New()}, OpUpdate)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	assert.Equal(t, "Forbidden - You do not own this address", err.Error())
}

func TestListFilter(t *testing.T) {
	id := uuid.New()
	single := NewPolicy(Descriptor{Resource: "address", OwnerFields: []string{"user_id"}})
	lead := NewPolicy(Descriptor{Resource: "lead", OwnerFields: []string{"user_id", "owner_id"}})

	t.Run("admin sees everything", func(t *testing.T) {
		admin := Principal{ID: id, Roles: NewRoleSet("Admin", "Member")}
		assert.True(t, single.ListFilter(admin).MatchesAll())
		assert.True(t, lead.ListFilter(admin).MatchesAll())
	})

	t.Run("single owner field", func(t *testing.T) {
		f := single.ListFilter(member(id))
		assert.Equal(t, query.Eq("user_id", id).String(), f.String())
	})

	t.Run("either owner field", func(t *testing.T) {
		sql, args := lead.ListFilter(member(id)).SQL()
		assert.Equal(t, "user_id = ? OR owner_id = ?", sql)
		assert.Equal(t, []interface{}{id, id}, args)
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, lead.ListFilter(member(id)), lead.ListFilter(member(id)))
	})
}

// The filter admits a row exactly when the gate would allow reading it.
func TestListFilterAgreesWithGate(t *testing.T) {
	caller, other := uuid.New(), uuid.New()
	lead := NewPolicy(Descriptor{Resource: "lead", OwnerFields: []string{"user_id", "owner_id"}})
	filter := lead.ListFilter(member(caller))

	rows := [][]uuid.UUID{
		{caller, other},
		{other, caller},
		{caller, caller},
		{other, other},
	}
	for _, row := range rows {
		matched := false
		for i, c := range filter.Conditions() {
			if c.Value == row[i] {
				matched = true
			}
		}
		gate := Authorize(member(caller), row, OpRead) == Allow
		assert.Equal(t, gate, matched, "row %v", row)
	}
}
