package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/internal/validation"
	"scheduling/pkg/apperror"
)

func businessBody() map[string]interface{} {
	return map[string]interface{}{
		"business_name": "Studio Nine",
		"business_type": "Photography",
		"owner_name":    "Alice",
		"phone":         "+15125550100",
		"address":       "1 Main St",
	}
}

func TestBusinessCreate_Rules(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	body := businessBody()
	body["owner_name"] = ""
	body["phone"] = "bad"
	_, err := f.Businesses.Create(ctx, &alice, payload(body))
	requireKind(t, err, apperror.KindBadInput,
		"All fields (business_name, business_type, owner_name, phone, address) are required")

	body = businessBody()
	body["phone"] = "5125550100"
	_, err = f.Businesses.Create(ctx, &alice, payload(body))
	requireKind(t, err, apperror.KindBadInput, validation.PhoneMessage)

	assert.Empty(t, f.events.all())
}

func TestBusinessUpdate(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")
	bob := f.member(t, "bob@example.com")

	biz, err := f.Businesses.Create(ctx, &alice, payload(businessBody()))
	require.NoError(t, err)
	id := biz.ID.String()

	_, err = f.Businesses.Update(ctx, bob, id, payload(map[string]interface{}{"business_name": "Taken"}))
	requireKind(t, err, apperror.KindForbidden, "Forbidden - You do not own this business")

	_, err = f.Businesses.Update(ctx, alice, id, payload(map[string]interface{}{"phone": "12"}))
	requireKind(t, err, apperror.KindBadInput, validation.PhoneMessage)

	updated, err := f.Businesses.Update(ctx, alice, id, payload(map[string]interface{}{
		"business_name": "",
		"owner_name":    "Alice B",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Studio Nine", updated.BusinessName)
	assert.Equal(t, "Alice B", updated.OwnerName)
}

func TestBusinessList_Visibility(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")
	bob := f.member(t, "bob@example.com")
	root := f.admin(t, "root@example.com")

	for i := 0; i < 2; i++ {
		_, err := f.Businesses.Create(ctx, &alice, payload(businessBody()))
		require.NoError(t, err)
	}
	_, err := f.Businesses.Create(ctx, &bob, payload(businessBody()))
	require.NoError(t, err)

	mine, err := f.Businesses.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, b := range mine {
		assert.Equal(t, alice.ID, b.UserID)
	}

	all, err := f.Businesses.List(ctx, root)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
