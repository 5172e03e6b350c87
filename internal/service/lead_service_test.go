package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/internal/access"
	"scheduling/pkg/apperror"
)

func leadBody() map[string]interface{} {
	return map[string]interface{}{
		"client_name":  "Dana",
		"phone_number": "+15125550100",
		"lead_status":  "Inbound",
		"booking_date": "2025-04-30",
		"booking_time": "14:30:00 - 15:00:00",
		"service_name": "Portraits",
		"price":        250.0,
		"notes":        "referral",
	}
}

func TestLeadCreate_AssigneeDefaultsToCaller(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	lead, err := f.Leads.Create(ctx, &alice, payload(leadBody()))
	require.NoError(t, err)

	assert.Equal(t, alice.ID, lead.UserID)
	assert.Equal(t, alice.ID, lead.OwnerID)
	require.NotNil(t, lead.Owner)
	assert.Equal(t, "alice@example.com", lead.Owner.Email)
	assert.Equal(t, "250", lead.Price.String())
	assert.Equal(t, "2025-04-30", lead.BookingDate.Format("2006-01-02"))
}

func TestLeadCreate_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	t.Run("status checked before time", func(t *testing.T) {
		body := leadBody()
		body["lead_status"] = "Hot"
		body["booking_time"] = "15:00:00 - 14:30:00"
		_, err := f.Leads.Create(ctx, &alice, payload(body))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid lead status. Must be one of: Inbound, Qualifying,")
	})

	t.Run("end before start", func(t *testing.T) {
		body := leadBody()
		body["booking_time"] = "15:00:00 - 14:30:00"
		_, err := f.Leads.Create(ctx, &alice, payload(body))
		requireKind(t, err, apperror.KindBadInput, "Start time must be before end time")
	})

	t.Run("lead date example", func(t *testing.T) {
		body := leadBody()
		body["booking_date"] = "someday"
		_, err := f.Leads.Create(ctx, &alice, payload(body))
		requireKind(t, err, apperror.KindBadInput, "Invalid booking date format (e.g., 2025-04-30)")
	})

	t.Run("unknown assignee", func(t *testing.T) {
		body := leadBody()
		body["owner"] = "ghost@example.com"
		_, err := f.Leads.Create(ctx, &alice, payload(body))
		requireKind(t, err, apperror.KindNotFound, "Owner with email ghost@example.com not found")
	})

	t.Run("anonymous without owner", func(t *testing.T) {
		body := leadBody()
		body["user"] = "alice@example.com"
		_, err := f.Leads.Create(ctx, nil, payload(body))
		requireKind(t, err, apperror.KindBadInput, "Owner identifier required")
	})
}

func TestLeadAccess_EitherOwnerField(t *testing.T) {
	f := newFixture(t)
	creator := f.member(t, "creator@example.com")
	assignee := f.member(t, "assignee@example.com")
	stranger := f.member(t, "stranger@example.com")
	root := f.admin(t, "root@example.com")

	body := leadBody()
	body["owner"] = "assignee@example.com"
	lead, err := f.Leads.Create(ctx, &creator, payload(body))
	require.NoError(t, err)
	require.Equal(t, assignee.ID, lead.OwnerID)
	id := lead.ID.String()

	cases := []struct {
		name    string
		caller  access.Principal
		allowed bool
	}{
		{"creator", creator, true},
		{"assignee only", assignee, true},
		{"admin", root, true},
		{"stranger", stranger, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, getErr := f.Leads.Get(ctx, tc.caller, id)
			_, updateErr := f.Leads.Update(ctx, tc.caller, id, payload(map[string]interface{}{"notes": tc.name}))
			list, listErr := f.Leads.List(ctx, tc.caller)
			require.NoError(t, listErr)

			if tc.allowed {
				assert.NoError(t, getErr)
				assert.NoError(t, updateErr)
				assert.Len(t, list, 1)
				return
			}
			requireKind(t, getErr, apperror.KindForbidden, "Forbidden - You are not associated with this lead")
			requireKind(t, updateErr, apperror.KindForbidden, "Forbidden - You are not associated with this lead")
			requireKind(t, f.Leads.Delete(ctx, tc.caller, id), apperror.KindForbidden,
				"Forbidden - You are not associated with this lead")
			assert.Empty(t, list)
		})
	}
}

func TestLeadUpdate_Reassign(t *testing.T) {
	f := newFixture(t)
	creator := f.member(t, "creator@example.com")
	next := f.member(t, "next@example.com")

	lead, err := f.Leads.Create(ctx, &creator, payload(leadBody()))
	require.NoError(t, err)

	updated, err := f.Leads.Update(ctx, creator, lead.ID.String(), payload(map[string]interface{}{
		"owner":        next.ID.String(),
		"client_name":  "",
		"lead_status":  "Qualifying",
		"booking_time": "",
		"price":        0.0,
	}))
	require.NoError(t, err)

	assert.Equal(t, next.ID, updated.OwnerID)
	assert.Equal(t, creator.ID, updated.UserID)
	assert.Equal(t, "Dana", updated.ClientName)
	assert.Equal(t, "Qualifying", updated.LeadStatus)
	assert.Equal(t, "14:30:00 - 15:00:00", updated.BookingTime)
	assert.True(t, updated.Price.IsZero())

	// the new assignee gains access
	_, err = f.Leads.Get(ctx, next, lead.ID.String())
	assert.NoError(t, err)
}

func TestLeadUpdate_ValidatesSuppliedFieldsOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	lead, err := f.Leads.Create(ctx, &alice, payload(leadBody()))
	require.NoError(t, err)
	id := lead.ID.String()

	_, err = f.Leads.Update(ctx, alice, id, payload(map[string]interface{}{"price": "300"}))
	requireKind(t, err, apperror.KindBadInput, "Price must be a non-negative number")

	_, err = f.Leads.Update(ctx, alice, id, payload(map[string]interface{}{"booking_time": "9:00 - 10:00"}))
	requireKind(t, err, apperror.KindBadInput, "Invalid booking time format (e.g., 14:30:00 - 15:00:00)")

	_, err = f.Leads.Update(ctx, alice, id, payload(map[string]interface{}{"owner": "ghost@example.com"}))
	requireKind(t, err, apperror.KindNotFound, "Owner with email ghost@example.com not found")
}
