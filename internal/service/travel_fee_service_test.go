package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/pkg/apperror"
)

func TestTravelFeeCreate(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	t.Run("numeric fee", func(t *testing.T) {
		fee, err := f.TravelFees.Create(ctx, &alice, payload(map[string]interface{}{
			"fee_type": "per_km", "fee": 1.25, "max_distance": 40.0,
		}))
		require.NoError(t, err)
		require.NotNil(t, fee.Fee.Amount)
		assert.Equal(t, "1.25", fee.Fee.Amount.String())
		assert.Equal(t, 40.0, fee.MaxDistance)
	})

	t.Run("keyword fee", func(t *testing.T) {
		fee, err := f.TravelFees.Create(ctx, &alice, payload(map[string]interface{}{
			"fee_type": "flat_rate", "fee": "free", "max_distance": 0.0,
		}))
		require.NoError(t, err)
		assert.Nil(t, fee.Fee.Amount)
		assert.Equal(t, "free", fee.Fee.Label)
	})
}

func TestTravelFeeCreate_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")

	cases := map[string]struct {
		body    map[string]interface{}
		message string
	}{
		"missing max distance": {
			map[string]interface{}{"fee_type": "per_km", "fee": 1.0},
			"Fee type, fee, and max distance are required",
		},
		"unknown type": {
			map[string]interface{}{"fee_type": "per_mile", "fee": 1.0, "max_distance": 5.0},
			"Invalid fee type. Must be one of: per_km, flat_rate, per_hour",
		},
		"unknown keyword": {
			map[string]interface{}{"fee_type": "per_km", "fee": "cheap", "max_distance": 5.0},
			"Fee must be a non-negative number or one of: free, starts_from, fixed",
		},
		"negative distance": {
			map[string]interface{}{"fee_type": "per_km", "fee": 1.0, "max_distance": -5.0},
			"Max distance must be a non-negative number",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.TravelFees.Create(ctx, &alice, payload(tc.body))
			requireKind(t, err, apperror.KindBadInput, tc.message)
		})
	}
}

func TestTravelFeeUpdate(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice@example.com")
	bob := f.member(t, "bob@example.com")

	fee, err := f.TravelFees.Create(ctx, &alice, payload(map[string]interface{}{
		"fee_type": "per_km", "fee": 1.0, "max_distance": 10.0,
	}))
	require.NoError(t, err)
	id := fee.ID.String()

	_, err = f.TravelFees.Update(ctx, bob, id, payload(map[string]interface{}{"fee": 0.0}))
	requireKind(t, err, apperror.KindForbidden, "Forbidden - You do not own this travel fee")

	updated, err := f.TravelFees.Update(ctx, alice, id, payload(map[string]interface{}{"fee": "starts_from"}))
	require.NoError(t, err)
	assert.Equal(t, "starts_from", updated.Fee.Label)
	assert.Equal(t, "per_km", updated.FeeType)
	assert.Equal(t, 10.0, updated.MaxDistance)

	_, err = f.TravelFees.Get(ctx, alice, "00000000-0000-0000-0000-000000000000")
	requireKind(t, err, apperror.KindNotFound, "Travel fee not found")
}
