package service

import (
	"context"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var travelFeeDescriptor = access.Descriptor{
	Resource:    "travel fee",
	OwnerFields: []string{"user_id"},
	DenyMessage: "Forbidden - You do not own this travel fee",
}

var travelFeeRules = []validation.Rule{
	validation.OneOf("fee_type", "Invalid fee type. Must be one of: per_km, flat_rate, per_hour",
		model.FeeTypePerKm, model.FeeTypeFlatRate, model.FeeTypePerHour),
	validation.NumberOrKeyword("fee", "Fee must be a non-negative number or one of: free, starts_from, fixed",
		model.FeeFree, model.FeeStartsFrom, model.FeeFixed),
	validation.NonNegative("max_distance", "Max distance must be a non-negative number"),
}

var travelFeeCreateRules = append([]validation.Rule{{
	Message: "Fee type, fee, and max distance are required",
	Check: func(p validation.Payload) bool {
		return p.Truthy("fee_type") && p.Has("fee") && p.Has("max_distance")
	},
}}, travelFeeRules...)

type travelFeeService struct {
	*engine[model.TravelFee, *model.TravelFee]
	resolver *access.Resolver
}

func NewTravelFeeService(store repository.Store[model.TravelFee], resolver *access.Resolver, notifier Notifier) Resource[model.TravelFee] {
	return &travelFeeService{
		engine:   newEngine[model.TravelFee](store, travelFeeDescriptor, notifier),
		resolver: resolver,
	}
}

func (s *travelFeeService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.TravelFee, error) {
	if err := validation.Validate(body, travelFeeCreateRules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}

	maxDistance, _ := body.Number("max_distance")
	return s.insert(ctx, &model.TravelFee{
		UserID:      userID,
		FeeType:     text(body, "fee_type"),
		Fee:         feeValue(body),
		MaxDistance: maxDistance,
	})
}

func (s *travelFeeService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.TravelFee, error) {
	return s.update(ctx, caller, id, body, travelFeeRules, func(_ context.Context, _ *model.TravelFee, body validation.Payload) (repository.Patch, error) {
		patch := repository.Patch{}
		setText(patch, body, "fee_type")
		if body.Has("fee") {
			patch["fee"] = feeValue(body)
		}
		if v, ok := body.Number("max_distance"); ok {
			patch["max_distance"] = v
		}
		return patch, nil
	})
}

// feeValue reads an already validated fee.
func feeValue(body validation.Payload) model.FeeValue {
	if v, ok := body.Number("fee"); ok {
		return model.FeeAmount(v)
	}
	return model.FeeLabel(text(body, "fee"))
}
