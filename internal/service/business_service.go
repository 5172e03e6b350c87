package service

import (
	"context"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var businessDescriptor = access.Descriptor{
	Resource:    "business",
	OwnerFields: []string{"user_id"},
	DenyMessage: "Forbidden - You do not own this business",
}

var (
	businessCreateRules = []validation.Rule{
		validation.RequireTruthy("All fields (business_name, business_type, owner_name, phone, address) are required",
			"business_name", "business_type", "owner_name", "phone", "address"),
		validation.Phone("phone"),
	}
	businessUpdateRules = []validation.Rule{
		validation.Phone("phone"),
	}
)

type businessService struct {
	*engine[model.Business, *model.Business]
	resolver *access.Resolver
}

func NewBusinessService(store repository.Store[model.Business], resolver *access.Resolver, notifier Notifier) Resource[model.Business] {
	return &businessService{
		engine:   newEngine[model.Business](store, businessDescriptor, notifier),
		resolver: resolver,
	}
}

func (s *businessService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.Business, error) {
	if err := validation.Validate(body, businessCreateRules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}

	return s.insert(ctx, &model.Business{
		UserID:       userID,
		BusinessName: text(body, "business_name"),
		BusinessType: text(body, "business_type"),
		OwnerName:    text(body, "owner_name"),
		Phone:        text(body, "phone"),
		Address:      text(body, "address"),
	})
}

func (s *businessService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.Business, error) {
	return s.update(ctx, caller, id, body, businessUpdateRules, func(_ context.Context, _ *model.Business, body validation.Payload) (repository.Patch, error) {
		patch := repository.Patch{}
		setText(patch, body, "business_name", "business_type", "owner_name", "phone", "address")
		return patch, nil
	})
}
