package service

import (
	"context"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var addressDescriptor = access.Descriptor{
	Resource:    "address",
	OwnerFields: []string{"user_id"},
	DenyMessage: "Forbidden - You do not own this address",
}

var addressCreateRules = []validation.Rule{
	validation.RequireTruthy("Address line 1, city, zip code, and state are required",
		"address_line_1", "city", "zip_code", "state"),
}

type addressService struct {
	*engine[model.Address, *model.Address]
	resolver *access.Resolver
}

// NewAddressService returns the Resource for user addresses.
func NewAddressService(store repository.Store[model.Address], resolver *access.Resolver, notifier Notifier) Resource[model.Address] {
	return &addressService{
		engine:   newEngine[model.Address](store, addressDescriptor, notifier),
		resolver: resolver,
	}
}

func (s *addressService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.Address, error) {
	if err := validation.Validate(body, addressCreateRules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}

	shared := validation.CoerceBinary(body.Raw("is_shared_location"))
	if shared == nil {
		shared = false
	}

	return s.insert(ctx, &model.Address{
		UserID:           userID,
		AddressLine1:     text(body, "address_line_1"),
		AddressLine2:     text(body, "address_line_2"),
		City:             text(body, "city"),
		ZipCode:          text(body, "zip_code"),
		State:            text(body, "state"),
		IsSharedLocation: model.NewLooseBool(shared),
		BoothNo:          text(body, "booth_no"),
	})
}

func (s *addressService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.Address, error) {
	return s.update(ctx, caller, id, body, nil, func(_ context.Context, _ *model.Address, body validation.Payload) (repository.Patch, error) {
		patch := repository.Patch{}
		setText(patch, body, "address_line_1", "city", "zip_code", "state")
		setOptionalText(patch, body, "address_line_2", "booth_no")
		if body.Present("is_shared_location") {
			patch["is_shared_location"] = model.NewLooseBool(validation.CoerceBinary(body.Raw("is_shared_location")))
		}
		return patch, nil
	})
}
