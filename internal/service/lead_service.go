package service

import (
	"context"

	"github.com/google/uuid"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var leadDescriptor = access.Descriptor{
	Resource:    "lead",
	OwnerFields: []string{"user_id", "owner_id"},
	DenyMessage: "Forbidden - You are not associated with this lead",
}

var (
	leadRules       = appointmentRules("2025-04-30", "14:30:00 - 15:00:00")
	leadCreateRules = append([]validation.Rule{
		validation.RequireFields("client_name", "phone_number", "lead_status", "booking_date",
			"booking_time", "service_name", "price"),
	}, leadRules...)
)

// LeadList is the lead collection together with its ids.
type LeadList struct {
	Leads   []model.Lead `json:"leads"`
	LeadIDs []uuid.UUID  `json:"lead_ids"`
}

// NewLeadList collects the ids of leads.
func NewLeadList(leads []model.Lead) LeadList {
	ids := make([]uuid.UUID, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ID)
	}
	return LeadList{Leads: leads, LeadIDs: ids}
}

type leadService struct {
	*engine[model.Lead, *model.Lead]
	resolver *access.Resolver
}

func NewLeadService(store repository.Store[model.Lead], resolver *access.Resolver, notifier Notifier) Resource[model.Lead] {
	return &leadService{
		engine:   newEngine[model.Lead](store, leadDescriptor, notifier),
		resolver: resolver,
	}
}

// Create resolves the creator from the session (or "user") and the assignee from "owner",
// defaulting to the caller.
func (s *leadService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.Lead, error) {
	if err := validation.Validate(body, leadCreateRules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.resolver.ResolveAssignee(ctx, caller, identifier(body, "owner"), access.LabelOwner)
	if err != nil {
		return nil, err
	}

	date, _ := validation.ParseDate(body.Raw("booking_date"))
	price, _ := body.Number("price")
	return s.insert(ctx, &model.Lead{
		UserID:      userID,
		OwnerID:     ownerID,
		ClientName:  text(body, "client_name"),
		PhoneNumber: text(body, "phone_number"),
		LeadStatus:  text(body, "lead_status"),
		BookingDate: date,
		BookingTime: text(body, "booking_time"),
		ServiceName: text(body, "service_name"),
		Price:       model.NewMoney(price),
		Notes:       text(body, "notes"),
	})
}

// Update may reassign the lead when "owner" names another user.
func (s *leadService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.Lead, error) {
	return s.update(ctx, caller, id, body, leadRules, func(ctx context.Context, _ *model.Lead, body validation.Payload) (repository.Patch, error) {
		patch := appointmentPatch(body)
		setText(patch, body, "client_name")
		if owner := identifier(body, "owner"); owner != "" {
			ownerID, err := s.resolver.Lookup(ctx, owner, access.LabelOwner)
			if err != nil {
				return nil, err
			}
			patch["owner_id"] = ownerID
		}
		return patch, nil
	})
}
