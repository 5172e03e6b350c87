package service

import (
	"context"
	"strings"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var bookingDescriptor = access.Descriptor{
	Resource:    "customer booking",
	OwnerFields: []string{"user_id"},
	DenyMessage: "Forbidden - You do not own this customer booking",
}

// appointmentRules are the field checks shared by bookings and leads, in evaluation order.
func appointmentRules(dateExample, timeExample string) []validation.Rule {
	rules := []validation.Rule{
		validation.Phone("phone_number"),
		validation.OneOf("lead_status",
			"Invalid lead status. Must be one of: "+strings.Join(model.LeadStatuses, ", "),
			model.LeadStatuses...),
		validation.Date("booking_date", "Invalid booking date format (e.g., "+dateExample+")"),
	}
	rules = append(rules, validation.TimeRange("booking_time", "Invalid booking time format (e.g., "+timeExample+")")...)
	return append(rules, validation.NonNegative("price", "Price must be a non-negative number"))
}

var (
	bookingRules       = appointmentRules("2025-05-01", "16:30:00 - 17:00:00")
	bookingCreateRules = append([]validation.Rule{
		validation.RequireFields("customer_name", "phone_number", "lead_status", "booking_date",
			"booking_time", "service_name", "price"),
	}, bookingRules...)
)

type bookingService struct {
	*engine[model.CustomerBooking, *model.CustomerBooking]
	resolver *access.Resolver
}

func NewBookingService(store repository.Store[model.CustomerBooking], resolver *access.Resolver, notifier Notifier) Resource[model.CustomerBooking] {
	return &bookingService{
		engine:   newEngine[model.CustomerBooking](store, bookingDescriptor, notifier),
		resolver: resolver,
	}
}

func (s *bookingService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.CustomerBooking, error) {
	if err := validation.Validate(body, bookingCreateRules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}

	date, _ := validation.ParseDate(body.Raw("booking_date"))
	price, _ := body.Number("price")
	return s.insert(ctx, &model.CustomerBooking{
		UserID:       userID,
		CustomerName: text(body, "customer_name"),
		PhoneNumber:  text(body, "phone_number"),
		LeadStatus:   text(body, "lead_status"),
		BookingDate:  date,
		BookingTime:  text(body, "booking_time"),
		ServiceName:  text(body, "service_name"),
		Price:        model.NewMoney(price),
		Notes:        text(body, "notes"),
	})
}

func (s *bookingService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.CustomerBooking, error) {
	return s.update(ctx, caller, id, body, bookingRules, func(_ context.Context, _ *model.CustomerBooking, body validation.Payload) (repository.Patch, error) {
		patch := appointmentPatch(body)
		setText(patch, body, "customer_name")
		return patch, nil
	})
}

// appointmentPatch maps the validated shared fields of a booking or lead update.
func appointmentPatch(body validation.Payload) repository.Patch {
	patch := repository.Patch{}
	setText(patch, body, "phone_number", "lead_status", "booking_time", "service_name")
	setOptionalText(patch, body, "notes")
	if body.Truthy("booking_date") {
		if date, ok := validation.ParseDate(body.Raw("booking_date")); ok {
			patch["booking_date"] = date
		}
	}
	if price, ok := body.Number("price"); ok {
		patch["price"] = model.NewMoney(price)
	}
	return patch
}
