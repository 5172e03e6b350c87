package service

import (
	"context"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

var catalogDescriptor = access.Descriptor{
	Resource:    "user service",
	OwnerFields: []string{"user_id"},
	DenyMessage: "Forbidden - You do not own this user service",
}

var (
	bundleRule   = validation.Boolean("bundle", "Bundle must be a boolean")
	durationRule = validation.NonNegative("duration", "Duration must be a non-negative number")

	catalogCreateRequired = validation.Rule{
		Message: "Service name and duration are required",
		Check: func(p validation.Payload) bool {
			return p.Truthy("service_name") && p.Has("duration")
		},
	}
)

type catalogService struct {
	*engine[model.UserService, *model.UserService]
	resolver *access.Resolver
	catalog  repository.CatalogRepository
	txm      repository.TransactionManager
}

// NewCatalogService returns the Resource for a user's service catalog entries.
func NewCatalogService(
	store repository.Store[model.UserService],
	catalog repository.CatalogRepository,
	txm repository.TransactionManager,
	resolver *access.Resolver,
	notifier Notifier,
) Resource[model.UserService] {
	return &catalogService{
		engine:   newEngine[model.UserService](store, catalogDescriptor, notifier),
		resolver: resolver,
		catalog:  catalog,
		txm:      txm,
	}
}

func (s *catalogService) Create(ctx context.Context, caller *access.Principal, body validation.Payload) (*model.UserService, error) {
	bundle, _ := body.Bool("bundle")
	rules := []validation.Rule{
		catalogCreateRequired,
		bundleRule,
		bundleContentsRule(bundle, body.Raw("services_included")),
		durationRule,
	}
	if err := validation.Validate(body, rules); err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, caller, identifier(body, "user"), access.LabelUser)
	if err != nil {
		return nil, err
	}

	duration, _ := body.Number("duration")
	return s.insert(ctx, &model.UserService{
		UserID:           userID,
		ServiceName:      text(body, "service_name"),
		Bundle:           bundle,
		ServicesIncluded: subServices(body),
		Duration:         duration,
	})
}

// Update checks bundle consistency against the stored entry when either side changes and
// swaps the sub-service rows in the same transaction as the parent update.
func (s *catalogService) Update(ctx context.Context, caller access.Principal, id string, body validation.Payload) (*model.UserService, error) {
	key, current, err := s.load(ctx, caller, id, access.OpUpdate)
	if err != nil {
		return nil, err
	}

	rules := []validation.Rule{bundleRule}
	if body.Has("bundle") || body.Has("services_included") {
		bundle := current.Bundle
		if body.Has("bundle") {
			bundle, _ = body.Bool("bundle")
		}
		var items interface{} = storedSubServices(current)
		if body.Has("services_included") {
			items = body.Raw("services_included")
		}
		rules = append(rules, bundleContentsRule(bundle, items))
	}
	rules = append(rules, durationRule)
	if err := validation.ValidatePresent(body, rules); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	setText(patch, body, "service_name")
	if v, ok := body.Bool("bundle"); ok {
		patch["bundle"] = v
	}
	if v, ok := body.Number("duration"); ok {
		patch["duration"] = v
	}

	var updated *model.UserService
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if body.Has("services_included") {
			if err := s.catalog.ReplaceServicesIncluded(txCtx, key, subServices(body)); err != nil {
				return err
			}
		}
		var err error
		updated, err = s.patch(txCtx, key, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(s.resource(), ActionUpdated, key, updated.OwnerIDs())
	return updated, nil
}

// bundleContentsRule checks the sub-services against the bundle flag they will be stored with.
func bundleContentsRule(bundle bool, items interface{}) validation.Rule {
	var failure string
	check := func(validation.Payload) bool {
		failure = checkBundleContents(bundle, items)
		return failure == ""
	}
	return validation.Rule{
		Check:   check,
		Explain: func(validation.Payload) string { return failure },
	}
}

func checkBundleContents(bundle bool, items interface{}) string {
	list, isList := items.([]interface{})
	if !bundle {
		if items == nil || (isList && len(list) == 0) {
			return ""
		}
		return "Non-bundle services cannot have sub-services"
	}

	if !isList || len(list) == 0 {
		return "Bundle services must include at least one sub-service"
	}
	for _, item := range list {
		sub, _ := item.(map[string]interface{})
		p := validation.Payload(sub)
		if !p.Truthy("service_name") || !p.Has("price") || !p.Has("duration") {
			return "Each sub-service must have service_name, price, and duration"
		}
		if !validation.IsNonNegativeNumber(p.Raw("price")) {
			return "Sub-service price must be a non-negative number"
		}
		if !validation.IsNonNegativeNumber(p.Raw("duration")) {
			return "Sub-service duration must be a non-negative number"
		}
	}
	return ""
}

// subServices maps the validated services_included list onto rows.
func subServices(body validation.Payload) []model.ServiceIncluded {
	items, _ := body.Objects("services_included")
	out := make([]model.ServiceIncluded, 0, len(items))
	for _, item := range items {
		price, _ := item.Number("price")
		duration, _ := item.Number("duration")
		out = append(out, model.ServiceIncluded{
			ServiceName: text(item, "service_name"),
			Price:       model.NewMoney(price),
			Duration:    duration,
		})
	}
	return out
}

// storedSubServices renders stored rows in request shape so they go through the same checks.
func storedSubServices(current *model.UserService) []interface{} {
	out := make([]interface{}, 0, len(current.ServicesIncluded))
	for _, item := range current.ServicesIncluded {
		price, _ := item.Price.Float64()
		out = append(out, map[string]interface{}{
			"service_name": item.ServiceName,
			"price":        price,
			"duration":     item.Duration,
		})
	}
	return out
}
