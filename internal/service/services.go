package service

import (
	"gorm.io/gorm"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/internal/repository"
)

// Services is the wired service layer the router and the CLI build on.
type Services struct {
	Users      UserService
	Addresses  Resource[model.Address]
	Businesses Resource[model.Business]
	TravelFees Resource[model.TravelFee]
	Catalog    Resource[model.UserService]
	Bookings   Resource[model.CustomerBooking]
	Leads      Resource[model.Lead]
}

// New wires repositories and services over db.
func New(db *gorm.DB, tokens TokenIssuer, notifier Notifier) *Services {
	userRepo := repository.NewUserRepository(db)
	resolver := access.NewResolver(userRepo)
	owner := repository.StoreOptions{Preloads: []string{"User"}}

	return &Services{
		Users: NewUserService(userRepo, tokens),
		Addresses: NewAddressService(
			repository.NewStore[model.Address](db, owner), resolver, notifier),
		Businesses: NewBusinessService(
			repository.NewStore[model.Business](db, owner), resolver, notifier),
		TravelFees: NewTravelFeeService(
			repository.NewStore[model.TravelFee](db, owner), resolver, notifier),
		Catalog: NewCatalogService(
			repository.NewStore[model.UserService](db, repository.StoreOptions{
				Preloads: []string{"User", "ServicesIncluded"},
				Cascade:  []string{"ServicesIncluded"},
			}),
			repository.NewCatalogRepository(db),
			repository.NewTransactionManager(db),
			resolver, notifier),
		Bookings: NewBookingService(
			repository.NewStore[model.CustomerBooking](db, owner), resolver, notifier),
		Leads: NewLeadService(
			repository.NewStore[model.Lead](db, repository.StoreOptions{Preloads: []string{"User", "Owner"}}),
			resolver, notifier),
	}
}
