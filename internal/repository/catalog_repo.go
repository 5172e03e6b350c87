package repository

import (
	"context"

	"scheduling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository manages the sub-services hanging off a UserService
type CatalogRepository interface {
	ReplaceServicesIncluded(ctx context.Context, userServiceID uuid.UUID, items []model.ServiceIncluded) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// ReplaceServicesIncluded deletes every existing sub-service and inserts items (delete-all + re-create)
func (r *catalogRepository) ReplaceServicesIncluded(ctx context.Context, userServiceID uuid.UUID, items []model.ServiceIncluded) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("user_service_id = ?", userServiceID).Delete(&model.ServiceIncluded{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].UserServiceID = userServiceID
	}
	return db.Create(&items).Error
}
