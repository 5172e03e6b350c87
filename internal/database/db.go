package database

import (
	"scheduling/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table owned by the service, in migration order
var Models = []interface{}{
	&model.User{},
	&model.UserRole{},
	&model.Address{},
	&model.Business{},
	&model.TravelFee{},
	&model.UserService{},
	&model.ServiceIncluded{},
	&model.CustomerBooking{},
	&model.Lead{},
}

// GormConfig is shared by every dialect. Foreign keys are not migrated: records keep
// their owner ids after a user is removed and nothing cascades.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), GormConfig())
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(Models...); err != nil {
		log.Error("auto-migrate failed", zap.Error(err))
		return err
	}
	log.Info("schema migrated", zap.Int("tables", len(Models)))
	return nil
}
