package repository

import (
	"context"
	"errors"

	"scheduling/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// Patch maps column names to new values. Only supplied fields appear in it, so an
// explicitly cleared value and an omitted one stay distinguishable.
type Patch map[string]interface{}

// Store is the persistence port shared by every owned collection.
type Store[T any] interface {
	FindOne(ctx context.Context, filter query.Filter) (*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindMany(ctx context.Context, filter query.Filter) ([]T, error)
	Insert(ctx context.Context, record *T) error
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoreOptions tunes how a collection is read and deleted.
type StoreOptions struct {
	// Preloads are associations populated on every read (e.g. "User").
	Preloads []string
	// Cascade are has-many associations removed together with the parent row.
	Cascade []string
}

type gormStore[T any] struct {
	db   *gorm.DB
	opts StoreOptions
}

// NewStore returns a gorm backed Store for T.
func NewStore[T any](db *gorm.DB, opts StoreOptions) Store[T] {
	return &gormStore[T]{db: db, opts: opts}
}

func (s *gormStore[T]) read(ctx context.Context) *gorm.DB {
	db := GetDB(ctx, s.db)
	for _, p := range s.opts.Preloads {
		db = db.Preload(p)
	}
	return db
}

func where(db *gorm.DB, filter query.Filter) *gorm.DB {
	if clause, args := filter.SQL(); clause != "" {
		return db.Where(clause, args...)
	}
	return db
}

func (s *gormStore[T]) FindOne(ctx context.Context, filter query.Filter) (*T, error) {
	var record T
	if err := where(s.read(ctx), filter).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := s.read(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormStore[T]) FindMany(ctx context.Context, filter query.Filter) ([]T, error) {
	records := make([]T, 0)
	if err := where(s.read(ctx), filter).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Insert creates the row (and any has-many children set on it) then reloads the
// preloaded associations.
func (s *gormStore[T]) Insert(ctx context.Context, record *T) error {
	db := GetDB(ctx, s.db)
	if err := db.Create(record).Error; err != nil {
		return err
	}
	if len(s.opts.Preloads) == 0 {
		return nil
	}
	return s.read(ctx).First(record).Error
}

// Update applies the patch in a single statement and returns the fresh row.
func (s *gormStore[T]) Update(ctx context.Context, id uuid.UUID, patch Patch) (*T, error) {
	if len(patch) > 0 {
		res := GetDB(ctx, s.db).Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}(patch))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindByID(ctx, id)
}

func (s *gormStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, s.db)
	if len(s.opts.Cascade) == 0 {
		res := db.Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}

	var record T
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return err
	}
	return db.Select(s.opts.Cascade).Delete(&record).Error
}

// IsNotFound reports whether err means the lookup matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
