package listingrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormListingRepository implements ports.ListingRepository using GORM.
type GormListingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormListingRepository(db *gorm.DB, tracker aggregateTracker) *GormListingRepository {
	return &GormListingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new listing.
func (r *GormListingRepository) Add(ctx context.Context, aggregate *listing.Listing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageError("add listing", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, so cleared optional terms are persisted as NULL.
func (r *GormListingRepository) Update(ctx context.Context, aggregate *listing.Listing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ListingDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageError("update listing", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("listing", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a listing by ID.
func (r *GormListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ListingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("listing", id.String())
		}
		return nil, errs.NewStorageError("get listing", err)
	}

	return toDomain(dto)
}
