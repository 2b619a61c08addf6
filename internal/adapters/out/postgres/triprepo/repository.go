package triprepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTripRepository implements ports.TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return errs.NewStorageError("add trip", err)
	}
	if err := r.appendLogs(db, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the trip row and appends new log entries. The current position
// columns are written only together with newly appended positions, so a stale
// copy of the trip never moves the current position back.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&TripDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations, "current_latitude", "current_longitude", "current_reported_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageError("update trip", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", aggregate.ID().String())
	}
	if len(aggregate.UnsavedPositions()) > 0 {
		if err := r.moveCurrentPosition(db, dto); err != nil {
			return err
		}
	}
	if err := r.appendLogs(db, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AppendPositions inserts the positions reported since loading and moves the
// current position. No other column is written, so a position report never
// overwrites a concurrent status change.
func (r *GormTripRepository) AppendPositions(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := r.moveCurrentPosition(db, dto); err != nil {
		return err
	}

	return r.insertPositions(db, aggregate)
}

func (r *GormTripRepository) moveCurrentPosition(db *gorm.DB, dto TripDTO) error {
	result := db.Model(&TripDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"current_latitude":    dto.CurrentLatitude,
		"current_longitude":   dto.CurrentLongitude,
		"current_reported_at": dto.CurrentReportedAt,
	})
	if result.Error != nil {
		return errs.NewStorageError("update trip position", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", dto.ID.String())
	}
	return nil
}

func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "trip", id, "id = ?", id.Bytes())
}

func (r *GormTripRepository) GetByListing(ctx context.Context, listingID kernel.UUID) (*trip.Trip, error) {
	if err := listingID.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "trip for listing", listingID, "listing_id = ?", listingID.Bytes())
}

// Delete removes the trip and its log rows.
func (r *GormTripRepository) Delete(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	tripID := aggregate.ID().Bytes()
	if err := db.Delete(&PositionDTO{}, "trip_id = ?", tripID).Error; err != nil {
		return errs.NewStorageError("delete trip positions", err)
	}
	if err := db.Delete(&IncidentDTO{}, "trip_id = ?", tripID).Error; err != nil {
		return errs.NewStorageError("delete trip incidents", err)
	}
	if err := db.Delete(&TripDTO{}, "id = ?", tripID).Error; err != nil {
		return errs.NewStorageError("delete trip", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTripRepository) first(ctx context.Context, name string, id kernel.UUID, query string, arg any) (*trip.Trip, error) {
	var dto TripDTO
	err := r.db.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Incidents", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at") }).
		First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, id.String())
		}
		return nil, errs.NewStorageError("get trip", err)
	}

	return toDomain(dto)
}

func (r *GormTripRepository) appendLogs(db *gorm.DB, aggregate *trip.Trip) error {
	if err := r.insertPositions(db, aggregate); err != nil {
		return err
	}

	incidents := incidentsFromDomain(aggregate.ID(), aggregate.Incidents())
	if len(incidents) == 0 {
		return nil
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&incidents).Error; err != nil {
		return errs.NewStorageError("append trip incidents", err)
	}
	return nil
}

func (r *GormTripRepository) insertPositions(db *gorm.DB, aggregate *trip.Trip) error {
	positions := positionsFromDomain(aggregate.ID(), aggregate.UnsavedPositions())
	if len(positions) == 0 {
		return nil
	}
	if err := db.Create(&positions).Error; err != nil {
		return errs.NewStorageError("append trip positions", err)
	}

	aggregate.MarkPositionsSaved()
	return nil
}
