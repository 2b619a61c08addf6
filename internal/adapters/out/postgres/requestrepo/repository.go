package requestrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// OpenRequestIndex is the partial unique index that allows one open request per
// requester and listing.
const OpenRequestIndex = "ux_transport_requests_open"

const uniqueViolation = "23505"

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request. A violation of OpenRequestIndex is reported as an
// *errs.DuplicateRequestError.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == OpenRequestIndex {
			return errs.NewDuplicateRequestErrorWithCause(
				aggregate.RequesterID().String(), aggregate.ListingID().String(), err)
		}
		return errs.NewStorageError("add request", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransportRequestDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageError("update request", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransportRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, errs.NewStorageError("get request", err)
	}

	return toDomain(dto)
}

// Delete removes the row. The aggregate is still tracked so that its withdrawal
// event reaches the outbox.
func (r *GormRequestRepository) Delete(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TransportRequestDTO{}, "id = ?", aggregate.ID().Bytes())
	if result.Error != nil {
		return errs.NewStorageError("delete request", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) HasOpen(ctx context.Context, requesterID, listingID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TransportRequestDTO{}).
		Where("requester_id = ? AND listing_id = ? AND status IN ?",
			requesterID.Bytes(), listingID.Bytes(), []int{int(request.Pending), int(request.Accepted)}).
		Count(&count).Error
	if err != nil {
		return false, errs.NewStorageError("check open requests", err)
	}

	return count > 0, nil
}
