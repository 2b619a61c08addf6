package queries

import (
	"context"
	"iter"
	"time"

	"freight/internal/core/domain/model/history"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// GetHistoryQueryHandler reads the four feed sources concurrently and merges them
// with a history.Aggregator. Nothing is cached; every call reads the tables again.
type GetHistoryQueryHandler struct {
	db         *gorm.DB
	aggregator *history.Aggregator
}

func NewGetHistoryQueryHandler(db *gorm.DB, aggregator *history.Aggregator) GetHistoryQueryHandler {
	return GetHistoryQueryHandler{db: db, aggregator: aggregator}
}

// Handle returns the feed newest first. The sequence can be ranged over once.
func (h GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) (iter.Seq[history.Item], error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()
	var src history.Sources

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		src.Listings, err = h.listings(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Ratings, err = h.ratings(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Requests, err = h.requests(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Notifications, err = h.notifications(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return h.aggregator.Merge(src), nil
}

func (h GetHistoryQueryHandler) listings(ctx context.Context, userID uuid.UUID) ([]history.ListingRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, origin_name, destination_name, status, arrival_at, price
		FROM listings
		WHERE owner_id = ?
		ORDER BY created_at, id
	`, userID).Rows()
	if err != nil {
		return nil, errs.NewStorageError("read listings", err)
	}
	defer rows.Close()

	records := make([]history.ListingRecord, 0)
	for rows.Next() {
		var (
			rec    history.ListingRecord
			id     uuid.UUID
			status int
		)
		if err = rows.Scan(&id, &rec.Origin, &rec.Destination, &status, &rec.ArrivalAt, &rec.Price); err != nil {
			return nil, errs.NewStorageError("read listings", err)
		}
		if rec.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		rec.Status = listing.Status(status)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("read listings", err)
	}
	return records, nil
}

func (h GetHistoryQueryHandler) ratings(ctx context.Context, userID uuid.UUID) ([]history.RatingRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, author_id, listing_id, score, comment, answer, created_at
		FROM ratings
		WHERE rated_user_id = ?
		ORDER BY created_at, id
	`, userID).Rows()
	if err != nil {
		return nil, errs.NewStorageError("read ratings", err)
	}
	defer rows.Close()

	records := make([]history.RatingRecord, 0)
	for rows.Next() {
		var (
			rec       history.RatingRecord
			id        uuid.UUID
			authorID  uuid.UUID
			listingID *uuid.UUID
		)
		if err = rows.Scan(&id, &authorID, &listingID, &rec.Score, &rec.Comment, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, errs.NewStorageError("read ratings", err)
		}
		if rec.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if rec.AuthorID, err = toKernelUUID(authorID); err != nil {
			return nil, err
		}
		if rec.ListingID, err = toKernelUUIDPtr(listingID); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("read ratings", err)
	}
	return records, nil
}

// requests reads the terminal requests filed on the user's listings.
func (h GetHistoryQueryHandler) requests(ctx context.Context, userID uuid.UUID) ([]history.RequestRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.id, r.listing_id, r.requester_id, r.parcel_description, r.status, r.refusal_reason, r.responded_at
		FROM transport_requests r
		JOIN listings l ON l.id = r.listing_id
		WHERE l.owner_id = ? AND r.status IN (?, ?)
		ORDER BY r.created_at, r.id
	`, userID, int(request.Delivered), int(request.Refused)).Rows()
	if err != nil {
		return nil, errs.NewStorageError("read requests", err)
	}
	defer rows.Close()

	records := make([]history.RequestRecord, 0)
	for rows.Next() {
		var (
			rec                        history.RequestRecord
			id, listingID, requesterID uuid.UUID
			status                     int
			respondedAt                *time.Time
		)
		err = rows.Scan(&id, &listingID, &requesterID, &rec.Description, &status, &rec.RefusalReason, &respondedAt)
		if err != nil {
			return nil, errs.NewStorageError("read requests", err)
		}
		if rec.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if rec.ListingID, err = toKernelUUID(listingID); err != nil {
			return nil, err
		}
		if rec.RequesterID, err = toKernelUUID(requesterID); err != nil {
			return nil, err
		}
		rec.Status = request.Status(status)
		rec.RespondedAt = respondedAt
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("read requests", err)
	}
	return records, nil
}

func (h GetHistoryQueryHandler) notifications(ctx context.Context, userID uuid.UUID) ([]history.NotificationRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, title, message, read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at, id
	`, userID).Rows()
	if err != nil {
		return nil, errs.NewStorageError("read notifications", err)
	}
	defer rows.Close()

	records := make([]history.NotificationRecord, 0)
	for rows.Next() {
		var (
			rec history.NotificationRecord
			id  uuid.UUID
		)
		if err = rows.Scan(&id, &rec.Title, &rec.Message, &rec.Read, &rec.CreatedAt); err != nil {
			return nil, errs.NewStorageError("read notifications", err)
		}
		if rec.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("read notifications", err)
	}
	return records, nil
}
