package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetTrackQueryHandler struct {
	db *gorm.DB
}

func NewGetTrackQueryHandler(db *gorm.DB) GetTrackQueryHandler {
	return GetTrackQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for an unknown trip and
// *errs.StorageError when the store fails.
func (h GetTrackQueryHandler) Handle(ctx context.Context, query GetTrackQuery) (GetTrackQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	tripID := query.TripID().Bytes()

	var (
		status    int
		lat, lon  *float64
		currentAt *time.Time
	)
	err := db.Raw(`
		SELECT status, current_latitude, current_longitude, current_reported_at
		FROM trips
		WHERE id = ?
	`, tripID).Row().Scan(&status, &lat, &lon, &currentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackQueryResponse{}, errs.NewObjectNotFoundError("trip", query.TripID())
	}
	if err != nil {
		return GetTrackQueryResponse{}, errs.NewStorageError("read trip", err)
	}

	resp := GetTrackQueryResponse{
		TripID:  query.TripID(),
		Status:  trip.Status(status).String(),
		History: make([]PositionView, 0),
	}
	if lat != nil && lon != nil && currentAt != nil {
		resp.Current = &PositionView{Latitude: *lat, Longitude: *lon, ReportedAt: *currentAt}
	}

	rows, err := db.Raw(`
		SELECT latitude, longitude, reported_at
		FROM trip_positions
		WHERE trip_id = ?
		ORDER BY seq
	`, tripID).Rows()
	if err != nil {
		return GetTrackQueryResponse{}, errs.NewStorageError("read trip positions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p PositionView
		if err = rows.Scan(&p.Latitude, &p.Longitude, &p.ReportedAt); err != nil {
			return GetTrackQueryResponse{}, errs.NewStorageError("read trip positions", err)
		}
		resp.History = append(resp.History, p)
	}

	if err = rows.Err(); err != nil {
		return GetTrackQueryResponse{}, errs.NewStorageError("read trip positions", err)
	}

	return resp, nil
}
