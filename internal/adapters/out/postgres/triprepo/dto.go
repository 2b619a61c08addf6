// Package triprepo persists trips with their append-only position log and
// incident log.
package triprepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TripDTO is the trips row. The current position is denormalized into the row so
// that the track query does not scan the log.
type TripDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ListingID         uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	CarrierID         uuid.UUID      `gorm:"type:uuid;index"`
	RequestIDs        pq.StringArray `gorm:"type:text[]"`
	Status            int            `gorm:"index"`
	PlannedDeparture  time.Time
	ActualDeparture   *time.Time
	ActualArrival     *time.Time
	DistanceKm        float64
	Cost              float64
	Rating            *float64
	CurrentLatitude   *float64
	CurrentLongitude  *float64
	CurrentReportedAt *time.Time

	Positions []PositionDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	Incidents []IncidentDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

func (TripDTO) TableName() string {
	return "trips"
}

// PositionDTO is an insert-only row; Seq gives the arrival order.
type PositionDTO struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	TripID     uuid.UUID `gorm:"type:uuid;index"`
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time
}

func (PositionDTO) TableName() string {
	return "trip_positions"
}

type IncidentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID      uuid.UUID `gorm:"type:uuid;index"`
	Type        string
	Description string
	Severity    int
	OccurredAt  time.Time
}

func (IncidentDTO) TableName() string {
	return "trip_incidents"
}

func fromDomain(t *trip.Trip) TripDTO {
	schedule := t.Schedule()
	requestIDs := t.RequestIDs()
	ids := make(pq.StringArray, len(requestIDs))
	for i, id := range requestIDs {
		ids[i] = id.String()
	}

	dto := TripDTO{
		ID:               t.ID().Bytes(),
		ListingID:        t.ListingID().Bytes(),
		CarrierID:        t.CarrierID().Bytes(),
		RequestIDs:       ids,
		Status:           int(t.Status()),
		PlannedDeparture: schedule.PlannedDeparture,
		ActualDeparture:  schedule.ActualDeparture,
		ActualArrival:    schedule.ActualArrival,
		DistanceKm:       t.DistanceKm(),
		Cost:             t.Cost(),
		Rating:           t.Rating(),
	}
	if p := t.CurrentPosition(); p != nil {
		lat, lon, at := p.Coordinates().Latitude(), p.Coordinates().Longitude(), p.ReportedAt()
		dto.CurrentLatitude, dto.CurrentLongitude, dto.CurrentReportedAt = &lat, &lon, &at
	}

	return dto
}

func positionsFromDomain(tripID kernel.UUID, positions []trip.Position) []PositionDTO {
	dtos := make([]PositionDTO, len(positions))
	for i, p := range positions {
		dtos[i] = PositionDTO{
			TripID:     tripID.Bytes(),
			Latitude:   p.Coordinates().Latitude(),
			Longitude:  p.Coordinates().Longitude(),
			ReportedAt: p.ReportedAt(),
		}
	}
	return dtos
}

func incidentsFromDomain(tripID kernel.UUID, incidents []trip.Incident) []IncidentDTO {
	dtos := make([]IncidentDTO, len(incidents))
	for i, inc := range incidents {
		dtos[i] = IncidentDTO{
			ID:          inc.ID().Bytes(),
			TripID:      tripID.Bytes(),
			Type:        inc.Kind(),
			Description: inc.Description(),
			Severity:    int(inc.Severity()),
			OccurredAt:  inc.OccurredAt(),
		}
	}
	return dtos
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	requestIDs := make([]kernel.UUID, 0, len(dto.RequestIDs))
	for _, raw := range dto.RequestIDs {
		rid, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		requestIDs = append(requestIDs, rid)
	}

	history := make([]trip.Position, 0, len(dto.Positions))
	for _, p := range dto.Positions {
		pos, posErr := toPosition(p.Latitude, p.Longitude, p.ReportedAt)
		if posErr != nil {
			return nil, posErr
		}
		history = append(history, pos)
	}

	var current *trip.Position
	if dto.CurrentLatitude != nil && dto.CurrentLongitude != nil && dto.CurrentReportedAt != nil {
		pos, posErr := toPosition(*dto.CurrentLatitude, *dto.CurrentLongitude, *dto.CurrentReportedAt)
		if posErr != nil {
			return nil, posErr
		}
		current = &pos
	}

	incidents := make([]trip.Incident, 0, len(dto.Incidents))
	for _, i := range dto.Incidents {
		incidentID, idErr := kernel.UUIDFromBytes(i.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		inc, incErr := trip.NewIncident(incidentID, i.Type, i.Description, trip.Severity(i.Severity), i.OccurredAt)
		if incErr != nil {
			return nil, incErr
		}
		incidents = append(incidents, inc)
	}

	return trip.RestoreTrip(
		id, listingID, carrierID,
		requestIDs,
		trip.Status(dto.Status),
		trip.Schedule{
			PlannedDeparture: dto.PlannedDeparture,
			ActualDeparture:  dto.ActualDeparture,
			ActualArrival:    dto.ActualArrival,
		},
		dto.DistanceKm, dto.Cost,
		dto.Rating,
		current,
		history,
		incidents,
	)
}

func toPosition(lat, lon float64, at time.Time) (trip.Position, error) {
	coords, err := kernel.NewCoordinates(lat, lon)
	if err != nil {
		return trip.Position{}, err
	}
	return trip.NewPosition(coords, at)
}
