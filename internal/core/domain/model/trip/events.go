package trip

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
)

const (
	StatusChangedEventName    = "trip.status_changed"
	IncidentReportedEventName = "trip.incident_reported"
)

type StatusChangedEvent struct {
	ddd.BaseEvent
	TripID    kernel.UUID `json:"trip_id"`
	ListingID kernel.UUID `json:"listing_id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	ChangedBy kernel.UUID `json:"changed_by"`
}

type IncidentReportedEvent struct {
	ddd.BaseEvent
	TripID     kernel.UUID `json:"trip_id"`
	IncidentID kernel.UUID `json:"incident_id"`
	Type       string      `json:"type"`
	Severity   string      `json:"severity"`
}
