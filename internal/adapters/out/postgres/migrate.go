package postgres

import (
	"fmt"

	"freight/internal/adapters/out/postgres/ledgerrepo"
	"freight/internal/adapters/out/postgres/listingrepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/core/domain/model/request"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the engine uses, including the
// partial unique index that allows one open request per requester and listing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&listingrepo.ListingDTO{},
		&requestrepo.TransportRequestDTO{},
		&triprepo.TripDTO{},
		&triprepo.PositionDTO{},
		&triprepo.IncidentDTO{},
		&ledgerrepo.RatingDTO{},
		&ledgerrepo.NotificationDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	openRequests := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON transport_requests (requester_id, listing_id) WHERE status IN (%d, %d)",
		requestrepo.OpenRequestIndex, int(request.Pending), int(request.Accepted),
	)
	if err := db.Exec(openRequests).Error; err != nil {
		return fmt.Errorf("create open request index: %w", err)
	}

	return nil
}
