// Package ledgerrepo maps the rating and notification tables. Both are written
// by other services; the booking engine only reads them for the history feed.
package ledgerrepo

import (
	"time"

	"github.com/google/uuid"
)

type RatingDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;index"`
	RatedUserID uuid.UUID  `gorm:"type:uuid;index"`
	ListingID   *uuid.UUID `gorm:"type:uuid"`
	Score       int        `gorm:"check:score BETWEEN 1 AND 5"`
	Comment     string
	Answer      *string
	CreatedAt   time.Time
}

func (RatingDTO) TableName() string {
	return "ratings"
}

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}
