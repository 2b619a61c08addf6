package trip

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Position is one reported location of the vehicle.
type Position struct {
	coords     kernel.Coordinates
	reportedAt time.Time
}

func NewPosition(coords kernel.Coordinates, reportedAt time.Time) (Position, error) {
	if err := coords.Validate(); err != nil {
		return Position{}, err
	}
	if reportedAt.IsZero() {
		return Position{}, errs.NewValueIsRequiredError("reported at")
	}
	return Position{coords: coords, reportedAt: reportedAt}, nil
}

func (p Position) Coordinates() kernel.Coordinates { return p.coords }
func (p Position) ReportedAt() time.Time           { return p.reportedAt }
