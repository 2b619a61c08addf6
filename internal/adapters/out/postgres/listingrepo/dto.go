// Package listingrepo persists listing aggregates with GORM.
package listingrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ListingDTO is the listings row. Stops are kept as an ordered text array and
// conditions as a JSON object.
type ListingDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID         `gorm:"type:uuid;index"`
	Origin         PlaceDTO          `gorm:"embedded;embeddedPrefix:origin_"`
	Destination    PlaceDTO          `gorm:"embedded;embeddedPrefix:destination_"`
	Stops          pq.StringArray    `gorm:"type:text[]"`
	DepartureAt    time.Time         `gorm:"not null"`
	ArrivalAt      *time.Time
	MaxLength      *float64
	MaxWidth       *float64
	MaxHeight      *float64
	MaxWeight      *float64
	CapacityVolume float64
	Price          float64
	Conditions     map[string]string `gorm:"serializer:json;type:jsonb"`
	Seats          int
	Urgent         bool
	Status         int               `gorm:"index"`
	CreatedAt      time.Time         `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime:false"`
}

func (ListingDTO) TableName() string {
	return "listings"
}

// PlaceDTO stores a named place with optional coordinates.
type PlaceDTO struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

func placeFromDomain(p kernel.Place) PlaceDTO {
	dto := PlaceDTO{Name: p.Name()}
	if c := p.Coordinates(); c != nil {
		lat, lon := c.Latitude(), c.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func placeToDomain(dto PlaceDTO) (kernel.Place, error) {
	var coords *kernel.Coordinates
	if dto.Latitude != nil && dto.Longitude != nil {
		c, err := kernel.NewCoordinates(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return kernel.Place{}, err
		}
		coords = &c
	}
	return kernel.NewPlace(dto.Name, coords)
}

func fromDomain(l *listing.Listing) ListingDTO {
	dto := ListingDTO{
		ID:             l.ID().Bytes(),
		OwnerID:        l.OwnerID().Bytes(),
		Origin:         placeFromDomain(l.Origin()),
		Destination:    placeFromDomain(l.Destination()),
		Stops:          pq.StringArray(l.StopNames()),
		DepartureAt:    l.DepartureAt(),
		MaxWeight:      l.MaxWeight(),
		CapacityVolume: l.CapacityVolume(),
		Price:          l.Price(),
		Conditions:     l.Conditions(),
		Seats:          l.Seats(),
		Urgent:         l.Urgent(),
		Status:         int(l.Status()),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}

	if arrival := l.ArrivalAt(); !arrival.IsZero() {
		dto.ArrivalAt = &arrival
	}
	if d := l.MaxDimensions(); d != nil {
		length, width, height := d.Length(), d.Width(), d.Height()
		dto.MaxLength, dto.MaxWidth, dto.MaxHeight = &length, &width, &height
	}

	return dto
}

func toDomain(dto ListingDTO) (*listing.Listing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	origin, err := placeToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := placeToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	var maxDims *kernel.Dimensions
	if dto.MaxLength != nil && dto.MaxWidth != nil && dto.MaxHeight != nil {
		d, dimErr := kernel.NewDimensions(*dto.MaxLength, *dto.MaxWidth, *dto.MaxHeight)
		if dimErr != nil {
			return nil, dimErr
		}
		maxDims = &d
	}

	var arrivalAt time.Time
	if dto.ArrivalAt != nil {
		arrivalAt = *dto.ArrivalAt
	}

	return listing.RestoreListing(id, ownerID, listing.Params{
		Origin:         origin,
		Destination:    destination,
		Stops:          dto.Stops,
		DepartureAt:    dto.DepartureAt,
		ArrivalAt:      arrivalAt,
		MaxDimensions:  maxDims,
		MaxWeight:      dto.MaxWeight,
		CapacityVolume: dto.CapacityVolume,
		Price:          dto.Price,
		Conditions:     dto.Conditions,
		Seats:          dto.Seats,
		Urgent:         dto.Urgent,
	}, listing.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
