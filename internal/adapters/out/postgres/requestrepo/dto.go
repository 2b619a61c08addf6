// Package requestrepo persists transport requests with GORM.
package requestrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// TransportRequestDTO is the transport_requests row. The partial unique index on
// open requests is created by postgres.Migrate.
type TransportRequestDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID        uuid.UUID  `gorm:"type:uuid;index"`
	ListingID          uuid.UUID  `gorm:"type:uuid;index"`
	Parcel             ParcelDTO  `gorm:"embedded;embeddedPrefix:parcel_"`
	Pickup             PlaceDTO   `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery           PlaceDTO   `gorm:"embedded;embeddedPrefix:delivery_"`
	PickupContact      ContactDTO `gorm:"embedded;embeddedPrefix:pickup_contact_"`
	DeliveryContact    ContactDTO `gorm:"embedded;embeddedPrefix:delivery_contact_"`
	PickupWindowFrom   *time.Time
	PickupWindowTo     *time.Time
	DeliveryWindowFrom *time.Time
	DeliveryWindowTo   *time.Time
	Status             int `gorm:"index"`
	RespondedAt        *time.Time
	Comment            string
	RefusalReason      string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (TransportRequestDTO) TableName() string {
	return "transport_requests"
}

type ParcelDTO struct {
	Description   string
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
	Category      string
	DeclaredValue float64
	Insured       bool
}

type PlaceDTO struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

type ContactDTO struct {
	Name  string
	Phone string
}

func fromDomain(r *request.TransportRequest) TransportRequestDTO {
	d := r.Details()
	p := d.Parcel
	dims := p.Dimensions()

	dto := TransportRequestDTO{
		ID:          r.ID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		ListingID:   r.ListingID().Bytes(),
		Parcel: ParcelDTO{
			Description:   p.Description(),
			Length:        dims.Length(),
			Width:         dims.Width(),
			Height:        dims.Height(),
			Weight:        p.Weight(),
			Category:      p.Category(),
			DeclaredValue: p.DeclaredValue(),
			Insured:       p.Insured(),
		},
		Pickup:          placeFromDomain(d.Pickup),
		Delivery:        placeFromDomain(d.Delivery),
		PickupContact:   ContactDTO{Name: d.PickupContact.Name(), Phone: d.PickupContact.Phone()},
		DeliveryContact: ContactDTO{Name: d.DeliveryContact.Name(), Phone: d.DeliveryContact.Phone()},
		Status:          int(r.Status()),
		RespondedAt:     r.RespondedAt(),
		Comment:         r.Comment(),
		RefusalReason:   r.RefusalReason(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	dto.PickupWindowFrom, dto.PickupWindowTo = windowFromDomain(d.PickupWindow)
	dto.DeliveryWindowFrom, dto.DeliveryWindowTo = windowFromDomain(d.DeliveryWindow)

	return dto
}

func toDomain(dto TransportRequestDTO) (*request.TransportRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}
	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}

	details, err := detailsToDomain(dto)
	if err != nil {
		return nil, err
	}

	return request.RestoreTransportRequest(
		id,
		requesterID,
		listingID,
		details,
		request.Status(dto.Status),
		dto.RespondedAt,
		dto.Comment,
		dto.RefusalReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func detailsToDomain(dto TransportRequestDTO) (request.Details, error) {
	dims, err := kernel.NewDimensions(dto.Parcel.Length, dto.Parcel.Width, dto.Parcel.Height)
	if err != nil {
		return request.Details{}, err
	}
	parcel, err := request.NewParcel(dto.Parcel.Description, dims, dto.Parcel.Weight,
		dto.Parcel.Category, dto.Parcel.DeclaredValue, dto.Parcel.Insured)
	if err != nil {
		return request.Details{}, err
	}
	pickup, err := placeToDomain(dto.Pickup)
	if err != nil {
		return request.Details{}, err
	}
	delivery, err := placeToDomain(dto.Delivery)
	if err != nil {
		return request.Details{}, err
	}
	pickupWindow, err := windowToDomain(dto.PickupWindowFrom, dto.PickupWindowTo)
	if err != nil {
		return request.Details{}, err
	}
	deliveryWindow, err := windowToDomain(dto.DeliveryWindowFrom, dto.DeliveryWindowTo)
	if err != nil {
		return request.Details{}, err
	}

	return request.Details{
		Parcel:          parcel,
		Pickup:          pickup,
		Delivery:        delivery,
		PickupContact:   contactToDomain(dto.PickupContact),
		DeliveryContact: contactToDomain(dto.DeliveryContact),
		PickupWindow:    pickupWindow,
		DeliveryWindow:  deliveryWindow,
	}, nil
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

// contactToDomain tolerates rows without a contact; contacts are optional.
func contactToDomain(dto ContactDTO) request.Contact {
	c, err := request.NewContact(dto.Name, dto.Phone)
	if err != nil {
		return request.Contact{}
	}
	return c
}

func windowFromDomain(w request.Window) (*time.Time, *time.Time) {
	var from, to *time.Time
	if f := w.From(); !f.IsZero() {
		from = &f
	}
	if t := w.To(); !t.IsZero() {
		to = &t
	}
	return from, to
}

func windowToDomain(from, to *time.Time) (request.Window, error) {
	var f, t time.Time
	if from != nil {
		f = *from
	}
	if to != nil {
		t = *to
	}
	return request.NewWindow(f, t)
}
