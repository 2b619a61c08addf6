package http

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
)

type placeBody struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (b placeBody) toPlace() (kernel.Place, error) {
	if (b.Latitude == nil) != (b.Longitude == nil) {
		return kernel.Place{}, errs.NewValueIsRequiredError("latitude and longitude together")
	}
	if b.Latitude == nil {
		return kernel.NewPlace(b.Name, nil)
	}

	coords, err := kernel.NewCoordinates(*b.Latitude, *b.Longitude)
	if err != nil {
		return kernel.Place{}, err
	}
	return kernel.NewPlace(b.Name, &coords)
}

type dimensionsBody struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b *dimensionsBody) toDimensions() (*kernel.Dimensions, error) {
	if b == nil {
		return nil, nil
	}
	d, err := kernel.NewDimensions(b.Length, b.Width, b.Height)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type createListingBody struct {
	Origin         placeBody         `json:"origin"`
	Destination    placeBody         `json:"destination"`
	Stops          []string          `json:"stops"`
	DepartureAt    time.Time         `json:"departure_at"`
	ArrivalAt      *time.Time        `json:"arrival_at"`
	MaxDimensions  *dimensionsBody   `json:"max_dimensions"`
	MaxWeight      *float64          `json:"max_weight"`
	CapacityVolume float64           `json:"capacity_volume"`
	Price          float64           `json:"price"`
	Conditions     map[string]string `json:"conditions"`
	Seats          int               `json:"seats"`
	Urgent         bool              `json:"urgent"`
}

func (b createListingBody) toParams() (listing.Params, error) {
	origin, originErr := b.Origin.toPlace()
	destination, destinationErr := b.Destination.toPlace()
	maxDims, dimsErr := b.MaxDimensions.toDimensions()
	if err := errors.Join(originErr, destinationErr, dimsErr); err != nil {
		return listing.Params{}, err
	}

	p := listing.Params{
		Origin:         origin,
		Destination:    destination,
		Stops:          b.Stops,
		DepartureAt:    b.DepartureAt,
		MaxDimensions:  maxDims,
		MaxWeight:      b.MaxWeight,
		CapacityVolume: b.CapacityVolume,
		Price:          b.Price,
		Conditions:     b.Conditions,
		Seats:          b.Seats,
		Urgent:         b.Urgent,
	}
	if b.ArrivalAt != nil {
		p.ArrivalAt = *b.ArrivalAt
	}
	return p, nil
}

type updateListingBody struct {
	Origin         *placeBody        `json:"origin"`
	Destination    *placeBody        `json:"destination"`
	Stops          *[]string         `json:"stops"`
	DepartureAt    *time.Time        `json:"departure_at"`
	ArrivalAt      *time.Time        `json:"arrival_at"`
	MaxDimensions  *dimensionsBody   `json:"max_dimensions"`
	MaxWeight      *float64          `json:"max_weight"`
	CapacityVolume *float64          `json:"capacity_volume"`
	Price          *float64          `json:"price"`
	Conditions     map[string]string `json:"conditions"`
	Seats          *int              `json:"seats"`
	Urgent         *bool             `json:"urgent"`
}

func (b updateListingBody) toPatch() (listing.Patch, error) {
	patch := listing.Patch{
		Stops:          b.Stops,
		DepartureAt:    b.DepartureAt,
		ArrivalAt:      b.ArrivalAt,
		MaxWeight:      b.MaxWeight,
		CapacityVolume: b.CapacityVolume,
		Price:          b.Price,
		Conditions:     b.Conditions,
		Seats:          b.Seats,
		Urgent:         b.Urgent,
	}

	var originErr, destinationErr, dimsErr error
	if b.Origin != nil {
		var origin kernel.Place
		origin, originErr = b.Origin.toPlace()
		patch.Origin = &origin
	}
	if b.Destination != nil {
		var destination kernel.Place
		destination, destinationErr = b.Destination.toPlace()
		patch.Destination = &destination
	}
	patch.MaxDimensions, dimsErr = b.MaxDimensions.toDimensions()

	if err := errors.Join(originErr, destinationErr, dimsErr); err != nil {
		return listing.Patch{}, err
	}
	return patch, nil
}

type parcelBody struct {
	Description   string         `json:"description"`
	Dimensions    dimensionsBody `json:"dimensions"`
	Weight        float64        `json:"weight"`
	Category      string         `json:"category"`
	DeclaredValue float64        `json:"declared_value"`
	Insured       bool           `json:"insured"`
}

type contactBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (b *contactBody) toContact() (request.Contact, error) {
	if b == nil {
		return request.Contact{}, nil
	}
	return request.NewContact(b.Name, b.Phone)
}

type windowBody struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

func (b *windowBody) toWindow() (request.Window, error) {
	if b == nil {
		return request.Window{}, nil
	}
	var from, to time.Time
	if b.From != nil {
		from = *b.From
	}
	if b.To != nil {
		to = *b.To
	}
	return request.NewWindow(from, to)
}

type createRequestBody struct {
	ListingID       string       `json:"listing_id"`
	Parcel          parcelBody   `json:"parcel"`
	Pickup          placeBody    `json:"pickup"`
	Delivery        placeBody    `json:"delivery"`
	PickupContact   *contactBody `json:"pickup_contact"`
	DeliveryContact *contactBody `json:"delivery_contact"`
	PickupWindow    *windowBody  `json:"pickup_window"`
	DeliveryWindow  *windowBody  `json:"delivery_window"`
}

func (b createRequestBody) toDetails() (request.Details, error) {
	dims, dimsErr := kernel.NewDimensions(b.Parcel.Dimensions.Length, b.Parcel.Dimensions.Width, b.Parcel.Dimensions.Height)
	if dimsErr != nil {
		return request.Details{}, dimsErr
	}
	parcel, parcelErr := request.NewParcel(
		b.Parcel.Description, dims, b.Parcel.Weight, b.Parcel.Category, b.Parcel.DeclaredValue, b.Parcel.Insured)
	pickup, pickupErr := b.Pickup.toPlace()
	delivery, deliveryErr := b.Delivery.toPlace()
	pickupContact, pickupContactErr := b.PickupContact.toContact()
	deliveryContact, deliveryContactErr := b.DeliveryContact.toContact()
	pickupWindow, pickupWindowErr := b.PickupWindow.toWindow()
	deliveryWindow, deliveryWindowErr := b.DeliveryWindow.toWindow()

	if err := errors.Join(
		parcelErr, pickupErr, deliveryErr,
		pickupContactErr, deliveryContactErr,
		pickupWindowErr, deliveryWindowErr,
	); err != nil {
		return request.Details{}, err
	}

	return request.Details{
		Parcel:          parcel,
		Pickup:          pickup,
		Delivery:        delivery,
		PickupContact:   pickupContact,
		DeliveryContact: deliveryContact,
		PickupWindow:    pickupWindow,
		DeliveryWindow:  deliveryWindow,
	}, nil
}

type transitionRequestBody struct {
	Status        string  `json:"status"`
	Comment       *string `json:"comment"`
	RefusalReason *string `json:"refusal_reason"`
}

type reportPositionBody struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	ReportedAt *time.Time `json:"reported_at"`
}

type reportIncidentBody struct {
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	OccurredAt  *time.Time `json:"occurred_at"`
}
