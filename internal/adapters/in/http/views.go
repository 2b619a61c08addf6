package http

import (
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/trip"
)

// Command results are rendered with the same views the read side uses so a
// client sees one shape per resource.

func placeView(p kernel.Place) queries.PlaceView {
	v := queries.PlaceView{Name: p.Name()}
	if c := p.Coordinates(); c != nil {
		lat, lon := c.Latitude(), c.Longitude()
		v.Latitude, v.Longitude = &lat, &lon
	}
	return v
}

func dimensionsView(d kernel.Dimensions) queries.DimensionsView {
	return queries.DimensionsView{Length: d.Length(), Width: d.Width(), Height: d.Height()}
}

func listingView(l *listing.Listing) queries.GetListingQueryResponse {
	v := queries.GetListingQueryResponse{
		ID:             l.ID(),
		OwnerID:        l.OwnerID(),
		Origin:         placeView(l.Origin()),
		Destination:    placeView(l.Destination()),
		Stops:          l.StopNames(),
		DepartureAt:    l.DepartureAt(),
		MaxWeight:      l.MaxWeight(),
		CapacityVolume: l.CapacityVolume(),
		Price:          l.Price(),
		Conditions:     l.Conditions(),
		Seats:          l.Seats(),
		Urgent:         l.Urgent(),
		Status:         l.Status().String(),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
	if arrival := l.ArrivalAt(); !arrival.IsZero() {
		v.ArrivalAt = &arrival
	}
	if d := l.MaxDimensions(); d != nil {
		dv := dimensionsView(*d)
		v.MaxDimensions = &dv
	}
	return v
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func requestView(r *request.TransportRequest, listingOwnerID kernel.UUID) queries.GetRequestQueryResponse {
	d := r.Details()
	return queries.GetRequestQueryResponse{
		ID:             r.ID(),
		RequesterID:    r.RequesterID(),
		ListingID:      r.ListingID(),
		ListingOwnerID: listingOwnerID,
		Parcel: queries.ParcelView{
			Description:   d.Parcel.Description(),
			Dimensions:    dimensionsView(d.Parcel.Dimensions()),
			Weight:        d.Parcel.Weight(),
			Category:      d.Parcel.Category(),
			DeclaredValue: d.Parcel.DeclaredValue(),
			Insured:       d.Parcel.Insured(),
		},
		Pickup:          placeView(d.Pickup),
		Delivery:        placeView(d.Delivery),
		PickupContact:   queries.ContactView{Name: d.PickupContact.Name(), Phone: d.PickupContact.Phone()},
		DeliveryContact: queries.ContactView{Name: d.DeliveryContact.Name(), Phone: d.DeliveryContact.Phone()},
		PickupWindow:    queries.WindowView{From: timePtr(d.PickupWindow.From()), To: timePtr(d.PickupWindow.To())},
		DeliveryWindow:  queries.WindowView{From: timePtr(d.DeliveryWindow.From()), To: timePtr(d.DeliveryWindow.To())},
		Status:          r.Status().String(),
		RespondedAt:     r.RespondedAt(),
		Comment:         r.Comment(),
		RefusalReason:   r.RefusalReason(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// placedRequestView is the 201 body of a placement: the request, the role it
// was placed under and the listing it references.
type placedRequestView struct {
	queries.GetRequestQueryResponse
	RequesterRole string                          `json:"requester_role"`
	Listing       queries.GetListingQueryResponse `json:"listing"`
}

func placedView(p commands.PlacedRequest) placedRequestView {
	return placedRequestView{
		GetRequestQueryResponse: requestView(p.Request, p.Listing.OwnerID()),
		RequesterRole:           p.Requester.Role().String(),
		Listing:                 listingView(p.Listing),
	}
}

func positionView(p trip.Position) queries.PositionView {
	return queries.PositionView{
		Latitude:   p.Coordinates().Latitude(),
		Longitude:  p.Coordinates().Longitude(),
		ReportedAt: p.ReportedAt(),
	}
}

func incidentView(i trip.Incident) queries.IncidentView {
	return queries.IncidentView{
		ID:          i.ID(),
		Type:        i.Kind(),
		Description: i.Description(),
		Severity:    i.Severity().String(),
		OccurredAt:  i.OccurredAt(),
	}
}

func tripView(t *trip.Trip) queries.GetTripByListingQueryResponse {
	schedule := t.Schedule()
	v := queries.GetTripByListingQueryResponse{
		ID:               t.ID(),
		ListingID:        t.ListingID(),
		CarrierID:        t.CarrierID(),
		RequestIDs:       make([]string, 0, len(t.RequestIDs())),
		Status:           t.Status().String(),
		PlannedDeparture: schedule.PlannedDeparture,
		ActualDeparture:  schedule.ActualDeparture,
		ActualArrival:    schedule.ActualArrival,
		DistanceKm:       t.DistanceKm(),
		Cost:             t.Cost(),
		Rating:           t.Rating(),
		Incidents:        make([]queries.IncidentView, 0, len(t.Incidents())),
	}
	for _, id := range t.RequestIDs() {
		v.RequestIDs = append(v.RequestIDs, id.String())
	}
	for _, i := range t.Incidents() {
		v.Incidents = append(v.Incidents, incidentView(i))
	}
	if p := t.CurrentPosition(); p != nil {
		pv := positionView(*p)
		v.Current = &pv
	}
	return v
}
