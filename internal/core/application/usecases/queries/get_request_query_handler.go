package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetRequestQueryHandler(db *gorm.DB) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for an unknown request and
// *errs.ForbiddenError when the actor may not see it. A request whose listing is
// gone is reported as not found.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (GetRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRequestQueryResponse{}, err
	}

	var (
		resp                       GetRequestQueryResponse
		id, requesterID, listingID uuid.UUID
		ownerID                    uuid.UUID
		status                     int
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id, r.requester_id, r.listing_id, l.owner_id,
			r.parcel_description, r.parcel_length, r.parcel_width, r.parcel_height, r.parcel_weight,
			r.parcel_category, r.parcel_declared_value, r.parcel_insured,
			r.pickup_name, r.pickup_latitude, r.pickup_longitude,
			r.delivery_name, r.delivery_latitude, r.delivery_longitude,
			r.pickup_contact_name, r.pickup_contact_phone,
			r.delivery_contact_name, r.delivery_contact_phone,
			r.pickup_window_from, r.pickup_window_to,
			r.delivery_window_from, r.delivery_window_to,
			r.status, r.responded_at, r.comment, r.refusal_reason,
			r.created_at, r.updated_at
		FROM transport_requests r
		JOIN listings l ON l.id = r.listing_id
		WHERE r.id = ?
	`, query.RequestID().Bytes()).Row().Scan(
		&id, &requesterID, &listingID, &ownerID,
		&resp.Parcel.Description, &resp.Parcel.Dimensions.Length, &resp.Parcel.Dimensions.Width,
		&resp.Parcel.Dimensions.Height, &resp.Parcel.Weight,
		&resp.Parcel.Category, &resp.Parcel.DeclaredValue, &resp.Parcel.Insured,
		&resp.Pickup.Name, &resp.Pickup.Latitude, &resp.Pickup.Longitude,
		&resp.Delivery.Name, &resp.Delivery.Latitude, &resp.Delivery.Longitude,
		&resp.PickupContact.Name, &resp.PickupContact.Phone,
		&resp.DeliveryContact.Name, &resp.DeliveryContact.Phone,
		&resp.PickupWindow.From, &resp.PickupWindow.To,
		&resp.DeliveryWindow.From, &resp.DeliveryWindow.To,
		&status, &resp.RespondedAt, &resp.Comment, &resp.RefusalReason,
		&resp.CreatedAt, &resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRequestQueryResponse{}, errs.NewObjectNotFoundError("request", query.RequestID())
	}
	if err != nil {
		return GetRequestQueryResponse{}, errs.NewStorageError("read request", err)
	}

	if resp.ID, err = toKernelUUID(id); err != nil {
		return GetRequestQueryResponse{}, err
	}
	if resp.RequesterID, err = toKernelUUID(requesterID); err != nil {
		return GetRequestQueryResponse{}, err
	}
	if resp.ListingID, err = toKernelUUID(listingID); err != nil {
		return GetRequestQueryResponse{}, err
	}
	if resp.ListingOwnerID, err = toKernelUUID(ownerID); err != nil {
		return GetRequestQueryResponse{}, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() && !actor.Owns(resp.RequesterID) && !actor.Owns(resp.ListingOwnerID) {
		return GetRequestQueryResponse{}, errs.NewForbiddenError("request", resp.ID, actor.ID())
	}

	resp.Status = request.Status(status).String()
	return resp, nil
}
