package services

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// CapacityValidator checks that a parcel fits the maxima a listing declares.
//
// Business rules:
//   - A listing must declare both a maximum weight and maximum dimensions before
//     any parcel can be placed on it
//   - Weight and every side are compared with inclusive bounds
//   - Sides are compared componentwise (length to length, width to width,
//     height to height); the parcel is never rotated
//
// Example usage:
//
//	validator := services.NewCapacityValidator()
//	if err := validator.Check(parcel.Weight(), parcel.Dimensions(), l.MaxWeight(), l.MaxDimensions()); err != nil {
//	    // errors.Is(err, errs.ErrCapacityExceeded)
//	}
type CapacityValidator struct{}

func NewCapacityValidator() CapacityValidator {
	return CapacityValidator{}
}

// Check returns an *errs.CapacityExceededError naming the first limit the parcel
// breaks, or nil when it fits. Weight is checked before dimensions.
func (CapacityValidator) Check(
	weight float64,
	dims kernel.Dimensions,
	maxWeight *float64,
	maxDims *kernel.Dimensions,
) error {
	if maxWeight == nil {
		return errs.NewCapacityExceededError("weight", weight, nil)
	}
	if weight > *maxWeight {
		return errs.NewCapacityExceededError("weight", weight, *maxWeight)
	}

	if maxDims == nil {
		return errs.NewCapacityExceededError("dimensions", dims.String(), nil)
	}
	if side, value, maxValue, ok := dims.ExceededSide(*maxDims); ok {
		return errs.NewCapacityExceededError(side, value, maxValue)
	}

	return nil
}
