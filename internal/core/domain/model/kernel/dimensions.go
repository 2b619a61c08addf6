package kernel

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions is a length x width x height triple in centimetres. Every side is positive.
type Dimensions struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

func NewDimensions(length, width, height float64) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		positive("length", length, &d.length),
		positive("width", width, &d.width),
		positive("height", height, &d.height),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) Length() float64 { return d.length }
func (d Dimensions) Width() float64  { return d.width }
func (d Dimensions) Height() float64 { return d.height }

// Volume is expressed in cubic centimetres.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// ExceededSide returns the name of the first side larger than the matching side of limit,
// comparing componentwise with inclusive bounds. ok is false when every side fits.
func (d Dimensions) ExceededSide(limit Dimensions) (side string, value float64, maxValue float64, ok bool) {
	switch {
	case d.length > limit.length:
		return "length", d.length, limit.length, true
	case d.width > limit.width:
		return "width", d.width, limit.width, true
	case d.height > limit.height:
		return "height", d.height, limit.height, true
	default:
		return "", 0, 0, false
	}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g", d.length, d.width, d.height)
}

func positive(name string, v float64, dst *float64) error {
	if !(v > 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%g is not greater than 0", v))
	}
	*dst = v
	return nil
}
