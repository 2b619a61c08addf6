package request

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrParcelIsNotConstructed = errs.NewValueIsRequiredError("parcel must be created via NewParcel constructor")

// Parcel describes the goods to move. Weight is in kilograms.
type Parcel struct {
	description   string
	dimensions    kernel.Dimensions
	weight        float64
	category      string
	declaredValue float64
	insured       bool
	guard         guard.ConstructorGuard
}

func NewParcel(
	description string,
	dimensions kernel.Dimensions,
	weight float64,
	category string,
	declaredValue float64,
	insured bool,
) (Parcel, error) {
	p := Parcel{
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		insured:     insured,
		guard:       guard.NewConstructorGuard(),
	}

	var errList []error
	if p.description == "" {
		errList = append(errList, errs.NewValueIsRequiredError("parcel description"))
	}
	if err := dimensions.Validate(); err != nil {
		errList = append(errList, err)
	}
	if !(weight > 0) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("parcel weight",
			fmt.Errorf("%g is not greater than 0", weight)))
	}
	if declaredValue < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%g is negative", declaredValue)))
	}
	if err := errors.Join(errList...); err != nil {
		return Parcel{}, err
	}

	p.dimensions = dimensions
	p.weight = weight
	p.declaredValue = declaredValue
	return p, nil
}

func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p Parcel) Description() string           { return p.description }
func (p Parcel) Dimensions() kernel.Dimensions { return p.dimensions }
func (p Parcel) Weight() float64               { return p.weight }
func (p Parcel) Category() string              { return p.category }
func (p Parcel) DeclaredValue() float64        { return p.declaredValue }
func (p Parcel) Insured() bool                 { return p.insured }
