package kernel

import (
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError("place must be created via NewPlace constructor")

// Place is a named location (a city, a depot, an address) with optional coordinates.
type Place struct {
	name   string
	coords *Coordinates
	guard  guard.ConstructorGuard
}

// NewPlace trims the name and rejects an empty one. coords may be nil.
func NewPlace(name string, coords *Coordinates) (Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Place{}, errs.NewValueIsRequiredError("place name")
	}

	if coords != nil {
		if err := coords.Validate(); err != nil {
			return Place{}, err
		}
		c := *coords
		coords = &c
	}

	return Place{
		name:   name,
		coords: coords,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

func (p Place) Name() string {
	return p.name
}

// Coordinates returns a copy of the coordinates, or nil when the place has none.
func (p Place) Coordinates() *Coordinates {
	if p.coords == nil {
		return nil
	}
	c := *p.coords
	return &c
}

func (p Place) String() string {
	return p.name
}
