package kernel

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrCoordinatesAreNotConstructed is returned when a zero-value Coordinates is used.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates is an immutable WGS84 point. Latitude is bounded to [-90, 90] and
// longitude to [-180, 180], both inclusive.
//
// Example:
//
//	point, err := kernel.NewCoordinates(33.5731, -7.5898)
//	if err != nil {
//	    // Handle out of range input
//	}
//	fmt.Println(point) // Coordinates(33.573100,-7.589800)
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewCoordinates validates both axes and reports every violation at once.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	c := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLatitude(lat), c.setLongitude(lon)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate reports whether the value was built through NewCoordinates.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) Latitude() float64 {
	return c.lat
}

func (c Coordinates) Longitude() float64 {
	return c.lon
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%f,%f)", c.lat, c.lon)
}

// IsEqual compares two validated points.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c == other, nil
}

// DistanceKm returns the great-circle (haversine) distance in kilometres.
//
// Example:
//
//	casablanca, _ := kernel.NewCoordinates(33.5731, -7.5898)
//	rabat, _ := kernel.NewCoordinates(34.0209, -6.8416)
//	km, _ := casablanca.DistanceKm(rabat) // ~85
func (c Coordinates) DistanceKm(other Coordinates) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(c.lat)
	lat2 := toRadians(other.lat)
	dLat := lat2 - lat1
	dLon := toRadians(other.lon - c.lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (c *Coordinates) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	c.lat = lat
	return nil
}

func (c *Coordinates) setLongitude(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	c.lon = lon
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
