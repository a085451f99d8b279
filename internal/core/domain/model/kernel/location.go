package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is the pickup/delivery point of a client: a free-text address plus
// WGS84 coordinates. It is immutable; the zero value fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation("14 Oxford St, Osu", 5.5560, -0.1826)
type Location struct { //nolint:recvcheck //using for validation
	address   string
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates and builds a Location.
// Coordinates must lie within [-90, 90] latitude and [-180, 180] longitude.
func NewLocation(address string, latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setAddress(address),
		loc.setLatitude(latitude),
		loc.setLongitude(longitude),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Address() string {
	return l.address
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.5f,%.5f)", l.address, l.latitude, l.longitude)
}

func (l *Location) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	l.address = address
	return nil
}

func (l *Location) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	l.latitude = lat
	return nil
}

func (l *Location) setLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}
	l.longitude = lng
	return nil
}
