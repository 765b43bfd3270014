package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// positionTimeout bounds the wait for a device fix, independent of the
	// surrounding upload flow.
	positionTimeout = 12 * time.Second
	// positionMaxAge allows a cached fix this old to be reused.
	positionMaxAge = 60 * time.Second
)

var (
	ErrGeolocationUnavailable = errors.New("device does not support geolocation")
	ErrGeolocationDenied      = errors.New("could not get location (permission denied or timeout)")
	ErrNoLocality             = errors.New("could not resolve city/country")
)

// Position is a device fix in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// PositionOptions mirror the knobs a device location capability exposes.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// PositionSource is the device location capability. Implementations should
// honor ctx for cancellation in addition to Options.Timeout.
type PositionSource interface {
	Current(ctx context.Context, opts PositionOptions) (Position, error)
}

// Place is a reverse-geocoded address. Locality fields are ordered by
// preference; the first populated one wins.
type Place struct {
	City         string
	Town         string
	Village      string
	Hamlet       string
	Municipality string
	County       string
	State        string
	Country      string
}

// Locality returns the most specific populated locality-like field.
func (p Place) Locality() string {
	for _, candidate := range []string{p.City, p.Town, p.Village, p.Hamlet, p.Municipality, p.County, p.State} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Geocoder converts coordinates into an address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, pos Position) (Place, error)
}

// Resolver turns the device's position into a human-readable
// "locality, country" string. A nil source means the platform offers no
// location capability at all.
type Resolver struct {
	source   PositionSource
	geocoder Geocoder
}

func NewResolver(source PositionSource, geocoder Geocoder) *Resolver {
	return &Resolver{
		source:   source,
		geocoder: geocoder,
	}
}

// Resolve returns "<locality>, <country>", the bare country when no
// locality resolves, or an error. It never returns any other shape.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.source == nil {
		return "", ErrGeolocationUnavailable
	}

	posCtx, cancel := context.WithTimeout(ctx, positionTimeout)
	defer cancel()

	pos, err := r.source.Current(posCtx, PositionOptions{
		HighAccuracy: true,
		Timeout:      positionTimeout,
		MaximumAge:   positionMaxAge,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeolocationDenied, err)
	}

	place, err := r.geocoder.ReverseGeocode(ctx, pos)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoLocality, err)
	}

	locality := place.Locality()
	country := strings.TrimSpace(place.Country)

	if locality != "" && country != "" {
		return locality + ", " + country, nil
	}
	if country != "" {
		return country, nil
	}
	return "", ErrNoLocality
}
