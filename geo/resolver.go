package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var (
	ErrNoGeoInfoFound         = fmt.Errorf("no geo information found")
	ErrResolverNotInitialized = fmt.Errorf("address resolver is not initialized")
)

const defaultTimeout = 5 * time.Second

// AddressResolver - interface for turning a position into a readable address
type AddressResolver interface {
	ResolveAddress(ctx context.Context, lat, lng float64) (string, error)
}

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

type GeocodingAddressResolver struct {
	client *maps.Client
}

func NewGeocodingAddressResolver(client *maps.Client) *GeocodingAddressResolver {
	return &GeocodingAddressResolver{
		client: client,
	}
}

// NewGeocodingAddressResolverFromKey creates a resolver backed by the google
// geocoding api
func NewGeocodingAddressResolverFromKey(apiKey string) (*GeocodingAddressResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return NewGeocodingAddressResolver(client), nil
}

func (g *GeocodingAddressResolver) ResolveAddress(ctx context.Context, lat, lng float64) (string, error) {
	if g.client == nil {
		return "", ErrResolverNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: lat,
			Lng: lng,
		},
		Language: "en",
	})
	if nil != err {
		return "", err
	}

	if len(geos) == 0 || geos[0].FormattedAddress == "" {
		return "", ErrNoGeoInfoFound
	}

	return geos[0].FormattedAddress, nil
}

type MultipleAddressResolver struct {
	resolvers []AddressResolver
}

func NewMultipleAddressResolver(resolvers ...AddressResolver) *MultipleAddressResolver {
	return &MultipleAddressResolver{
		resolvers: resolvers,
	}
}

// ResolveAddress returns the first address any resolver finds
func (r *MultipleAddressResolver) ResolveAddress(ctx context.Context, lat, lng float64) (string, error) {
	if len(r.resolvers) == 0 {
		return "", ErrResolverNotInitialized
	}

	var errors []error
	for _, resolver := range r.resolvers {
		address, err := resolver.ResolveAddress(ctx, lat, lng)
		if err != nil {
			errors = append(errors, err)
		} else {
			return address, nil
		}
	}

	return "", NewMultipleResolverErrors(errors)
}
