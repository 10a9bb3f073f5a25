package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"googlemaps.github.io/maps"
)

type fixedResolver struct {
	address string
	err     error
	calls   int
}

func (r *fixedResolver) ResolveAddress(ctx context.Context, lat, lng float64) (string, error) {
	r.calls++
	return r.address, r.err
}

type ResolverTestSuite struct {
	suite.Suite
	geocodingServer *httptest.Server
	mapClient       *maps.Client
	geocodingBody   string
}

func (s *ResolverTestSuite) SetupTest() {
	s.geocodingBody = `{"status": "OK", "results": [{"formatted_address": "1 Market St, San Francisco, CA 94105, USA"}]}`
	s.geocodingServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, s.geocodingBody)
	}))

	mapClient, err := maps.NewClient(maps.WithAPIKey("AIza-test-key"), maps.WithBaseURL(s.geocodingServer.URL))
	if err != nil {
		s.T().Fatalf("init google map client with error: %s", err.Error())
	}
	s.mapClient = mapClient
}

func (s *ResolverTestSuite) TearDownTest() {
	s.geocodingServer.Close()
}

func (s *ResolverTestSuite) TestGeocodingAddressResolver() {
	r := NewGeocodingAddressResolver(s.mapClient)

	address, err := r.ResolveAddress(context.Background(), 37.7936, -122.3958)
	s.NoError(err)
	s.Equal("1 Market St, San Francisco, CA 94105, USA", address)
}

func (s *ResolverTestSuite) TestGeocodingAddressResolverNoResult() {
	s.geocodingBody = `{"status": "ZERO_RESULTS", "results": []}`
	r := NewGeocodingAddressResolver(s.mapClient)

	_, err := r.ResolveAddress(context.Background(), 0, 0)
	s.Error(err)
}

func (s *ResolverTestSuite) TestMultipleAddressResolverFallback() {
	failing := &fixedResolver{err: ErrNoGeoInfoFound}
	working := &fixedResolver{address: "Taipei City"}
	unused := &fixedResolver{address: "unused"}

	address, err := NewMultipleAddressResolver(failing, working, unused).ResolveAddress(context.Background(), 25.04, 121.56)
	s.NoError(err)
	s.Equal("Taipei City", address)
	s.Equal(1, failing.calls)
	s.Equal(0, unused.calls)
}

func (s *ResolverTestSuite) TestMultipleAddressResolverAllFailed() {
	_, err := NewMultipleAddressResolver(
		&fixedResolver{err: ErrNoGeoInfoFound},
		&fixedResolver{err: fmt.Errorf("quota exceeded")},
	).ResolveAddress(context.Background(), 25.04, 121.56)

	s.EqualError(err, "#0: no geo information found\n#1: quota exceeded")
}

func (s *ResolverTestSuite) TestMultipleAddressResolverEmpty() {
	_, err := NewMultipleAddressResolver().ResolveAddress(context.Background(), 0, 0)
	s.Equal(ErrResolverNotInitialized, err)
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
