package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/beacon-api/geo"
	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/store"
)

const controllerLogPrefix = "lifecycle"

var (
	ErrPermissionDenied = fmt.Errorf("location permission denied")
	ErrInvalidCategory  = fmt.Errorf("invalid emergency category")
	ErrInvalidLocation  = fmt.Errorf("invalid location")
)

// LocationProvider yields the current position of a victim
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (lat, lng float64, err error)
}

// Broadcaster notifies responders of a new emergency
type Broadcaster interface {
	BroadcastEmergency(ctx context.Context, e schema.Emergency)
}

// ResponderRegistry records push tokens of responders
type ResponderRegistry interface {
	Register(ctx context.Context, token string) error
}

// AckResult is the outcome of an acknowledgment
type AckResult struct {
	Emergency *schema.Emergency
	// Claimed is true only for the acknowledgment which closed the emergency
	Claimed       bool
	DirectionsURL string
}

type Controller struct {
	store       store.EmergencyStore
	registry    ResponderRegistry
	broadcaster Broadcaster

	created       tally.Counter
	acknowledged  tally.Counter
	ackRepeated   tally.Counter
	dispatchGroup sync.WaitGroup
}

func NewController(s store.EmergencyStore, registry ResponderRegistry, broadcaster Broadcaster, scope tally.Scope) *Controller {
	if scope == nil {
		scope = tally.NoopScope
	}
	scope = scope.SubScope("emergency")

	return &Controller{
		store:        s,
		registry:     registry,
		broadcaster:  broadcaster,
		created:      scope.Counter("created"),
		acknowledged: scope.Counter("acknowledged"),
		ackRepeated:  scope.Counter("ack_repeated"),
	}
}

// Signal creates an open emergency and notifies responders in the
// background. Once the record is stored the signal has succeeded, whatever
// happens to the notifications.
func (c *Controller) Signal(ctx context.Context, category string, lat, lng float64) (string, error) {
	if !schema.ValidCategory(category) {
		return "", ErrInvalidCategory
	}

	if !geo.ValidCoordinates(lat, lng) {
		return "", ErrInvalidLocation
	}

	id, err := c.store.CreateEmergency(ctx, category, lat, lng)
	if err != nil {
		log.WithField("prefix", controllerLogPrefix).WithError(err).Error("fail to create emergency")
		return "", err
	}
	c.created.Inc(1)

	e := schema.Emergency{
		ID:        id,
		Category:  category,
		Latitude:  lat,
		Longitude: lng,
		Status:    schema.EmergencyOpen,
	}

	c.dispatchGroup.Add(1)
	go func() {
		defer c.dispatchGroup.Done()
		c.broadcaster.BroadcastEmergency(context.WithoutCancel(ctx), e)
	}()

	log.WithField("prefix", controllerLogPrefix).
		WithField("emergency_id", id).
		WithField("category", category).
		Info("emergency signaled")

	return id, nil
}

// SignalFrom reads the position from the provider before signaling. Nothing
// is stored when the position is unavailable.
func (c *Controller) SignalFrom(ctx context.Context, category string, provider LocationProvider) (string, error) {
	if !schema.ValidCategory(category) {
		return "", ErrInvalidCategory
	}

	lat, lng, err := provider.CurrentPosition(ctx)
	if err != nil {
		return "", err
	}

	return c.Signal(ctx, category, lat, lng)
}

// AckCurrent acknowledges an emergency on behalf of a responder.
// Acknowledging an already acknowledged emergency succeeds without change.
func (c *Controller) AckCurrent(ctx context.Context, id string) (AckResult, error) {
	logger := log.WithField("prefix", controllerLogPrefix).WithField("emergency_id", id)

	claimed, err := c.store.AcknowledgeEmergency(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrEmergencyNotFound) {
			logger.Warn("acknowledge a missing emergency")
		} else {
			logger.WithError(err).Error("fail to acknowledge emergency")
		}
		return AckResult{}, err
	}

	if claimed {
		c.acknowledged.Inc(1)
	} else {
		c.ackRepeated.Inc(1)
	}

	e, err := c.store.GetEmergency(ctx, id)
	if err != nil {
		logger.WithError(err).Error("fail to read acknowledged emergency")
		return AckResult{}, err
	}

	logger.WithField("claimed", claimed).Info("emergency acknowledged")

	return AckResult{
		Emergency:     e,
		Claimed:       claimed,
		DirectionsURL: geo.DirectionsURL(e.Latitude, e.Longitude),
	}, nil
}

func (c *Controller) Emergency(ctx context.Context, id string) (*schema.Emergency, error) {
	return c.store.GetEmergency(ctx, id)
}

// SubscribeOne follows one emergency, typically by its victim
func (c *Controller) SubscribeOne(id string, onUpdate func(*schema.Emergency)) (store.Unsubscribe, error) {
	return store.SubscribeEmergency(c.store, id, onUpdate)
}

// SubscribeLatestOpen follows the newest open emergency, typically by a
// responder
func (c *Controller) SubscribeLatestOpen(onUpdate func(*schema.Emergency)) (store.Unsubscribe, error) {
	return store.SubscribeLatestOpenEmergency(c.store, onUpdate)
}

func (c *Controller) RegisterResponder(ctx context.Context, token string) error {
	return c.registry.Register(ctx, token)
}

// Wait blocks until every background dispatch has finished
func (c *Controller) Wait() {
	c.dispatchGroup.Wait()
}

// Acknowledged reports whether a responder has acknowledged the emergency
func Acknowledged(e *schema.Emergency) bool {
	return e.IsAcknowledged()
}
