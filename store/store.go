package store

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/beacon-api/schema"
)

var (
	ErrEmergencyNotFound = fmt.Errorf("emergency not found")
	ErrPersistence       = fmt.Errorf("persistence failure")
)

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// EmergencyQuery describes a live query over emergencies. Results are
// always ordered by creation time, newest first.
type EmergencyQuery struct {
	ID     string
	Status schema.EmergencyStatus
	Limit  int
}

// Match reports whether an emergency passes the filters of the query
func (q EmergencyQuery) Match(e schema.Emergency) bool {
	if q.ID != "" && e.ID != q.ID {
		return false
	}
	if q.Status != "" && e.Status != q.Status {
		return false
	}
	return true
}

// Unsubscribe stops a subscription. Calling it more than once is harmless.
type Unsubscribe func()

// EmergencyStore - persistence and live queries of emergency records
type EmergencyStore interface {
	CreateEmergency(ctx context.Context, category string, lat, lng float64) (string, error)
	AcknowledgeEmergency(ctx context.Context, id string) (bool, error)
	GetEmergency(ctx context.Context, id string) (*schema.Emergency, error)
	Subscribe(q EmergencyQuery, onUpdate func([]schema.Emergency)) (Unsubscribe, error)
}

// ResponderStore - push tokens of responders keyed by a normalized key
type ResponderStore interface {
	UpsertResponder(ctx context.Context, key, token string) error
	ListResponderTokens(ctx context.Context) ([]string, error)
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

type Store interface {
	EmergencyStore
	ResponderStore
	Pinger
	Closer
}

// SubscribeEmergency follows a single emergency. onUpdate receives nil
// when the record does not exist.
func SubscribeEmergency(s EmergencyStore, id string, onUpdate func(*schema.Emergency)) (Unsubscribe, error) {
	return s.Subscribe(EmergencyQuery{ID: id, Limit: 1}, func(result []schema.Emergency) {
		onUpdate(first(result))
	})
}

// SubscribeLatestOpenEmergency follows the most recently created open
// emergency. onUpdate receives nil when no emergency is open.
func SubscribeLatestOpenEmergency(s EmergencyStore, onUpdate func(*schema.Emergency)) (Unsubscribe, error) {
	return s.Subscribe(EmergencyQuery{Status: schema.EmergencyOpen, Limit: 1}, func(result []schema.Emergency) {
		onUpdate(first(result))
	})
}

func first(result []schema.Emergency) *schema.Emergency {
	if len(result) == 0 {
		return nil
	}
	e := result[0]
	return &e
}
