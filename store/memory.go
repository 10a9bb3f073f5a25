package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/beacon-api/schema"
)

var errStoreClosed = fmt.Errorf("store closed")

type memoryEmergency struct {
	emergency schema.Emergency
	seq       uint64
}

type memorySubscription struct {
	query EmergencyQuery
	feed  *feed
}

// MemoryStore keeps everything in process. Every write publishes the
// refreshed query results while the write lock is held, so subscribers
// observe writes in order.
type MemoryStore struct {
	sync.RWMutex

	clock func() time.Time

	seq         uint64
	emergencies map[string]*memoryEmergency
	responders  map[string]schema.Responder

	nextSubscriptionID uint64
	subscriptions      map[uint64]*memorySubscription

	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clock:         func() time.Time { return time.Now().UTC() },
		emergencies:   make(map[string]*memoryEmergency),
		responders:    make(map[string]schema.Responder),
		subscriptions: make(map[uint64]*memorySubscription),
	}
}

func (s *MemoryStore) CreateEmergency(ctx context.Context, category string, lat, lng float64) (string, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return "", persistenceError(errStoreClosed)
	}

	s.seq++
	id := uuid.New().String()
	s.emergencies[id] = &memoryEmergency{
		emergency: schema.Emergency{
			ID:        id,
			Category:  category,
			Latitude:  lat,
			Longitude: lng,
			CreatedAt: s.clock(),
			Status:    schema.EmergencyOpen,
		},
		seq: s.seq,
	}
	s.publish()

	return id, nil
}

func (s *MemoryStore) AcknowledgeEmergency(ctx context.Context, id string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return false, persistenceError(errStoreClosed)
	}

	record, ok := s.emergencies[id]
	if !ok {
		return false, ErrEmergencyNotFound
	}

	if record.emergency.Status == schema.EmergencyAcknowledged {
		return false, nil
	}

	record.emergency.Status = schema.EmergencyAcknowledged
	s.publish()

	return true, nil
}

func (s *MemoryStore) GetEmergency(ctx context.Context, id string) (*schema.Emergency, error) {
	s.RLock()
	defer s.RUnlock()

	if s.closed {
		return nil, persistenceError(errStoreClosed)
	}

	record, ok := s.emergencies[id]
	if !ok {
		return nil, ErrEmergencyNotFound
	}

	e := record.emergency
	return &e, nil
}

func (s *MemoryStore) Subscribe(q EmergencyQuery, onUpdate func([]schema.Emergency)) (Unsubscribe, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return nil, persistenceError(errStoreClosed)
	}

	s.nextSubscriptionID++
	id := s.nextSubscriptionID
	sub := &memorySubscription{
		query: q,
		feed:  newFeed(onUpdate),
	}
	s.subscriptions[id] = sub
	sub.feed.offer(s.query(q))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.Lock()
			delete(s.subscriptions, id)
			s.Unlock()
			sub.feed.close()
		})
	}, nil
}

func (s *MemoryStore) UpsertResponder(ctx context.Context, key, token string) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return persistenceError(errStoreClosed)
	}

	s.responders[key] = schema.Responder{
		Key:       key,
		Token:     token,
		UpdatedAt: s.clock(),
	}
	return nil
}

func (s *MemoryStore) ListResponderTokens(ctx context.Context) ([]string, error) {
	s.RLock()
	defer s.RUnlock()

	if s.closed {
		return nil, persistenceError(errStoreClosed)
	}

	seen := make(map[string]struct{}, len(s.responders))
	tokens := make([]string, 0, len(s.responders))
	for _, r := range s.responders {
		if r.Token == "" {
			continue
		}
		if _, ok := seen[r.Token]; ok {
			continue
		}
		seen[r.Token] = struct{}{}
		tokens = append(tokens, r.Token)
	}
	sort.Strings(tokens)

	return tokens, nil
}

func (s *MemoryStore) Ping() error {
	s.RLock()
	defer s.RUnlock()

	if s.closed {
		return errStoreClosed
	}
	return nil
}

// Close stops every subscription
func (s *MemoryStore) Close() {
	s.Lock()
	defer s.Unlock()

	s.closed = true
	for id, sub := range s.subscriptions {
		sub.feed.close()
		delete(s.subscriptions, id)
	}
}

// publish must be called with the write lock held
func (s *MemoryStore) publish() {
	for _, sub := range s.subscriptions {
		sub.feed.offer(s.query(sub.query))
	}
}

func (s *MemoryStore) query(q EmergencyQuery) []schema.Emergency {
	records := make([]*memoryEmergency, 0)
	for _, r := range s.emergencies {
		if q.Match(r.emergency) {
			records = append(records, r)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.emergency.CreatedAt.Equal(b.emergency.CreatedAt) {
			return a.emergency.CreatedAt.After(b.emergency.CreatedAt)
		}
		return a.seq > b.seq
	})

	if q.Limit > 0 && len(records) > q.Limit {
		records = records[:q.Limit]
	}

	result := make([]schema.Emergency, len(records))
	for i, r := range records {
		result[i] = r.emergency
	}
	return result
}
