package store

import (
	"sync"

	"github.com/bitmark-inc/beacon-api/schema"
)

// feed serializes deliveries of a subscription on its own goroutine.
// Only the newest undelivered result is kept, and results equal to the
// previous one are dropped.
type feed struct {
	sync.Mutex

	onUpdate func([]schema.Emergency)

	pending    []schema.Emergency
	hasPending bool
	last       []schema.Emergency
	hasLast    bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newFeed(onUpdate func([]schema.Emergency)) *feed {
	f := &feed{
		onUpdate: onUpdate,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go f.loop()
	return f
}

func (f *feed) offer(result []schema.Emergency) {
	f.Lock()
	latest, known := f.last, f.hasLast
	if f.hasPending {
		latest, known = f.pending, true
	}
	if known && sameResult(latest, result) {
		f.Unlock()
		return
	}
	f.pending = result
	f.hasPending = true
	f.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *feed) loop() {
	for {
		select {
		case <-f.done:
			return
		case <-f.wake:
		}

		f.Lock()
		if !f.hasPending {
			f.Unlock()
			continue
		}
		result := f.pending
		f.pending, f.hasPending = nil, false
		f.last, f.hasLast = result, true
		f.Unlock()

		select {
		case <-f.done:
			return
		default:
		}
		f.onUpdate(result)
	}
}

func (f *feed) close() {
	f.closeOnce.Do(func() {
		close(f.done)
	})
}

func sameResult(a, b []schema.Emergency) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameEmergency(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameEmergency(a, b schema.Emergency) bool {
	return a.ID == b.ID &&
		a.Category == b.Category &&
		a.Latitude == b.Latitude &&
		a.Longitude == b.Longitude &&
		a.Status == b.Status &&
		a.CreatedAt.Equal(b.CreatedAt)
}
