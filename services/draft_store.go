package services

import (
	"errors"
	"sync"
	"time"

	"course-connect/models"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var ErrDraftNotFound = errors.New("review draft not found")

// DraftStore keeps open review wizards in memory. Drafts are dropped when
// closed or after ttl without an update; nothing is ever written elsewhere.
type DraftStore struct {
	mu    sync.Mutex
	items *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DraftStore{
		items: cache.New(ttl, ttl/2),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Open starts a wizard for course and returns its draft id.
func (s *DraftStore) Open(course models.Course) (string, ReviewWizard) {
	id := uuid.NewString()
	w := OpenReviewWizard(course, s.now())
	s.items.Set(id, w.Clone(), cache.DefaultExpiration)
	return id, w
}

// Get returns a copy of the wizard stored under id.
func (s *DraftStore) Get(id string) (ReviewWizard, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return ReviewWizard{}, ErrDraftNotFound
	}
	return v.(ReviewWizard).Clone(), nil
}

// Update runs fn on a copy of the wizard and stores the result only if fn
// succeeds, which also restarts the draft's idle timer. A failed fn leaves
// both the state and the deadline alone. The returned wizard is the stored
// state after the call.
func (s *DraftStore) Update(id string, fn func(w *ReviewWizard) error) (ReviewWizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.Get(id)
	if !ok {
		return ReviewWizard{}, ErrDraftNotFound
	}
	current := v.(ReviewWizard)

	next := current.Clone()
	if err := fn(&next); err != nil {
		return current.Clone(), err
	}
	if !next.IsOpen() {
		s.items.Delete(id)
		return next, nil
	}
	s.items.Set(id, next.Clone(), cache.DefaultExpiration)
	return next, nil
}

// Close discards the draft stored under id.
func (s *DraftStore) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items.Get(id); !ok {
		return ErrDraftNotFound
	}
	s.items.Delete(id)
	return nil
}

// Count returns the number of open, unexpired drafts.
func (s *DraftStore) Count() int {
	s.items.DeleteExpired()
	return s.items.ItemCount()
}
