package rendezvous

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mbd888/rendezvous/internal/idgen"
)

// entry is the value held by each container/list element, ordered by
// LastModifiedAt ascending (head = oldest, tail = most recently touched).
// Moved to the tail on every create/update per §4.1's indexing note.
type entry struct {
	session *Session
}

// MemoryStore is the process-local rendezvous session store. It maintains
// two indexes over the same data: byID for O(1) lookup, and order (an
// intrusive doubly-linked list, per §9) for eviction and TTL sweeps by
// last_modified_at. A single mutex guards both, since every mutating
// operation touches the list as well as the map and operations are
// required to be short and linearizable (§5).
type MemoryStore struct {
	mu     sync.Mutex
	clock  Clock
	etags  *ETagGenerator
	logger *slog.Logger

	ttl              time.Duration
	softCapacity     int
	hardCapacity     int
	maxContentLength int64

	byID      map[string]*list.Element
	order     *list.List
	scheduled bool
}

// NewMemoryStore constructs a MemoryStore with the given tuning parameters.
// clock and logger must be non-nil; pass NewRealClock() in production and a
// *FakeClock in tests.
func NewMemoryStore(clock Clock, ttl time.Duration, softCapacity, hardCapacity int, maxContentLength int64, logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		clock:            clock,
		etags:            NewETagGenerator(),
		logger:           logger,
		ttl:              ttl,
		softCapacity:     softCapacity,
		hardCapacity:     hardCapacity,
		maxContentLength: maxContentLength,
		byID:             make(map[string]*list.Element),
		order:            list.New(),
	}
}

// Len reports the number of live sessions currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *MemoryStore) Create(_ context.Context, contentType string, payload []byte) (*Session, error) {
	if int64(len(payload)) > s.maxContentLength {
		return nil, ErrPayloadTooLarge
	}
	if contentType == "" {
		contentType = DefaultContentType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictHardLocked()

	now := s.clock.Now()
	id := s.freshIDLocked()
	sess := &Session{
		ID:             id,
		ContentType:    contentType,
		Payload:        append([]byte(nil), payload...),
		CreatedAt:      now,
		LastModifiedAt: now,
		ExpiresAt:      now.Add(s.ttl),
	}
	sess.ETag = s.etags.Next(id)

	el := s.order.PushBack(&entry{session: sess})
	s.byID[id] = el

	sessionsCreated.Inc()
	storeSize.Set(float64(s.order.Len()))

	if s.order.Len() > s.softCapacity && !s.scheduled {
		s.scheduled = true
		s.clock.AfterFunc(time.Second, s.safeRunEvictionPass)
	}

	return sess.clone(), nil
}

func (s *MemoryStore) Get(_ context.Context, id, ifNoneMatch string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := el.Value.(*entry)

	if !s.clock.Now().Before(e.session.ExpiresAt) {
		s.removeLocked(el, e.session.ID)
		return nil, ErrNotFound
	}

	if ifNoneMatch != "" && ifNoneMatch == e.session.ETag {
		return e.session.clone(), ErrNotModified
	}
	return e.session.clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, id, ifMatch, contentType string, payload []byte) (*Session, error) {
	if ifMatch == "" {
		return nil, ErrPreconditionRequired
	}
	if int64(len(payload)) > s.maxContentLength {
		return nil, ErrPayloadTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := el.Value.(*entry)

	now := s.clock.Now()
	if !now.Before(e.session.ExpiresAt) {
		s.removeLocked(el, e.session.ID)
		return nil, ErrNotFound
	}

	if ifMatch != e.session.ETag {
		etagMismatches.Inc()
		return nil, ErrConcurrentWrite
	}

	if contentType == "" {
		contentType = DefaultContentType
	}
	e.session.ContentType = contentType
	e.session.Payload = append([]byte(nil), payload...)
	e.session.LastModifiedAt = now
	e.session.ExpiresAt = now.Add(s.ttl)
	e.session.ETag = s.etags.Next(id)

	s.order.MoveToBack(el)

	return e.session.clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	expired := !s.clock.Now().Before(el.Value.(*entry).session.ExpiresAt)
	s.removeLocked(el, id)
	if expired {
		return ErrNotFound
	}
	return nil
}

// freshIDLocked allocates an unguessable id, retrying on the astronomically
// unlikely collision (§4.1). The first attempt uses a short hex id; a
// collision falls back to a full UUID, whose larger id space makes a second
// collision even less likely than the first.
func (s *MemoryStore) freshIDLocked() string {
	if id := idgen.Hex(8); !s.idExistsLocked(id) {
		return id
	}
	for {
		id := idgen.New()
		if !s.idExistsLocked(id) {
			return id
		}
	}
}

func (s *MemoryStore) idExistsLocked(id string) bool {
	_, exists := s.byID[id]
	return exists
}

// evictHardLocked enforces the hard capacity synchronously: on create, while
// the store is at or above hardCapacity, evict the oldest-by-last_modified_at
// session before inserting the new one (§4.2 trigger 1).
func (s *MemoryStore) evictHardLocked() {
	for s.order.Len() >= s.hardCapacity {
		s.evictFrontLocked("hard_capacity")
	}
}

func (s *MemoryStore) evictFrontLocked(reason string) {
	front := s.order.Front()
	if front == nil {
		return
	}
	e := front.Value.(*entry)
	s.removeLocked(front, e.session.ID)
	sessionsEvicted.WithLabelValues(reason).Inc()
}

// removeLocked drops id from both indexes and forgets its etag counter.
// Caller must hold s.mu.
func (s *MemoryStore) removeLocked(el *list.Element, id string) {
	s.order.Remove(el)
	delete(s.byID, id)
	s.etags.Forget(id)
	storeSize.Set(float64(s.order.Len()))
}

// safeRunEvictionPass recovers from a panic inside the scheduled pass so a
// single bad sweep cannot take down the process, mirroring the teacher's
// sweep-loop panic guard.
func (s *MemoryStore) safeRunEvictionPass() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in rendezvous eviction pass", "panic", fmt.Sprint(r))
		}
	}()
	s.runEvictionPass()
}

// Compile-time assertion.
var _ Store = (*MemoryStore)(nil)
