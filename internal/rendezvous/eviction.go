package rendezvous

import "time"

// runEvictionPass implements the soft-capacity periodic pass (§4.2 trigger
// 2): evict every expired session, then evict oldest-by-last_modified_at
// while still over soft capacity. If the store is still above soft capacity
// afterward, reschedule; otherwise clear the "scheduled" flag so the next
// create is free to schedule a fresh pass. Guarded by the store's own
// mutex, so it never races a concurrent create/get/update/delete.
func (s *MemoryStore) runEvictionPass() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	for el := s.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry)
		if !now.Before(e.session.ExpiresAt) {
			s.removeLocked(el, e.session.ID)
			sessionsEvicted.WithLabelValues("ttl_expired").Inc()
		}
		el = next
	}

	for s.order.Len() > s.softCapacity {
		s.evictFrontLocked("soft_capacity")
	}

	if s.order.Len() > s.softCapacity {
		s.clock.AfterFunc(time.Second, s.safeRunEvictionPass)
		return
	}
	s.scheduled = false
}
