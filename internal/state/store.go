package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/bookshelf/internal/catalog"
)

// Snapshot is a point-in-time copy of the search lifecycle.
type Snapshot struct {
	State      Lifecycle
	Generation uint64
	UpdatedAt  time.Time
}

// Store coordinates concurrent transitions of the lifecycle. The zero value
// is ready to use and starts Idle.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     map[int]chan Snapshot
	nextSub  int
}

// Begin moves the store to Loading for req and returns the generation that
// must be passed to Resolve.
func (s *Store) Begin(req catalog.Request) uint64 {
	s.mu.Lock()
	s.snapshot.Generation++
	s.snapshot.State = Loading{Request: req}
	s.snapshot.UpdatedAt = time.Now()
	gen := s.snapshot.Generation
	s.publishLocked()
	s.mu.Unlock()
	return gen
}

// Resolve completes generation gen with either resp or err and returns the
// lifecycle it installed. A resolution for a generation that is no longer
// current is dropped and Resolve returns nil, false.
func (s *Store) Resolve(gen uint64, resp *catalog.Response, err error) (Lifecycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return nil, false
	}
	loading, ok := s.snapshot.State.(Loading)
	if !ok {
		return nil, false
	}

	switch {
	case err != nil:
		s.snapshot.State = Failure{Request: loading.Request, Kind: catalog.KindOf(err), Err: err}
	case resp == nil:
		s.snapshot.State = Failure{Request: loading.Request, Kind: catalog.KindDecode, Err: fmt.Errorf("empty response")}
	default:
		s.snapshot.State = Success{Request: loading.Request, Response: resp.Clone()}
	}
	s.snapshot.UpdatedAt = time.Now()
	s.publishLocked()
	return s.copyLocked().State, true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Subscribe registers for snapshot updates. The channel holds at most one
// pending snapshot; a newer one replaces an unread older one. Call the
// returned func to unsubscribe.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) publishLocked() {
	for _, ch := range s.subs {
		snap := s.copyLocked()
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	if snap.State == nil {
		snap.State = Idle{}
	}
	if success, ok := snap.State.(Success); ok {
		success.Response = success.Response.Clone()
		snap.State = success
	}
	return snap
}
