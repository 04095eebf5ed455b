package engine

import (
	"sync"

	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
)

// sharedState is the single guarded structure the worker pool serializes
// every order step through: the work queue, a dedupe set (an id may be
// queued at most once concurrently), the repository handles, and the
// run/stop flags. All multi-step read-modify-write sequences across user
// and order rows happen while holding mu.
type sharedState struct {
	mu      sync.Mutex
	queue   []uuid.UUID
	queued  map[uuid.UUID]bool
	running bool

	orderRepo interfaces.OrderRepository
	userRepo  interfaces.UserRepository

	notify chan struct{}
	stopCh chan struct{}
}

func newSharedState(orderRepo interfaces.OrderRepository, userRepo interfaces.UserRepository) *sharedState {
	return &sharedState{
		queued:    make(map[uuid.UUID]bool),
		running:   true,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		notify:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// enqueue appends id to the queue tail unless it is already present, and
// wakes one idle worker. Safe to call from any goroutine.
func (s *sharedState) enqueue(id uuid.UUID) {
	s.mu.Lock()
	if !s.queued[id] {
		s.queue = append(s.queue, id)
		s.queued[id] = true
	}
	s.mu.Unlock()
	s.wake()
}

func (s *sharedState) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pop removes and returns the queue head, or (uuid.Nil, false) if empty.
func (s *sharedState) pop() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return uuid.Nil, false
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	delete(s.queued, id)
	return id, true
}

func (s *sharedState) queueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *sharedState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *sharedState) stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	close(s.stopCh)
}
