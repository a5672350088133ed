package office

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/sema"
)

// Snapshot is a consistent copy of the shared state, for observers.
type Snapshot struct {
	Open   bool
	Queues [journal.MaxService]int
}

// Waiting returns the total number of queued clients.
func (s Snapshot) Waiting() int {
	total := 0
	for _, n := range s.Queues {
		total += n
	}
	return total
}

// State is the shared state of one run. The open flag and the queue lengths
// are guarded by mu; everything else is a signal.
//
// queues[i] is incremented only by a client that saw open under mu, and
// decremented only together with one post on calls[i].
type State struct {
	mu     sync.Mutex
	open   bool
	queues [journal.MaxService]int

	calls   [journal.MaxService]*sema.Signal
	acks    *sema.Signal
	release *sema.Signal

	bus *event.Bus
}

// NewState returns an open office with empty queues. Queue changes are
// published on bus, which may be nil.
func NewState(bus *event.Bus) *State {
	s := &State{
		open:    true,
		acks:    sema.New(),
		release: sema.New(),
		bus:     bus,
	}
	for i := range s.calls {
		s.calls[i] = sema.New()
	}
	return s
}

// TryEnterQueue puts a client in the queue for service if the office is open.
// It returns false, without touching the queue, once the office has closed.
func (s *State) TryEnterQueue(service int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return false
	}
	s.queues[service-1]++
	s.publishLocked()
	return true
}

// ClaimNextService removes one client from the preferred queue, or from the
// lowest-numbered non-empty queue if that one is empty. It returns false when
// every queue is empty. The caller must post the matching Call.
func (s *State) ClaimNextService(preferred int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	service := 0
	if preferred >= 1 && preferred <= journal.MaxService && s.queues[preferred-1] > 0 {
		service = preferred
	} else {
		for i, n := range s.queues {
			if n > 0 {
				service = i + 1
				break
			}
		}
	}
	if service == 0 {
		return 0, false
	}
	s.queues[service-1]--
	s.publishLocked()
	return service, true
}

// IsOpen reports whether the office still accepts clients.
func (s *State) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// HasWaiting reports whether any client is queued.
func (s *State) HasWaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.queues[:], func(n int) bool { return n > 0 })
}

// Close stops accepting clients. Only the supervisor calls it; calling it
// again has no effect.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.open = false
	s.publishLocked()
}

// Call wakes one client waiting for service.
func (s *State) Call(service int) {
	s.calls[service-1].Post()
}

// AwaitCall blocks a queued client until a worker calls it.
func (s *State) AwaitCall(service int) {
	s.calls[service-1].Wait()
}

// Ack tells the supervisor that one worker has seen the office closed and
// found nothing left to serve. Each worker acks exactly once.
func (s *State) Ack() {
	s.acks.Post()
}

// AwaitAcks blocks until n workers have acked.
func (s *State) AwaitAcks(n int) {
	for range n {
		s.acks.Wait()
	}
}

// Release lets n workers that are waiting in AwaitRelease go home.
func (s *State) Release(n int) {
	s.release.PostN(n)
}

// AwaitRelease blocks a worker until the supervisor has recorded the closing.
func (s *State) AwaitRelease() {
	s.release.Wait()
}

// ReleaseStragglers empties every queue, posting one call per removed client,
// and returns how many it released. After Close no client can join a queue,
// so a worker that finds the queues empty here is done for good.
func (s *State) ReleaseStragglers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	released := 0
	for i, n := range s.queues {
		if n == 0 {
			continue
		}
		s.queues[i] = 0
		s.calls[i].PostN(n)
		released += n
	}
	if released > 0 {
		s.publishLocked()
	}
	return released
}

// Snapshot returns a copy of the open flag and the queue lengths.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Open: s.open, Queues: s.queues}
}

// publishLocked must be called with mu held so that observers see queue
// changes in the order they happened.
func (s *State) publishLocked() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.NewQueueChangedEvent(s.queues[:], s.open))
}
