package office

import (
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/logging"
)

// run carries what every actor of one simulation shares.
type run struct {
	state   *State
	journal *journal.Journal
	timing  Timing
	clock   clock.Clock
	logger  *logging.Logger

	served   atomic.Int64
	rejected atomic.Int64

	errMu sync.Mutex
	err   error
}

// record writes e to the journal. A failed write is remembered and the actor
// carries on, so that the protocol still terminates.
func (r *run) record(e journal.Entry) {
	if _, err := r.journal.Record(e); err != nil {
		r.fail(err)
	}
}

func (r *run) fail(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.err == nil {
		r.err = err
		r.logger.Error("journal write failed", "error", err)
	}
}

func (r *run) firstError() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return r.err
}

// client runs one client from arrival to going home. A client that finds the
// office closed leaves without blocking.
func (r *run) client(id int) {
	log := r.logger.WithActor(string(journal.TagClient), id)
	r.record(journal.Client(id, journal.ClientStarted, 0))

	r.clock.Sleep(r.timing.EntryDelay())

	service := r.timing.PickService()
	if !r.state.TryEnterQueue(service) {
		log.Debug("office closed", "service", service)
		r.rejected.Add(1)
		r.record(journal.Client(id, journal.ClientGoingHome, 0))
		return
	}
	r.record(journal.Client(id, journal.ClientEntering, service))

	r.state.AwaitCall(service)
	r.served.Add(1)
	r.record(journal.Client(id, journal.ClientCalled, 0))

	r.clock.Sleep(r.timing.ServiceDuration())
	r.record(journal.Client(id, journal.ClientGoingHome, 0))
}

// worker serves clients until the office is closed and every queue is empty,
// then acknowledges the closing and waits to be released.
func (r *run) worker(id int) {
	log := r.logger.WithActor(string(journal.TagWorker), id)
	r.record(journal.Worker(id, journal.WorkerStarted, 0))

	for {
		if service, ok := r.state.ClaimNextService(r.timing.PickService()); ok {
			r.state.Call(service)
			r.record(journal.Worker(id, journal.WorkerServing, service))
			r.clock.Sleep(r.timing.ServiceDuration())
			r.record(journal.Worker(id, journal.WorkerServiceFinished, 0))
			continue
		}

		if r.state.IsOpen() {
			r.record(journal.Worker(id, journal.WorkerBreak, 0))
			r.clock.Sleep(r.timing.BreakDuration())
			r.record(journal.Worker(id, journal.WorkerBreakFinished, 0))
			continue
		}

		// A client may have queued between the claim and the open check.
		if r.state.HasWaiting() {
			continue
		}
		break
	}

	log.Debug("draining done, acknowledging closing")
	r.state.Ack()
	if n := r.state.ReleaseStragglers(); n > 0 {
		log.Warn("released clients left in queue", "count", n)
	}
	r.state.AwaitRelease()
	r.record(journal.Worker(id, journal.WorkerGoingHome, 0))
}
