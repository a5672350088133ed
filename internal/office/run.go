package office

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/logging"
)

// DefaultJournalPath is where the journal goes when no other is configured.
const DefaultJournalPath = "proj2.out"

// Result describes a finished run.
type Result struct {
	Lines        uint64
	Clients      int
	Workers      int
	Served       int
	Rejected     int
	ClosingDelay time.Duration
	Elapsed      time.Duration
	// Seed is the random seed in use, or 0 when a custom Timing was supplied.
	Seed uint64
}

type options struct {
	fs          afero.Fs
	journalPath string
	journal     *journal.Journal
	bus         *event.Bus
	logger      *logging.Logger
	clock       clock.Clock
	timing      Timing
}

// Option configures Run.
type Option func(*options)

// WithJournalPath writes the journal to path on fs, truncating it.
func WithJournalPath(fs afero.Fs, path string) Option {
	return func(o *options) {
		o.fs = fs
		o.journalPath = path
	}
}

// WithJournal records into j instead of creating a file. Run does not close j.
func WithJournal(j *journal.Journal) Option {
	return func(o *options) {
		o.journal = j
	}
}

// WithBus publishes queue changes and run events on bus. When Run creates the
// journal, every recorded line is published as well.
func WithBus(bus *event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithLogger sets the trace logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock sets the clock actors sleep on.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithTiming replaces the random timing source.
func WithTiming(t Timing) Option {
	return func(o *options) {
		o.timing = t
	}
}

// Run simulates one day at the post office and blocks until every actor has
// gone home. It returns a *errors.ConfigError for an invalid sim before any
// actor starts, a *errors.ResourceError if the journal cannot be created, and
// otherwise the first journal write error, if any, after the run completed.
func Run(sim config.SimulationConfig, opts ...Option) (*Result, error) {
	if errs := sim.Validate(); len(errs) > 0 {
		return nil, errors.NewConfigError("invalid simulation parameters", errs)
	}

	o := options{
		fs:          afero.NewOsFs(),
		journalPath: DefaultJournalPath,
		logger:      logging.NopLogger(),
		clock:       clock.New(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var seed uint64
	if o.timing == nil {
		rt := NewRandomTiming(sim, sim.Seed)
		o.timing = rt
		seed = rt.Seed()
	}

	j := o.journal
	owned := j == nil
	if owned {
		var err error
		j, err = journal.Create(o.fs, o.journalPath, journal.WithBus(o.bus))
		if err != nil {
			return nil, err
		}
	}

	start := o.clock.Now()
	logger := o.logger.WithRun(fmt.Sprintf("%x", start.UnixNano()))
	logger.Info("office opening",
		"clients", sim.Clients,
		"workers", sim.Workers,
		"seed", seed,
	)

	r := &run{
		state:   NewState(o.bus),
		journal: j,
		timing:  o.timing,
		clock:   o.clock,
		logger:  logger,
	}

	var wg conc.WaitGroup
	for id := 1; id <= sim.Clients; id++ {
		wg.Go(bind(r.client, id))
	}
	for id := 1; id <= sim.Workers; id++ {
		wg.Go(bind(r.worker, id))
	}

	delay := o.timing.ClosingDelay()
	o.clock.Sleep(delay)

	r.state.Close()
	o.bus.Publish(event.NewOfficeClosedEvent(delay))
	logger.Debug("office closed, waiting for workers", "after", delay)

	r.state.AwaitAcks(sim.Workers)
	r.record(journal.Closing())
	r.state.Release(sim.Workers)

	wg.Wait()

	runErr := r.firstError()
	if owned {
		if err := j.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}

	res := &Result{
		Lines:        j.Lines(),
		Clients:      sim.Clients,
		Workers:      sim.Workers,
		Served:       int(r.served.Load()),
		Rejected:     int(r.rejected.Load()),
		ClosingDelay: delay,
		Elapsed:      o.clock.Since(start),
		Seed:         seed,
	}
	logger.Info("office finished",
		"lines", res.Lines,
		"served", res.Served,
		"rejected", res.Rejected,
		"elapsed", res.Elapsed,
	)
	o.bus.Publish(event.NewRunFinishedEvent(res.Lines, res.Elapsed, runErr))

	return res, runErr
}

// bind returns a goroutine body running actor with id.
func bind(actor func(id int), id int) func() {
	return func() { actor(id) }
}
