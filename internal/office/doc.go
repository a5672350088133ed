// Package office runs the post office: client and worker actors sharing three
// service queues, and a supervisor that closes the office and shuts everything
// down once the remaining clients are served.
//
// # Protocol
//
// All queue bookkeeping happens under a single mutex in State. A client joins
// a queue only if the office is still open at that instant; a worker that
// removes a client from a queue posts exactly one wake-up on that queue's
// signal. After Close, workers drain the queues, acknowledge the closing and
// wait until the supervisor has recorded the closing line before going home.
//
// Every observable transition is written to a journal.Journal, which is the
// only ordering authority of the run.
//
// # Usage
//
//	res, err := office.Run(cfg.Simulation,
//		office.WithJournalPath(fs, "proj2.out"),
//		office.WithBus(bus),
//		office.WithLogger(logger),
//	)
package office
