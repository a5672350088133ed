// Package logging provides structured trace logging for simulation runs.
//
// Traces are diagnostic only. They are never written to the run journal, whose
// format is fixed, and they are disabled unless a trace directory or level is
// configured. This package wraps log/slog with a JSON handler.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/postoffice-trace", logging.LevelDebug)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	clientLog := logger.WithRun("run-1").WithActor("Z", 3)
//	clientLog.Debug("entering queue", "service", 2)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"entering queue","run_id":"run-1","actor":"Z 3","service":2}
//
// # Testing
//
// Use [NopLogger] to discard all output, or [NewWriterLogger] to capture it in
// a buffer.
package logging
