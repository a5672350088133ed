package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/journal"
)

type checkOptions struct {
	clients int
	workers int
	filter  string
	watch   bool
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	checkCmd := &cobra.Command{
		Use:   "check <journal>",
		Short: "Verify a journal written by a previous run",
		Long: `Parse a journal and check the ordering guarantees of a run: contiguous line
numbers, complete client and worker lifecycles, a single closing line after
the last service, and every queued client served.

With --filter, print the lines whose text matches a glob pattern, e.g.
  postoffice check proj2.out --filter '*: U 1: *'

With --watch, check again every time the file is written until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	checkCmd.Flags().IntVar(&opts.clients, "clients", 0, "expected number of clients (0 infers it from the journal)")
	checkCmd.Flags().IntVar(&opts.workers, "workers", 0, "expected number of workers (0 infers it from the journal)")
	checkCmd.Flags().StringVar(&opts.filter, "filter", "", "print lines matching this glob pattern")
	checkCmd.Flags().BoolVar(&opts.watch, "watch", false, "re-check whenever the journal changes")

	return checkCmd
}

func runCheck(cmd *cobra.Command, path string, opts checkOptions) error {
	out := cmd.OutOrStdout()
	check := func() error {
		return checkJournal(path, opts, out)
	}

	if !opts.watch {
		return check()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchJournal(ctx, path, func() {
		if err := check(); err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	})
}

// checkJournal verifies the journal at path and reports on out. The returned
// error wraps errors.ErrProtocolViolation when the journal is well formed but
// breaks an ordering guarantee.
func checkJournal(path string, opts checkOptions, out io.Writer) error {
	entries, err := readJournal(appFs, path)
	if err != nil {
		return err
	}

	if opts.filter != "" {
		matched, err := journal.Filter(entries, opts.filter)
		if err != nil {
			return errors.NewValidationError("invalid filter pattern").
				WithField("filter").WithValue(opts.filter).WithCause(err)
		}
		for _, e := range matched {
			fmt.Fprintln(out, e.String())
		}
	}

	stats := journal.Summarize(entries)
	if err := journal.Verify(entries, journal.Expect{Clients: opts.clients, Workers: opts.workers}); err != nil {
		return protocolError(path, err)
	}

	fmt.Fprintf(out, "%s: ok (%d lines, %d clients, %d workers, %d served, %d turned away)\n",
		path, stats.Lines, stats.Clients, stats.Workers, stats.Served, stats.Rejected)
	return nil
}

// watchJournal calls check once, then again after every write to path, until
// ctx is done. The parent directory is watched so that a journal recreated by
// a new run is still followed.
func watchJournal(ctx context.Context, path string, check func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewResourceError("cannot watch journal", err).WithResource(path)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.NewResourceError("cannot watch journal", err).WithResource(path)
	}

	target := filepath.Clean(path)
	check()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				check()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.NewResourceError("watch failed", err).WithResource(path)
		}
	}
}
