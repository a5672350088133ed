// Package cmd implements the postoffice command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/logging"
	"github.com/Iron-Ham/postoffice/internal/metrics"
	"github.com/Iron-Ham/postoffice/internal/office"
	"github.com/Iron-Ham/postoffice/internal/report"
	"github.com/Iron-Ham/postoffice/internal/tui"
)

// appFs is the file system journals and reports are written to.
var appFs afero.Fs = afero.NewOsFs()

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "postoffice NZ NU TZ TU F",
		Short: "Post office concurrency simulation",
		Long: `Simulate a post office where NZ clients and NU workers share three service
queues. The office closes after a random time in [F/2, F] ms, serves the clients
still waiting and shuts down. Every event is written to the journal (proj2.out).

  NZ  number of clients (> 0)
  NU  number of workers (> 0)
  TZ  maximum time in ms a client waits before entering (0..10000)
  TU  maximum length in ms of a worker's break (0..100)
  F   maximum time in ms the office stays open (1..10000)`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOffice(cmd, v, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is $HOME/.config/postoffice/config.yaml)")
	_ = v.BindPFlag("config", pf.Lookup("config"))

	defaults := config.Default()
	f := rootCmd.Flags()
	f.StringP("output", "o", defaults.Output.Journal, "journal path")
	f.Int64("seed", 0, "random seed (0 picks one from the clock)")
	f.Int("service-max", defaults.Simulation.MaxServiceMs, "maximum service duration in ms")
	f.String("log-level", defaults.Logging.Level, "trace log level (debug, info, warn, error)")
	f.String("debug-dir", "", "write a trace log to this directory")
	f.Bool("tui", false, "show a live dashboard while the office runs")
	f.String("summary", "", "write a YAML run report to this path")
	f.Bool("verify", false, "verify the journal after the run and print a summary")
	f.Bool("metrics", false, "print metrics in the Prometheus text format after the run")

	bindings := map[string]string{
		"output.journal":            "output",
		"simulation.seed":           "seed",
		"simulation.max_service_ms": "service-max",
		"logging.level":             "log-level",
		"logging.dir":               "debug-dir",
		"tui.enabled":               "tui",
		"output.summary":            "summary",
		"output.verify":             "verify",
		"metrics.print":             "metrics",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd(v))

	return rootCmd
}

// readConfigFile reads the config file if there is one. An explicitly named
// file that cannot be read is an error; a missing default file is not.
func readConfigFile(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("cannot read config file", err).WithValue(cfgFile)
		}
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("cannot read config file", err).WithValue(v.ConfigFileUsed())
	}
	return nil
}

func runOffice(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return errors.NewConfigError("cannot decode configuration", err)
	}
	if err := cfg.Simulation.ApplyArgs(args); err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return errors.NewConfigError("invalid configuration", config.ValidationErrors(errs))
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	bus := event.NewBus(logger)
	collector := metrics.NewCollector()
	collector.Attach(bus)
	defer collector.Detach(bus)
	logger.Debug("metrics collector attached", "subscriptions", bus.SubscriptionCount())

	run := func() (*office.Result, error) {
		return office.Run(cfg.Simulation,
			office.WithJournalPath(appFs, cfg.Output.Journal),
			office.WithBus(bus),
			office.WithLogger(logger),
		)
	}

	var res *office.Result
	if cfg.TUI.Enabled && isTerminal(os.Stdout) {
		res, err = tui.Run(bus, cfg.Simulation.Clients, cfg.Simulation.Workers, run)
	} else {
		res, err = run()
	}
	if res == nil {
		return err
	}

	if postErr := afterRun(cfg, res, collector, cmd.OutOrStdout()); postErr != nil && err == nil {
		err = postErr
	}
	return err
}

// afterRun writes the optional report, summary and metrics of a finished run.
func afterRun(cfg *config.Config, res *office.Result, collector *metrics.Collector, out io.Writer) error {
	if !cfg.Output.Verify && cfg.Output.Summary == "" && !cfg.Metrics.Print {
		return nil
	}

	var (
		stats     journal.Stats
		verifyErr error
	)
	if cfg.Output.Verify || cfg.Output.Summary != "" {
		entries, err := readJournal(appFs, cfg.Output.Journal)
		if err != nil {
			return err
		}
		stats = journal.Summarize(entries)
		if cfg.Output.Verify {
			verifyErr = journal.Verify(entries, journal.Expect{
				Clients: cfg.Simulation.Clients,
				Workers: cfg.Simulation.Workers,
			})
		}
	}

	rep := report.New(cfg.Output.Journal, cfg.Simulation, res, stats, cfg.Output.Verify, verifyErr)
	if cfg.Output.Summary != "" {
		if err := rep.Write(appFs, cfg.Output.Summary); err != nil {
			return err
		}
	}
	if cfg.Output.Verify {
		fmt.Fprintln(out, rep.Render(isTerminal(out)))
	}
	if cfg.Metrics.Print {
		if err := collector.WriteText(out); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}

	if verifyErr != nil {
		return protocolError("journal verification failed", verifyErr)
	}
	return nil
}

// protocolError wraps a verification failure, pointing at the first
// violation tied to a journal line.
func protocolError(message string, err error) *errors.ProtocolError {
	perr := errors.NewProtocolError(message, err)
	var verr *journal.VerifyError
	if !errors.As(err, &verr) {
		return perr
	}
	for _, v := range verr.Violations {
		if v.Line != 0 {
			return perr.WithLine(v.Line).WithActor(v.Actor)
		}
	}
	return perr
}

// ErrorMessage renders err for stderr. Errors that are not meant for users
// are prefixed with their severity.
func ErrorMessage(err error) string {
	if errors.IsUserFacing(err) {
		return "[ERROR] " + err.Error()
	}
	return fmt.Sprintf("[ERROR] %s: %v", errors.GetSeverity(err), err)
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled && cfg.Dir == "" {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Dir, cfg.Level)
	if err != nil {
		return nil, errors.NewResourceError("cannot create trace log", err).WithResource(cfg.Dir)
	}
	return logger, nil
}

func readJournal(fs afero.Fs, path string) ([]journal.Entry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.NewResourceError("cannot open journal", errors.Join(errors.ErrJournalOpen, err)).
			WithResource(path)
	}
	defer func() { _ = f.Close() }()

	entries, err := journal.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return entries, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
