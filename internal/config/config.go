package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Limits on the command line parameters.
const (
	MaxEntryDelayLimitMs = 10000 // TZ
	MaxBreakLimitMs      = 100   // TU
	CloseAfterLimitMs    = 10000 // F
	MaxServiceLimitMs    = 1000
)

// EnvPrefix prefixes every environment variable that overrides a config key.
const EnvPrefix = "POSTOFFICE"

// Config represents the complete post office configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	TUI        TUIConfig        `mapstructure:"tui" yaml:"tui"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
}

// SimulationConfig holds the actor counts and timing bounds of one run.
// The first five fields are normally supplied on the command line as
// NZ NU TZ TU F.
type SimulationConfig struct {
	// Clients is the number of client actors (NZ, > 0)
	Clients int `mapstructure:"clients" yaml:"clients"`
	// Workers is the number of worker actors (NU, > 0)
	Workers int `mapstructure:"workers" yaml:"workers"`
	// MaxEntryDelayMs bounds how long a client waits before walking in (TZ, 0..10000)
	MaxEntryDelayMs int `mapstructure:"max_entry_delay_ms" yaml:"max_entry_delay_ms"`
	// MaxBreakMs bounds a worker's break (TU, 0..100)
	MaxBreakMs int `mapstructure:"max_break_ms" yaml:"max_break_ms"`
	// CloseAfterMs bounds how long the office stays open; the actual delay is
	// uniform in [F/2, F] (F, 1..10000)
	CloseAfterMs int `mapstructure:"close_after_ms" yaml:"close_after_ms"`
	// MaxServiceMs bounds the time a service takes, on both sides of the counter (default: 10)
	MaxServiceMs int `mapstructure:"max_service_ms" yaml:"max_service_ms"`
	// Seed seeds the random source; 0 picks a seed from the clock
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// MaxEntryDelay returns TZ as a time.Duration
func (s SimulationConfig) MaxEntryDelay() time.Duration {
	return time.Duration(s.MaxEntryDelayMs) * time.Millisecond
}

// MaxBreak returns TU as a time.Duration
func (s SimulationConfig) MaxBreak() time.Duration {
	return time.Duration(s.MaxBreakMs) * time.Millisecond
}

// CloseAfter returns F as a time.Duration
func (s SimulationConfig) CloseAfter() time.Duration {
	return time.Duration(s.CloseAfterMs) * time.Millisecond
}

// MaxService returns the service bound as a time.Duration
func (s SimulationConfig) MaxService() time.Duration {
	return time.Duration(s.MaxServiceMs) * time.Millisecond
}

// OutputConfig controls what a run leaves behind
type OutputConfig struct {
	// Journal is the path of the event journal (default: "proj2.out")
	Journal string `mapstructure:"journal" yaml:"journal"`
	// Summary is an optional path for a YAML run report
	Summary string `mapstructure:"summary" yaml:"summary"`
	// Verify re-reads and verifies the journal after the run
	Verify bool `mapstructure:"verify" yaml:"verify"`
}

// LoggingConfig controls trace logging
type LoggingConfig struct {
	// Enabled turns trace logging on (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum trace level: debug, info, warn, error (default: "debug")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where trace.log is written; empty means stderr
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TUIConfig controls the live dashboard
type TUIConfig struct {
	// Enabled shows the dashboard while the run is in progress; it is ignored
	// when stdout is not a terminal
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// MetricsConfig controls metrics exposition
type MetricsConfig struct {
	// Print writes the Prometheus text exposition to stdout after the run
	Print bool `mapstructure:"print" yaml:"print"`
}

// Default returns a Config with sensible default values.
// Simulation counts are left at zero; they come from the command line.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			MaxServiceMs: 10,
		},
		Output: OutputConfig{
			Journal: "proj2.out",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "debug",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// NewViper returns a fresh viper instance with the defaults registered, the
// POSTOFFICE_ environment prefix and the standard config file search path.
// The config file is not read.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	// POSTOFFICE_OUTPUT_JOURNAL for output.journal
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("simulation.clients", defaults.Simulation.Clients)
	v.SetDefault("simulation.workers", defaults.Simulation.Workers)
	v.SetDefault("simulation.max_entry_delay_ms", defaults.Simulation.MaxEntryDelayMs)
	v.SetDefault("simulation.max_break_ms", defaults.Simulation.MaxBreakMs)
	v.SetDefault("simulation.close_after_ms", defaults.Simulation.CloseAfterMs)
	v.SetDefault("simulation.max_service_ms", defaults.Simulation.MaxServiceMs)
	v.SetDefault("simulation.seed", defaults.Simulation.Seed)

	v.SetDefault("output.journal", defaults.Output.Journal)
	v.SetDefault("output.summary", defaults.Output.Summary)
	v.SetDefault("output.verify", defaults.Output.Verify)

	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)

	v.SetDefault("tui.enabled", defaults.TUI.Enabled)
	v.SetDefault("metrics.print", defaults.Metrics.Print)
}

// Load reads the configuration from the global viper instance. It does not
// validate: the simulation section is only complete once the command line
// arguments have been applied.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "postoffice")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".postoffice"
	}
	return filepath.Join(home, ".config", "postoffice")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
