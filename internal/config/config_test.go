package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Simulation.MaxServiceMs != 10 {
		t.Errorf("Simulation.MaxServiceMs = %d, want 10", cfg.Simulation.MaxServiceMs)
	}
	if cfg.Simulation.Clients != 0 || cfg.Simulation.Workers != 0 {
		t.Error("actor counts should come from the command line, not defaults")
	}
	if cfg.Output.Journal != "proj2.out" {
		t.Errorf("Output.Journal = %q, want %q", cfg.Output.Journal, "proj2.out")
	}
	if cfg.Output.Verify {
		t.Error("Output.Verify should be false by default")
	}
	if cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be false by default")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.TUI.Enabled {
		t.Error("TUI.Enabled should be false by default")
	}
}

func TestSimulationConfig_Durations(t *testing.T) {
	sim := SimulationConfig{
		MaxEntryDelayMs: 50,
		MaxBreakMs:      20,
		CloseAfterMs:    100,
		MaxServiceMs:    10,
	}

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"entry delay", sim.MaxEntryDelay(), 50 * time.Millisecond},
		{"break", sim.MaxBreak(), 20 * time.Millisecond},
		{"close after", sim.CloseAfter(), 100 * time.Millisecond},
		{"service", sim.MaxService(), 10 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/postoffice"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "postoffice")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/postoffice/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Output.Journal != "proj2.out" {
		t.Errorf("Output.Journal = %q, want proj2.out", cfg.Output.Journal)
	}
	if cfg.Simulation.MaxServiceMs != 10 {
		t.Errorf("Simulation.MaxServiceMs = %d, want 10", cfg.Simulation.MaxServiceMs)
	}
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
simulation:
  max_service_ms: 25
  seed: 42
output:
  journal: run.out
  verify: true
logging:
  level: WARN
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Simulation.MaxServiceMs != 25 {
		t.Errorf("Simulation.MaxServiceMs = %d, want 25", cfg.Simulation.MaxServiceMs)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("Simulation.Seed = %d, want 42", cfg.Simulation.Seed)
	}
	if cfg.Output.Journal != "run.out" || !cfg.Output.Verify {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want level to be lowercased", cfg.Logging.Level)
	}
}

func TestLoadFrom_Env(t *testing.T) {
	t.Setenv("POSTOFFICE_OUTPUT_JOURNAL", "env.out")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("POSTOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Output.Journal != "env.out" {
		t.Errorf("Output.Journal = %q, want env.out", cfg.Output.Journal)
	}
}

func TestNewViper(t *testing.T) {
	t.Setenv("POSTOFFICE_SIMULATION_MAX_SERVICE_MS", "3")

	cfg, err := LoadFrom(NewViper())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Simulation.MaxServiceMs != 3 {
		t.Errorf("Simulation.MaxServiceMs = %d, want 3 from the environment", cfg.Simulation.MaxServiceMs)
	}
	if cfg.Output.Journal != "proj2.out" {
		t.Errorf("Output.Journal = %q, want default", cfg.Output.Journal)
	}
}
