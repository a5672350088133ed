package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Simulation.Clients = 5
	cfg.Simulation.Workers = 2
	cfg.Simulation.MaxEntryDelayMs = 50
	cfg.Simulation.MaxBreakMs = 20
	cfg.Simulation.CloseAfterMs = 100
	return cfg
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "simulation.clients",
		Value:   0,
		Message: "must be greater than 0",
	}

	expected := "simulation.clients: must be greater than 0 (got: 0)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_Valid(t *testing.T) {
	if errs := validConfig().Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestConfig_Validate_DefaultNeedsActors(t *testing.T) {
	errs := Default().Validate()
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"simulation.clients", "simulation.workers", "simulation.close_after_ms"} {
		if !fields[want] {
			t.Errorf("expected a validation error for %s, got %v", want, errs)
		}
	}
}

func TestConfig_Validate_Simulation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*SimulationConfig)
		wantField string
	}{
		{"zero clients", func(s *SimulationConfig) { s.Clients = 0 }, "simulation.clients"},
		{"negative workers", func(s *SimulationConfig) { s.Workers = -1 }, "simulation.workers"},
		{"entry delay too large", func(s *SimulationConfig) { s.MaxEntryDelayMs = 10001 }, "simulation.max_entry_delay_ms"},
		{"negative entry delay", func(s *SimulationConfig) { s.MaxEntryDelayMs = -1 }, "simulation.max_entry_delay_ms"},
		{"break too large", func(s *SimulationConfig) { s.MaxBreakMs = 101 }, "simulation.max_break_ms"},
		{"zero close after", func(s *SimulationConfig) { s.CloseAfterMs = 0 }, "simulation.close_after_ms"},
		{"close after too large", func(s *SimulationConfig) { s.CloseAfterMs = 10001 }, "simulation.close_after_ms"},
		{"service too large", func(s *SimulationConfig) { s.MaxServiceMs = 1001 }, "simulation.max_service_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg.Simulation)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		cfg := validConfig()
		cfg.Simulation.MaxEntryDelayMs = MaxEntryDelayLimitMs
		cfg.Simulation.MaxBreakMs = MaxBreakLimitMs
		cfg.Simulation.CloseAfterMs = CloseAfterLimitMs
		cfg.Simulation.MaxServiceMs = 0
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})
}

func TestConfig_Validate_Output(t *testing.T) {
	cfg := validConfig()
	cfg.Output.Journal = "  "
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "output.journal" {
		t.Errorf("Validate() = %v, want one output.journal error", errs)
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logging.Level = tt.level
			errs := cfg.Validate()
			if got := len(errs) > 0; got != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	expected := []string{"debug", "info", "warn", "error"}
	if len(levels) != len(expected) {
		t.Fatalf("ValidLogLevels() = %v, want %v", levels, expected)
	}
	for i, l := range expected {
		if levels[i] != l {
			t.Errorf("ValidLogLevels()[%d] = %q, want %q", i, levels[i], l)
		}
	}
}
