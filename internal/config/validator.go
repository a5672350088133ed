package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "simulation.max_break_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.Simulation.Validate()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// Validate checks the actor counts and timing bounds of one run.
func (s SimulationConfig) Validate() ValidationErrors {
	var errors ValidationErrors

	if s.Clients <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.clients",
			Value:   s.Clients,
			Message: "must be greater than 0",
		})
	}
	if s.Workers <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.workers",
			Value:   s.Workers,
			Message: "must be greater than 0",
		})
	}
	if s.MaxEntryDelayMs < 0 || s.MaxEntryDelayMs > MaxEntryDelayLimitMs {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_entry_delay_ms",
			Value:   s.MaxEntryDelayMs,
			Message: fmt.Sprintf("must be between 0 and %d", MaxEntryDelayLimitMs),
		})
	}
	if s.MaxBreakMs < 0 || s.MaxBreakMs > MaxBreakLimitMs {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_break_ms",
			Value:   s.MaxBreakMs,
			Message: fmt.Sprintf("must be between 0 and %d", MaxBreakLimitMs),
		})
	}
	if s.CloseAfterMs <= 0 || s.CloseAfterMs > CloseAfterLimitMs {
		errors = append(errors, ValidationError{
			Field:   "simulation.close_after_ms",
			Value:   s.CloseAfterMs,
			Message: fmt.Sprintf("must be between 1 and %d", CloseAfterLimitMs),
		})
	}
	if s.MaxServiceMs < 0 || s.MaxServiceMs > MaxServiceLimitMs {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_service_ms",
			Value:   s.MaxServiceMs,
			Message: fmt.Sprintf("must be between 0 and %d", MaxServiceLimitMs),
		})
	}

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Output.Journal) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.journal",
			Value:   c.Output.Journal,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
