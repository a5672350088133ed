package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ConfigError Tests
// -----------------------------------------------------------------------------

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "message only",
			err:  NewConfigError("bad arguments", nil),
			want: "config error: bad arguments",
		},
		{
			name: "with arg and cause",
			err:  NewConfigError("TU must be in range 0..100", ErrArgOutOfRange).WithArg("TU"),
			want: "config error [arg=TU]: TU must be in range 0..100: argument out of range",
		},
		{
			name: "with value",
			err:  NewConfigError("not a number", ErrArgNotInteger).WithArg("NZ").WithValue("1x"),
			want: "config error [arg=NZ, value=1x]: not a number: argument is not an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Is(t *testing.T) {
	err := fmt.Errorf("parse: %w", NewConfigError("NZ must be > 0", ErrArgOutOfRange).WithArg("NZ"))

	if !errors.Is(err, ErrArgOutOfRange) {
		t.Error("expected errors.Is(err, ErrArgOutOfRange)")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected config errors to match ErrInvalidInput")
	}
	if !errors.Is(err, &ConfigError{}) {
		t.Error("expected type match against *ConfigError")
	}
	if errors.Is(err, ErrJournalWrite) {
		t.Error("did not expect match against ErrJournalWrite")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("errors.As failed")
	}
	if cfgErr.Arg != "NZ" {
		t.Errorf("Arg = %q, want NZ", cfgErr.Arg)
	}
}

// -----------------------------------------------------------------------------
// ResourceError / ProtocolError Tests
// -----------------------------------------------------------------------------

func TestResourceError(t *testing.T) {
	err := NewResourceError("open journal", ErrJournalOpen).WithResource("proj2.out")

	want := "resource error [resource=proj2.out]: open journal: failed to open journal"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrJournalOpen) {
		t.Error("expected errors.Is(err, ErrJournalOpen)")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
}

func TestProtocolError(t *testing.T) {
	t.Run("defaults cause to ErrProtocolViolation", func(t *testing.T) {
		err := NewProtocolError("client never went home", nil).WithActor("Z 4")
		if !errors.Is(err, ErrProtocolViolation) {
			t.Error("expected errors.Is(err, ErrProtocolViolation)")
		}
		want := "protocol error [actor=Z 4]: client never went home: protocol violation"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("line context", func(t *testing.T) {
		err := NewProtocolError("gap in line numbers", nil).WithLine(17)
		want := "protocol error [line=17]: gap in line numbers: protocol violation"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("critical and internal", func(t *testing.T) {
		err := NewProtocolError("x", nil)
		if GetSeverity(err) != SeverityCritical {
			t.Errorf("GetSeverity() = %v, want critical", GetSeverity(err))
		}
		if IsUserFacing(err) {
			t.Error("protocol errors should not be user facing")
		}
	})
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError(t *testing.T) {
	err := NewValidationError("must be positive").WithField("simulation.clients").WithValue(0)

	want := "validation error [field=simulation.clients, value=0]: must be positive"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected errors.Is(err, ErrInvalidInput)")
	}
	if !IsConfigError(err) {
		t.Error("expected IsConfigError to be true")
	}
}

// -----------------------------------------------------------------------------
// Helper Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"config error", NewConfigError("x", nil), true},
		{"wrapped resource error", Wrap(NewResourceError("x", nil), "run"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity_PlainError(t *testing.T) {
	if got := GetSeverity(errors.New("boom")); got != SeverityError {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityError)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(ErrJournalWrite, "line %d", 3)
	if err.Error() != "line 3: failed to write journal" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !errors.Is(err, ErrJournalWrite) {
		t.Error("wrapped error lost its cause")
	}
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"config error", NewConfigError("bad NZ", ErrArgOutOfRange), true},
		{"validation error", NewValidationError("must be positive"), true},
		{"wrapped config error", Wrap(NewConfigError("bad TU", ErrArgNotInteger), "parse"), true},
		{"joined validation error", Join(New("other"), NewValidationError("bad")), true},
		{"resource error", NewResourceError("cannot open", ErrJournalOpen), false},
		{"protocol error", NewProtocolError("gap", nil), false},
		{"plain error", New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigError(tt.err); got != tt.want {
				t.Errorf("IsConfigError() = %v, want %v", got, tt.want)
			}
		})
	}
}
