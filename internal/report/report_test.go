package report

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/office"
)

func sample() (config.SimulationConfig, *office.Result, journal.Stats) {
	sim := config.SimulationConfig{Clients: 5, Workers: 2, MaxEntryDelayMs: 50, MaxBreakMs: 20, CloseAfterMs: 100, MaxServiceMs: 10}
	res := &office.Result{
		Lines:        31,
		Clients:      5,
		Workers:      2,
		Served:       4,
		Rejected:     1,
		ClosingDelay: 80 * time.Millisecond,
		Elapsed:      95 * time.Millisecond,
		Seed:         7,
	}
	stats := journal.Stats{Lines: 31, Served: 4, Rejected: 1, ServedByService: [3]int{1, 2, 1}, Breaks: 3, ClosingLine: 27}
	return sim, res, stats
}

func TestNew(t *testing.T) {
	sim, res, stats := sample()
	r := New("proj2.out", sim, res, stats, false, nil)

	if r.Served != 4 || r.Rejected != 1 || r.Lines != 31 {
		t.Errorf("counts = %d/%d/%d", r.Served, r.Rejected, r.Lines)
	}
	if r.ServedByService["service_2"] != 2 {
		t.Errorf("ServedByService = %v", r.ServedByService)
	}
	if r.ClosingDelayMs != 80 || r.ElapsedMs != 95 {
		t.Errorf("durations = %d/%d", r.ClosingDelayMs, r.ElapsedMs)
	}
	if r.Verification != nil {
		t.Error("Verification should be nil when the journal was not verified")
	}
}

func TestNew_Verification(t *testing.T) {
	sim, res, stats := sample()

	t.Run("passed", func(t *testing.T) {
		r := New("proj2.out", sim, res, stats, true, nil)
		if r.Verification == nil || !r.Verification.Passed {
			t.Fatalf("Verification = %+v, want passed", r.Verification)
		}
	})

	t.Run("failed", func(t *testing.T) {
		verr := &journal.VerifyError{Violations: []journal.Violation{
			{Line: 4, Actor: "Z 1", Message: "called before entering"},
		}}
		r := New("proj2.out", sim, res, stats, true, verr)
		if r.Verification.Passed {
			t.Fatal("Verification should fail")
		}
		if len(r.Verification.Violations) != 1 || r.Verification.Violations[0] != "line 4: Z 1: called before entering" {
			t.Errorf("Violations = %v", r.Verification.Violations)
		}
		if !strings.Contains(r.Render(false), "FAILED (1 violation)") {
			t.Errorf("Render() = %q", r.Render(false))
		}
	})
}

func TestReport_YAML(t *testing.T) {
	sim, res, stats := sample()
	data, err := New("proj2.out", sim, res, stats, true, nil).YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	for _, key := range []string{"journal", "parameters", "served", "served_by_service", "verification"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("YAML missing key %q:\n%s", key, data)
		}
	}
	params := decoded["parameters"].(map[string]any)
	if params["clients"] != 5 {
		t.Errorf("parameters.clients = %v, want 5", params["clients"])
	}
}

func TestReport_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	sim, res, stats := sample()

	if err := New("proj2.out", sim, res, stats, false, nil).Write(fs, "report.yaml"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := afero.ReadFile(fs, "report.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "lines: 31") {
		t.Errorf("report.yaml = %s", data)
	}

	ro := afero.NewReadOnlyFs(fs)
	if err := New("proj2.out", sim, res, stats, false, nil).Write(ro, "other.yaml"); err == nil {
		t.Error("Write() to a read-only fs should fail")
	}
}

func TestReport_Render(t *testing.T) {
	sim, res, stats := sample()
	r := New("proj2.out", sim, res, stats, true, nil)

	plain := r.Render(false)
	for _, want := range []string{
		"post office run",
		"5 (4 served, 1 turned away)",
		"1 / 2 / 1",
		"80ms (line 27)",
		"seed",
		"verified",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("Render(false) missing %q:\n%s", want, plain)
		}
	}

	if styled := r.Render(true); !strings.Contains(styled, "proj2.out") {
		t.Errorf("Render(true) missing journal path:\n%s", styled)
	}
}
