// Package report summarizes a finished run as YAML or as styled text.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/office"
	"github.com/Iron-Ham/postoffice/internal/tui/styles"
	"github.com/Iron-Ham/postoffice/internal/util"
)

// Report is the persisted summary of one run.
type Report struct {
	Journal    string                  `yaml:"journal"`
	Parameters config.SimulationConfig `yaml:"parameters"`
	Seed       uint64                  `yaml:"seed,omitempty"`

	Lines           uint64         `yaml:"lines"`
	Served          int            `yaml:"served"`
	Rejected        int            `yaml:"rejected"`
	ServedByService map[string]int `yaml:"served_by_service"`
	Breaks          int            `yaml:"breaks"`
	ClosingLine     uint64         `yaml:"closing_line"`

	ClosingDelayMs int64 `yaml:"closing_delay_ms"`
	ElapsedMs      int64 `yaml:"elapsed_ms"`

	Verification *Verification `yaml:"verification,omitempty"`
}

// Verification records the outcome of journal.Verify.
type Verification struct {
	Passed     bool     `yaml:"passed"`
	Violations []string `yaml:"violations,omitempty"`
}

// New builds a Report from a run result and the statistics of its journal.
// verified is false when the journal was not verified; verifyErr is then ignored.
func New(path string, sim config.SimulationConfig, res *office.Result, stats journal.Stats, verified bool, verifyErr error) *Report {
	r := &Report{
		Journal:         path,
		Parameters:      sim,
		Seed:            res.Seed,
		Lines:           res.Lines,
		Served:          res.Served,
		Rejected:        res.Rejected,
		ServedByService: make(map[string]int, journal.MaxService),
		Breaks:          stats.Breaks,
		ClosingLine:     stats.ClosingLine,
		ClosingDelayMs:  res.ClosingDelay.Milliseconds(),
		ElapsedMs:       res.Elapsed.Milliseconds(),
	}
	for i, n := range stats.ServedByService {
		r.ServedByService[fmt.Sprintf("service_%d", i+1)] = n
	}
	if verified {
		r.Verification = verification(verifyErr)
	}
	return r
}

func verification(err error) *Verification {
	v := &Verification{Passed: err == nil}
	if err == nil {
		return v
	}
	var verr *journal.VerifyError
	if errors.As(err, &verr) {
		for _, viol := range verr.Violations {
			v.Violations = append(v.Violations, viol.String())
		}
	} else {
		v.Violations = []string{err.Error()}
	}
	return v
}

// YAML renders the report.
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Write stores the report as YAML at path on fs.
func (r *Report) Write(fs afero.Fs, path string) error {
	data, err := r.YAML()
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.NewResourceError("cannot write report", err).WithResource(path)
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.PrimaryColor)
	labelStyle = lipgloss.NewStyle().Foreground(styles.MutedColor).Width(18)
	okStyle    = lipgloss.NewStyle().Foreground(styles.SecondaryColor).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(styles.ErrorColor).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderColor).
			Padding(0, 1)
)

// Render returns a human readable summary. When styled is false the output
// is plain text suitable for pipes.
func (r *Report) Render(styled bool) string {
	type row struct{ label, value string }
	rows := []row{
		{"journal", r.Journal},
		{"lines", fmt.Sprint(r.Lines)},
		{"clients", fmt.Sprintf("%d (%d served, %d turned away)", r.Parameters.Clients, r.Served, r.Rejected)},
		{"workers", fmt.Sprint(r.Parameters.Workers)},
		{"per service", fmt.Sprintf("%d / %d / %d",
			r.ServedByService["service_1"], r.ServedByService["service_2"], r.ServedByService["service_3"])},
		{"breaks", fmt.Sprint(r.Breaks)},
		{"closed after", fmt.Sprintf("%dms (line %d)", r.ClosingDelayMs, r.ClosingLine)},
		{"elapsed", fmt.Sprintf("%dms", r.ElapsedMs)},
	}
	if r.Seed != 0 {
		rows = append(rows, row{"seed", fmt.Sprint(r.Seed)})
	}

	var b strings.Builder
	title := "post office run"
	if styled {
		title = titleStyle.Render(title)
	}
	b.WriteString(title + "\n")

	for _, rw := range rows {
		if styled {
			b.WriteString(labelStyle.Render(rw.label) + rw.value + "\n")
		} else {
			fmt.Fprintf(&b, "%-18s%s\n", rw.label, rw.value)
		}
	}

	if v := r.Verification; v != nil {
		status := "verified"
		if !v.Passed {
			status = fmt.Sprintf("FAILED (%s)", util.Plural(len(v.Violations), "violation", "violations"))
		}
		if styled {
			st := okStyle
			if !v.Passed {
				st = failStyle
			}
			status = st.Render(status)
			b.WriteString(labelStyle.Render("journal check") + status + "\n")
		} else {
			fmt.Fprintf(&b, "%-18s%s\n", "journal check", status)
		}
		for _, viol := range v.Violations {
			b.WriteString("  - " + viol + "\n")
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if styled {
		return boxStyle.Render(out)
	}
	return out
}
