package journal

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/postoffice/internal/errors"
)

// validJournal is a hand-written run of two clients and two workers. Client 2
// arrived after closing.
const validJournal = `1: Z 1: started
2: U 1: started
3: Z 2: started
4: U 2: started
5: U 2: taking break
6: Z 1: entering office for a service 2
7: U 1: serving a service of type 2
8: Z 1: called by office worker
9: U 2: break finished
10: Z 1: going home
11: U 1: service finished
12: Z 2: going home
13: closing
14: U 2: going home
15: U 1: going home
`

func mustParse(t *testing.T, s string) []Entry {
	t.Helper()
	entries, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return entries
}

func TestVerify_ValidJournal(t *testing.T) {
	entries := mustParse(t, validJournal)

	if err := Verify(entries, Expect{}); err != nil {
		t.Errorf("Verify() = %v", err)
	}
	if err := Verify(entries, Expect{Clients: 2, Workers: 2}); err != nil {
		t.Errorf("Verify() with expectations = %v", err)
	}
}

func TestVerify_Violations(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		expect  Expect
		want    string
	}{
		{
			name:    "gap in line numbers",
			journal: strings.Replace(validJournal, "14: U 2", "16: U 2", 1),
			want:    "expected line number 14",
		},
		{
			name:    "missing closing",
			journal: strings.Replace(validJournal, "13: closing\n", "", 1),
			want:    "no closing line",
		},
		{
			name:    "client never went home",
			journal: strings.Replace(validJournal, "10: Z 1: going home", "10: U 2: taking break", 1),
			want:    "unexpected client sequence",
		},
		{
			name: "service finished after closing",
			journal: strings.NewReplacer(
				"11: U 1: service finished", "11: closing",
				"13: closing", "13: U 1: service finished",
			).Replace(validJournal),
			want: "service finished after closing",
		},
		{
			name:    "worker goes home before closing",
			journal: strings.NewReplacer("13: closing", "13: U 2: going home", "14: U 2: going home", "14: closing").Replace(validJournal),
			want:    "went home before the office closed",
		},
		{
			name:    "unbalanced break",
			journal: strings.Replace(validJournal, "9: U 2: break finished", "9: U 2: taking break", 1),
			want:    "break started during worker.break",
		},
		{
			name:    "missing expected client",
			journal: validJournal,
			expect:  Expect{Clients: 3},
			want:    "Z 3: actor missing from journal",
		},
		{
			name:    "unexpected worker",
			journal: validJournal,
			expect:  Expect{Workers: 1},
			want:    "unexpected actor, expected 1",
		},
		{
			name:    "served count mismatch",
			journal: strings.Replace(validJournal, "serving a service of type 2", "serving a service of type 1", 1),
			want:    "service 2: 1 clients entered but 0 were served",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(mustParse(t, tt.journal), tt.expect)
			if err == nil {
				t.Fatal("expected verification error")
			}
			if !errors.Is(err, errors.ErrProtocolViolation) {
				t.Errorf("error does not match ErrProtocolViolation: %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestVerifyError_Format(t *testing.T) {
	one := &VerifyError{Violations: []Violation{{Line: 3, Actor: "U 1", Message: "boom"}}}
	if got := one.Error(); got != "journal verification failed: line 3: U 1: boom" {
		t.Errorf("Error() = %q", got)
	}

	two := &VerifyError{Violations: []Violation{{Message: "a"}, {Message: "b"}}}
	if !strings.Contains(two.Error(), "2 violations") {
		t.Errorf("Error() = %q", two.Error())
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(mustParse(t, validJournal))

	if s.Lines != 15 || s.Clients != 2 || s.Workers != 2 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Served != 1 || s.Rejected != 1 {
		t.Errorf("Served=%d Rejected=%d, want 1/1", s.Served, s.Rejected)
	}
	if s.ServedByService != [MaxService]int{0, 1, 0} {
		t.Errorf("ServedByService = %v", s.ServedByService)
	}
	if s.Breaks != 1 || s.ClosingLine != 13 {
		t.Errorf("Breaks=%d ClosingLine=%d", s.Breaks, s.ClosingLine)
	}
}

func TestFilter(t *testing.T) {
	entries := mustParse(t, validJournal)

	tests := []struct {
		pattern string
		want    int
	}{
		{"", 15},
		{"*: U 1: *", 4},
		{"*going home", 4},
		{"*: closing", 1},
		{"*service of type [12]", 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Filter(entries, tt.pattern)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Filter(%q) returned %d entries, want %d", tt.pattern, len(got), tt.want)
			}
		})
	}
}
