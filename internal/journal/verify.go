package journal

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/Iron-Ham/postoffice/internal/errors"
)

// Expect carries what the verifier should know about the run. Zero values
// mean "infer from the journal".
type Expect struct {
	Clients int
	Workers int
}

// Violation is one broken property.
type Violation struct {
	Line    uint64 // 0 when the violation is not tied to one line
	Actor   string
	Message string
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Line != 0 {
		fmt.Fprintf(&b, "line %d: ", v.Line)
	}
	if v.Actor != "" {
		fmt.Fprintf(&b, "%s: ", v.Actor)
	}
	b.WriteString(v.Message)
	return b.String()
}

// VerifyError collects every violation found in a journal.
type VerifyError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	if len(e.Violations) == 1 {
		return "journal verification failed: " + e.Violations[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "journal verification failed with %d violations:\n", len(e.Violations))
	for i, v := range e.Violations {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, v.String())
	}
	return sb.String()
}

// Unwrap lets errors.Is match errors.ErrProtocolViolation.
func (e *VerifyError) Unwrap() error {
	return errors.ErrProtocolViolation
}

type actorKey struct {
	tag Tag
	id  int
}

type verifier struct {
	violations []Violation
}

func (v *verifier) add(line uint64, actor, format string, args ...any) {
	v.violations = append(v.violations, Violation{Line: line, Actor: actor, Message: fmt.Sprintf(format, args...)})
}

// Verify checks a parsed journal against the run's ordering guarantees:
//   - line numbers are exactly 1..L in file order
//   - every client either went home straight away, or entered, was called and went home
//   - every worker started, alternated well-nested service and break pairs, and went home
//   - exactly one closing line, after every "service finished" and before every worker's "going home"
//   - per service type, workers served exactly as many clients as entered
//
// It returns nil or a *VerifyError.
func Verify(entries []Entry, expect Expect) error {
	v := &verifier{}

	perActor := make(map[actorKey][]Entry)
	var closing []Entry
	for i, e := range entries {
		if want := uint64(i + 1); e.Line != want {
			v.add(e.Line, "", "expected line number %d", want)
		}
		switch e.Tag() {
		case TagOffice:
			closing = append(closing, e)
		default:
			k := actorKey{e.Tag(), e.ActorID}
			perActor[k] = append(perActor[k], e)
		}
	}

	var closingLine uint64
	switch len(closing) {
	case 0:
		v.add(0, "office", "no closing line")
	case 1:
		closingLine = closing[0].Line
	default:
		for _, c := range closing[1:] {
			v.add(c.Line, "office", "duplicate closing line")
		}
		closingLine = closing[0].Line
	}

	entered := make([]int, MaxService+1)
	served := make([]int, MaxService+1)

	keys := make([]actorKey, 0, len(perActor))
	for k := range perActor {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].tag != keys[j].tag {
			return keys[i].tag > keys[j].tag // Z before U
		}
		return keys[i].id < keys[j].id
	})

	for _, k := range keys {
		seq := perActor[k]
		if k.tag == TagClient {
			v.checkClient(seq, entered)
		} else {
			v.checkWorker(seq, served, closingLine)
		}
	}

	v.checkPopulation(perActor, TagClient, expect.Clients)
	v.checkPopulation(perActor, TagWorker, expect.Workers)

	for s := 1; s <= MaxService; s++ {
		if entered[s] != served[s] {
			v.add(0, "", "service %d: %d clients entered but %d were served", s, entered[s], served[s])
		}
	}

	if len(v.violations) == 0 {
		return nil
	}
	return &VerifyError{Violations: v.violations}
}

func (v *verifier) checkClient(seq []Entry, entered []int) {
	actor := seq[0].Actor()
	got := make([]Action, len(seq))
	for i, e := range seq {
		got[i] = e.Action
	}

	rejected := []Action{ClientStarted, ClientGoingHome}
	servedSeq := []Action{ClientStarted, ClientEntering, ClientCalled, ClientGoingHome}
	switch {
	case slices.Equal(got, rejected):
	case slices.Equal(got, servedSeq):
		entered[seq[1].Service]++
	default:
		v.add(seq[len(seq)-1].Line, actor, "unexpected client sequence %s", formatActions(got))
	}
}

func (v *verifier) checkWorker(seq []Entry, served []int, closingLine uint64) {
	actor := seq[0].Actor()
	if seq[0].Action != WorkerStarted {
		v.add(seq[0].Line, actor, "first event is %q, want started", seq[0].Message())
	}
	last := seq[len(seq)-1]
	if last.Action != WorkerGoingHome {
		v.add(last.Line, actor, "last event is %q, want going home", last.Message())
	} else if closingLine != 0 && last.Line < closingLine {
		v.add(last.Line, actor, "went home before the office closed")
	}

	var open Action // pending pair opener, 0 when idle
	for i, e := range seq {
		switch e.Action {
		case WorkerStarted:
			if i != 0 {
				v.add(e.Line, actor, "started twice")
			}
		case WorkerGoingHome:
			if i != len(seq)-1 {
				v.add(e.Line, actor, "events after going home")
			}
			if open != 0 {
				v.add(e.Line, actor, "went home during %s", open)
			}
		case WorkerServing, WorkerBreak:
			if open != 0 {
				v.add(e.Line, actor, "%s started during %s", e.Action, open)
			}
			open = e.Action
			if e.Action == WorkerServing {
				served[e.Service]++
			}
		case WorkerServiceFinished:
			if open != WorkerServing {
				v.add(e.Line, actor, "service finished without serving")
			}
			if closingLine != 0 && e.Line > closingLine {
				v.add(e.Line, actor, "service finished after closing")
			}
			open = 0
		case WorkerBreakFinished:
			if open != WorkerBreak {
				v.add(e.Line, actor, "break finished without break")
			}
			open = 0
		}
	}
}

func (v *verifier) checkPopulation(perActor map[actorKey][]Entry, tag Tag, want int) {
	ids := make(map[int]bool)
	highest := 0
	for k := range perActor {
		if k.tag != tag {
			continue
		}
		ids[k.id] = true
		highest = max(highest, k.id)
	}
	if want == 0 {
		want = highest
	}
	for id := 1; id <= want; id++ {
		if !ids[id] {
			v.add(0, fmt.Sprintf("%s %d", tag, id), "actor missing from journal")
		}
	}
	if highest > want {
		v.add(0, fmt.Sprintf("%s %d", tag, highest), "unexpected actor, expected %d", want)
	}
}

func formatActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.Key()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
