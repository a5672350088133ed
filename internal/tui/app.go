// Package tui shows a live dashboard of a running post office.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/office"
)

// RunFunc performs the simulation. It must publish its events on the bus
// given to Run.
type RunFunc func() (*office.Result, error)

// Run shows the dashboard while run executes on another goroutine, and
// returns run's result. Closing the dashboard early does not stop the run.
func Run(bus *event.Bus, clients, workers int, run RunFunc, opts ...tea.ProgramOption) (*office.Result, error) {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(NewModel(clients, workers), opts...)

	id := bus.SubscribeAll(func(e event.Event) {
		if msg, ok := toMsg(e); ok {
			p.Send(msg)
		}
	})
	defer bus.Unsubscribe(id)

	type outcome struct {
		res *office.Result
		err error
	}
	finished := make(chan outcome, 1)
	go func() {
		res, err := run()
		finished <- outcome{res, err}
		p.Send(doneMsg{res: res, err: err})
	}()

	_, uiErr := p.Run()
	out := <-finished
	if uiErr != nil {
		return out.res, errors.Join(out.err, errors.Wrap(uiErr, "dashboard"))
	}
	return out.res, out.err
}

// toMsg converts a bus event into the message the model handles. Events the
// dashboard does not show are dropped.
func toMsg(e event.Event) (tea.Msg, bool) {
	switch ev := e.(type) {
	case event.EntryRecordedEvent:
		return entryMsg{ev}, true
	case event.QueueChangedEvent:
		return queueMsg{ev}, true
	case event.OfficeClosedEvent:
		return closedMsg{after: ev.After}, true
	default:
		return nil, false
	}
}
