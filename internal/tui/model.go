package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/postoffice/internal/journal"
	"github.com/Iron-Ham/postoffice/internal/office"
	"github.com/Iron-Ham/postoffice/internal/tui/styles"
)

// Actor statuses shown on the dashboard
const (
	statusStarted  = "started"
	statusWalking  = "walking"
	statusWaiting  = "waiting"
	statusCalled   = "called"
	statusIdle     = "idle"
	statusServing  = "serving"
	statusBreak    = "break"
	statusDraining = "draining"
	statusHome     = "home"
	statusRejected = "rejected"
)

// maxRecent is how many journal lines the dashboard keeps
const maxRecent = 8

// Model is the dashboard state. It only ever learns about the run through
// messages, so it never touches the simulation's locks.
type Model struct {
	clients []string
	workers []string
	serving []int // service type per worker while serving

	queues [journal.MaxService]int
	open   bool
	lines  uint64
	recent []string

	closedAfter time.Duration
	started     time.Time
	elapsed     time.Duration

	spinner spinner.Model
	width   int

	done     bool
	quitting bool
	res      *office.Result
	err      error
}

// NewModel creates a dashboard for the given number of actors
func NewModel(clients, workers int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	m := Model{
		clients: make([]string, clients),
		workers: make([]string, workers),
		serving: make([]int, workers),
		open:    true,
		started: time.Now(),
		spinner: sp,
	}
	for i := range m.clients {
		m.clients[i] = statusStarted
	}
	for i := range m.workers {
		m.workers[i] = statusStarted
	}
	return m
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case entryMsg:
		m.applyEntry(msg)
		return m, nil

	case queueMsg:
		copy(m.queues[:], msg.Queues)
		m.open = msg.Open
		return m, nil

	case closedMsg:
		m.open = false
		m.closedAfter = msg.after
		return m, nil

	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		if msg.res != nil {
			m.elapsed = msg.res.Elapsed
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.done {
			m.elapsed = time.Since(m.started)
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) applyEntry(e entryMsg) {
	m.lines = e.Line
	m.recent = append(m.recent, e.Text)
	if len(m.recent) > maxRecent {
		m.recent = m.recent[len(m.recent)-maxRecent:]
	}

	switch e.Action {
	case journal.ClientStarted.Key():
		m.setClient(e.ActorID, statusWalking)
	case journal.ClientEntering.Key():
		m.setClient(e.ActorID, statusWaiting)
	case journal.ClientCalled.Key():
		m.setClient(e.ActorID, statusCalled)
	case journal.ClientGoingHome.Key():
		if m.client(e.ActorID) == statusWalking {
			m.setClient(e.ActorID, statusRejected)
		} else {
			m.setClient(e.ActorID, statusHome)
		}
	case journal.WorkerStarted.Key(), journal.WorkerServiceFinished.Key(), journal.WorkerBreakFinished.Key():
		m.setWorker(e.ActorID, statusIdle, 0)
	case journal.WorkerServing.Key():
		m.setWorker(e.ActorID, statusServing, e.Service)
	case journal.WorkerBreak.Key():
		m.setWorker(e.ActorID, statusBreak, 0)
	case journal.WorkerGoingHome.Key():
		m.setWorker(e.ActorID, statusHome, 0)
	case journal.OfficeClosing.Key():
		m.open = false
		for i, s := range m.workers {
			if s != statusHome {
				m.workers[i] = statusDraining
			}
		}
	}
}

func (m *Model) client(id int) string {
	if id < 1 || id > len(m.clients) {
		return ""
	}
	return m.clients[id-1]
}

func (m *Model) setClient(id int, status string) {
	if id >= 1 && id <= len(m.clients) {
		m.clients[id-1] = status
	}
}

func (m *Model) setWorker(id int, status string, service int) {
	if id >= 1 && id <= len(m.workers) {
		m.workers[id-1] = status
		m.serving[id-1] = service
	}
}

// clientCounts returns how many clients are in each status
func (m Model) clientCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range m.clients {
		counts[s]++
	}
	return counts
}
