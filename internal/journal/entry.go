package journal

import (
	"fmt"
	"strconv"
)

// MaxService is the highest service type; service types are 1..MaxService.
const MaxService = 3

// Tag is the one-character actor discriminator written in every attributed line.
type Tag string

const (
	TagClient Tag = "Z"
	TagWorker Tag = "U"
	TagOffice Tag = ""
)

// Action identifies one observable transition.
type Action int

const (
	ClientStarted Action = iota + 1
	ClientEntering
	ClientCalled
	ClientGoingHome
	WorkerStarted
	WorkerServing
	WorkerServiceFinished
	WorkerBreak
	WorkerBreakFinished
	WorkerGoingHome
	OfficeClosing
)

type actionInfo struct {
	key     string
	tag     Tag
	message string // fixed text, or prefix when withService is set
	service bool
}

var actions = map[Action]actionInfo{
	ClientStarted:         {"client.started", TagClient, "started", false},
	ClientEntering:        {"client.entering", TagClient, "entering office for a service ", true},
	ClientCalled:          {"client.called", TagClient, "called by office worker", false},
	ClientGoingHome:       {"client.going_home", TagClient, "going home", false},
	WorkerStarted:         {"worker.started", TagWorker, "started", false},
	WorkerServing:         {"worker.serving", TagWorker, "serving a service of type ", true},
	WorkerServiceFinished: {"worker.service_finished", TagWorker, "service finished", false},
	WorkerBreak:           {"worker.break", TagWorker, "taking break", false},
	WorkerBreakFinished:   {"worker.break_finished", TagWorker, "break finished", false},
	WorkerGoingHome:       {"worker.going_home", TagWorker, "going home", false},
	OfficeClosing:         {"office.closing", TagOffice, "closing", false},
}

// Key returns a stable identifier such as "worker.serving", used for metrics labels.
func (a Action) Key() string {
	if info, ok := actions[a]; ok {
		return info.key
	}
	return "unknown"
}

// Tag returns the actor tag this action belongs to.
func (a Action) Tag() Tag {
	return actions[a].tag
}

// HasService reports whether the rendered message carries a service type.
func (a Action) HasService() bool {
	return actions[a].service
}

// String returns the action key.
func (a Action) String() string {
	return a.Key()
}

// Entry is one journal line. Line is assigned by the journal when recorded.
type Entry struct {
	Line    uint64
	Action  Action
	ActorID int // 1-based; 0 for the office
	Service int // 1..3 when Action.HasService()
}

// Client returns an unrecorded client entry.
func Client(id int, action Action, service int) Entry {
	return Entry{Action: action, ActorID: id, Service: service}
}

// Worker returns an unrecorded worker entry.
func Worker(id int, action Action, service int) Entry {
	return Entry{Action: action, ActorID: id, Service: service}
}

// Closing returns the unattributed office closing entry.
func Closing() Entry {
	return Entry{Action: OfficeClosing}
}

// Tag returns the actor tag of the entry.
func (e Entry) Tag() Tag {
	return e.Action.Tag()
}

// Actor renders the actor as "Z 3", "U 1", or "office".
func (e Entry) Actor() string {
	if e.Tag() == TagOffice {
		return "office"
	}
	return fmt.Sprintf("%s %d", e.Tag(), e.ActorID)
}

// Message renders the event text without line number or actor.
func (e Entry) Message() string {
	info, ok := actions[e.Action]
	if !ok {
		return "unknown"
	}
	if info.service {
		return info.message + strconv.Itoa(e.Service)
	}
	return info.message
}

// String renders the full journal line without the trailing newline:
// "<line>: <tag> <id>: <message>" or "<line>: closing".
func (e Entry) String() string {
	if e.Tag() == TagOffice {
		return fmt.Sprintf("%d: %s", e.Line, e.Message())
	}
	return fmt.Sprintf("%d: %s %d: %s", e.Line, e.Tag(), e.ActorID, e.Message())
}
