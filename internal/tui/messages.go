package tui

import (
	"time"

	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/office"
)

// entryMsg carries one recorded journal line
type entryMsg struct {
	event.EntryRecordedEvent
}

// queueMsg carries the queue lengths after a change
type queueMsg struct {
	event.QueueChangedEvent
}

// closedMsg is sent when the supervisor closes the office
type closedMsg struct {
	after time.Duration
}

// doneMsg is sent when the run has returned
type doneMsg struct {
	res *office.Result
	err error
}
