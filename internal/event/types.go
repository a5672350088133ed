// Package event defines event types for decoupling the simulation core from its
// observers. The journal and the shared office state publish; metrics, the live
// dashboard and tests subscribe.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "journal.recorded", "office.closed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers.
const (
	TypeEntryRecorded = "journal.recorded"
	TypeQueueChanged  = "office.queue_changed"
	TypeOfficeClosed  = "office.closed"
	TypeRunFinished   = "office.finished"
)

// -----------------------------------------------------------------------------
// Journal Events
// -----------------------------------------------------------------------------

// EntryRecordedEvent is emitted after a journal line has been written. Events
// are published while the journal lock is held, so subscribers observe them in
// line order.
type EntryRecordedEvent struct {
	baseEvent
	Line    uint64 // Line number written
	Tag     string // "Z" for clients, "U" for workers, "" for the office
	ActorID int    // 1-based actor id, 0 for the office
	Action  string // Stable action key, e.g. "client.entering"
	Service int    // Service type 1..3, 0 when not applicable
	Text    string // Rendered line without trailing newline
}

// NewEntryRecordedEvent creates an EntryRecordedEvent.
func NewEntryRecordedEvent(line uint64, tag string, actorID int, action string, service int, text string) EntryRecordedEvent {
	return EntryRecordedEvent{
		baseEvent: newBaseEvent(TypeEntryRecorded),
		Line:      line,
		Tag:       tag,
		ActorID:   actorID,
		Action:    action,
		Service:   service,
		Text:      text,
	}
}

// -----------------------------------------------------------------------------
// Office Events
// -----------------------------------------------------------------------------

// QueueChangedEvent carries a consistent snapshot of the waiting counts taken
// under the office mutex.
type QueueChangedEvent struct {
	baseEvent
	Queues []int
	Open   bool
}

// NewQueueChangedEvent creates a QueueChangedEvent. The queues slice is copied.
func NewQueueChangedEvent(queues []int, open bool) QueueChangedEvent {
	q := make([]int, len(queues))
	copy(q, queues)
	return QueueChangedEvent{
		baseEvent: newBaseEvent(TypeQueueChanged),
		Queues:    q,
		Open:      open,
	}
}

// OfficeClosedEvent is emitted when the supervisor flips the office to closed.
type OfficeClosedEvent struct {
	baseEvent
	After time.Duration // How long the office was open
}

// NewOfficeClosedEvent creates an OfficeClosedEvent.
func NewOfficeClosedEvent(after time.Duration) OfficeClosedEvent {
	return OfficeClosedEvent{
		baseEvent: newBaseEvent(TypeOfficeClosed),
		After:     after,
	}
}

// RunFinishedEvent is emitted once every actor has terminated.
type RunFinishedEvent struct {
	baseEvent
	Lines   uint64
	Elapsed time.Duration
	Err     error
}

// NewRunFinishedEvent creates a RunFinishedEvent.
func NewRunFinishedEvent(lines uint64, elapsed time.Duration, err error) RunFinishedEvent {
	return RunFinishedEvent{
		baseEvent: newBaseEvent(TypeRunFinished),
		Lines:     lines,
		Elapsed:   elapsed,
		Err:       err,
	}
}
