// Package event provides a synchronous pub-sub event bus used to observe a
// simulation run without coupling the synchronization core to its observers.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
//   - [EntryRecordedEvent]: a journal line was written
//   - [QueueChangedEvent]: waiting counts or the open flag changed
//   - [OfficeClosedEvent]: the office stopped accepting clients
//   - [RunFinishedEvent]: every actor has terminated
//
// # Ordering
//
// [Bus.Publish] calls handlers on the publisher's goroutine. The journal and
// the office state publish while holding their own locks, so handlers see
// events in the same order the state changed. Handlers must therefore be fast
// and must never call back into the simulation.
package event
