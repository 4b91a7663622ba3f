// Where: cli/internal/ports/events.go
// What: Progress event contract.
// Why: Publishing emits informational signals at defined checkpoints.
package ports

// EventType names a progress checkpoint. Events are informational only
// and have no flow-control effect.
type EventType string

const (
	EventCheck  EventType = "check"
	EventFound  EventType = "found"
	EventCached EventType = "cached"
	EventBuild  EventType = "build"
	EventUpload EventType = "upload"
	EventDebug  EventType = "debug"
)

// EventSink receives ordered progress events with a human-readable
// message.
type EventSink interface {
	Emit(event EventType, message string)
}
