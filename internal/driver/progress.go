package driver

import "time"

// Stage describes a step of the per-file pipeline.
type Stage string

const (
	StageLoad     Stage = "load"
	StageValidate Stage = "validate"
	StageCheck    Stage = "check"
	StageReport   Stage = "report"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a body, or for a whole file when Body is
// empty.
type Event struct {
	File    string
	Body    string
	Stage   Stage
	Status  Status
	Errors  int
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// PhaseStatus tells the start of a stage from its end.
type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent marks a stage boundary of one file. Elapsed is set on
// PhaseEnd only.
type PhaseEvent struct {
	File    string
	Stage   Stage
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives the stage boundaries of CheckFile.
type PhaseObserver func(PhaseEvent)
