package driver

import "time"

// Stage is the step of a file's processing an Event refers to.
type Stage uint8

const (
	StageLoad Stage = iota
	StageGenerate
	StageWrite
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageGenerate:
		return "generate"
	case StageWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Status describes the state of a file at a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports progress of a single file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Items is the number of emitted declarations; set on StageWrite/StatusDone.
	Items int
}

// ProgressSink receives events from concurrent workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}

func emitEvent(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
