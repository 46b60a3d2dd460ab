package driver

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stage describes what the driver is doing with a file.
type Stage string

const (
	// StageLoad is reading the file from disk.
	StageLoad Stage = "load"
	// StageLex is running the lexer.
	StageLex Stage = "lex"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file was lexed without errors.
	StatusDone Status = "done"
	// StatusError indicates the file failed to load or produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: TokenizeDir reports from its worker goroutines.
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

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

// MultiSink fans events out to every non-nil sink in order.
func MultiSink(sinks ...ProgressSink) ProgressSink {
	var live []ProgressSink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return SinkFunc(func(evt Event) {
		for _, s := range live {
			s.OnEvent(evt)
		}
	})
}

// Counter tallies per-file events. Every file is queued once and finishes
// once, either done or error.
type Counter struct {
	queued   atomic.Int64
	finished atomic.Int64
	failed   atomic.Int64
}

func (c *Counter) OnEvent(evt Event) {
	if evt.File == "" {
		return
	}
	switch evt.Status {
	case StatusQueued:
		c.queued.Add(1)
	case StatusDone:
		c.finished.Add(1)
	case StatusError:
		c.finished.Add(1)
		c.failed.Add(1)
	}
}

// Snapshot returns queued, finished and failed counts.
func (c *Counter) Snapshot() (queued, finished, failed int64) {
	return c.queued.Load(), c.finished.Load(), c.failed.Load()
}

// String formats the counter for heartbeat events; empty before any file is queued.
func (c *Counter) String() string {
	queued, finished, failed := c.Snapshot()
	if queued == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d files, %d failed", finished, queued, failed)
}
