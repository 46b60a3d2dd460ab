package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits KindHeartbeat events while a command runs.
// Heartbeats without new end events point at a stuck worker; the
// optional status text (e.g. "3/10 files") shows how far the run got.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	status   func() string
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// StartHeartbeat starts the heartbeat goroutine. status may be nil.
// Returns nil when tracing is disabled or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		status:   status,
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var beat uint64
	for {
		select {
		case <-ticker.C:
			beat++
			h.tracer.Emit(h.event(beat))
		case <-h.stopCh:
			return
		}
	}
}

func (h *Heartbeat) event(beat uint64) *Event {
	detail := fmt.Sprintf("#%d", beat)
	if h.status != nil {
		if s := h.status(); s != "" {
			detail += " " + s
		}
	}
	return &Event{
		Time:   time.Now(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		Name:   "heartbeat",
		Detail: detail,
	}
}

// Stop ends the goroutine and waits for it. Safe to call more than once and on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}
