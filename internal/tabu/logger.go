package tabu

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rbscholtus/qubocraft/internal/tabuutil"
)

// Logger provides dual-format progress reporting for a search session:
// console output is human-readable, file output is JSONL (one LogEvent
// per line) for offline analysis. Either writer may be nil to disable
// that channel. A nil *Logger is valid everywhere one is accepted;
// logging never influences search decisions.
type Logger struct {
	console   io.Writer
	file      io.Writer
	runID     string
	startTime time.Time
}

// NewLogger creates a Logger tagged with a fresh run identifier, so
// JSONL output from concurrent sessions can be demultiplexed after the
// fact by RunID.
func NewLogger(console, file io.Writer) *Logger {
	return &Logger{
		console:   console,
		file:      file,
		runID:     uuid.NewString(),
		startTime: time.Now(),
	}
}

// RunID returns the identifier stamped on every event this Logger
// emits.
func (l *Logger) RunID() string {
	return l.runID
}

// LogEvent is a single JSONL record.
type LogEvent struct {
	Event     string    `json:"event"`
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	ElapsedMs int64     `json:"elapsed_ms"`

	N          *int     `json:"n,omitempty"`
	Tenure     *int     `json:"tenure,omitempty"`
	DeadlineMs *int64   `json:"deadline_ms,omitempty"`
	Iteration  *int     `json:"iteration,omitempty"`
	Energy     *int64   `json:"energy,omitempty"`
	Restart    *int     `json:"restart,omitempty"`
	Restarts   *int     `json:"restarts,omitempty"`
	Message    string   `json:"message,omitempty"`
}

func (l *Logger) writeJSON(event LogEvent) {
	if l.file == nil {
		return
	}
	event.RunID = l.runID
	event.Timestamp = time.Now()
	event.ElapsedMs = time.Since(l.startTime).Milliseconds()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = l.file.Write(data)
}

// LogStart logs the beginning of a multistart session.
func (l *Logger) LogStart(n, tenure int, deadline time.Time) {
	if l.console != nil {
		tabuutil.MustFprintf(l.console, "starting tabu search: n=%d tenure=%d\n", n, tenure)
	}
	event := LogEvent{Event: "start", N: &n, Tenure: &tenure}
	if !deadline.IsZero() {
		ms := time.Until(deadline).Milliseconds()
		event.DeadlineMs = &ms
	}
	l.writeJSON(event)
}

// LogImprovement logs a new best energy found within a single STS run.
func (l *Logger) LogImprovement(iteration int, energy int64) {
	if l.console != nil {
		tabuutil.MustFprintf(l.console, "iter %d: improved to %d\n", iteration, energy)
	}
	l.writeJSON(LogEvent{Event: "improvement", Iteration: &iteration, Energy: &energy})
}

// LogTimeout logs that a run was cut short by the wall-clock deadline.
func (l *Logger) LogTimeout(iteration int) {
	if l.console != nil {
		tabuutil.MustFprintf(l.console, "iter %d: timeout reached\n", iteration)
	}
	l.writeJSON(LogEvent{Event: "timeout", Iteration: &iteration})
}

// LogRestart logs the start of a diversified restart.
func (l *Logger) LogRestart(restart int) {
	l.writeJSON(LogEvent{Event: "restart", Restart: &restart})
}

// LogGlobalImprovement logs when a restart improves on the global best.
func (l *Logger) LogGlobalImprovement(restart int, energy int64) {
	if l.console != nil {
		tabuutil.MustFprintf(l.console, "restart %d: new global best %d\n", restart, energy)
	}
	l.writeJSON(LogEvent{Event: "global_improvement", Restart: &restart, Energy: &energy})
}

// LogEnd logs the end of a multistart session.
func (l *Logger) LogEnd(bestEnergy int64, restarts int) {
	if l.console != nil {
		tabuutil.MustFprintf(l.console, "done: best=%d restarts=%d\n", bestEnergy, restarts)
	}
	l.writeJSON(LogEvent{Event: "end", Energy: &bestEnergy, Restarts: &restarts})
}
