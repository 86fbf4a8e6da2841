package events

import (
	"context"
	"fmt"
	"sync"

	"lathe/internal/records"
)

// Recorder is a Listener that keeps an ordered trace of everything it saw.
// It exists for tests and for the CLI summary at the end of a run.
type Recorder struct {
	mu       sync.Mutex
	trace    []string
	started  []records.Record
	outcomes []FormatOutcome
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) EncodingStarted(_ context.Context, owner records.OwnerRef) {
	r.append("encoding_started "+owner.String(), nil)
}

func (r *Recorder) FormatStarted(_ context.Context, owner records.OwnerRef, record records.Record) {
	r.mu.Lock()
	r.started = append(r.started, record)
	r.mu.Unlock()
	r.append(fmt.Sprintf("format_started %s %s", owner, record.Format), nil)
}

func (r *Recorder) FormatFinished(_ context.Context, outcome FormatOutcome) {
	r.append(fmt.Sprintf("format_finished %s %s %s", outcome.Owner, outcome.Format, outcome.Result), &outcome)
}

func (r *Recorder) EncodingFinished(_ context.Context, owner records.OwnerRef) {
	r.append("encoding_finished "+owner.String(), nil)
}

// Trace returns a copy of the event lines in arrival order.
func (r *Recorder) Trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.trace...)
}

// Started returns every FormatStarted record snapshot in arrival order.
func (r *Recorder) Started() []records.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]records.Record(nil), r.started...)
}

// Outcomes returns every FormatFinished payload in arrival order.
func (r *Recorder) Outcomes() []FormatOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FormatOutcome(nil), r.outcomes...)
}

func (r *Recorder) append(line string, outcome *FormatOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = append(r.trace, line)
	if outcome != nil {
		r.outcomes = append(r.outcomes, *outcome)
	}
}
