package graph

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TraceEvent classifies what a span describes.
type TraceEvent string

const (
	// TraceRunStart marks the beginning of an Execute call.
	TraceRunStart TraceEvent = "run_start"

	// TraceRunEnd marks the completion of an Execute call.
	TraceRunEnd TraceEvent = "run_end"

	// TraceNodeStart marks a task being picked up by a worker.
	TraceNodeStart TraceEvent = "node_start"

	// TraceNodeEnd marks a task finishing successfully.
	TraceNodeEnd TraceEvent = "node_end"

	// TraceNodeFailure marks a task that panicked or was skipped.
	TraceNodeFailure TraceEvent = "node_failure"
)

// Span is one timed unit of a run: the run itself or a single task.
type Span struct {
	// ID uniquely identifies the span.
	ID string

	// RunID ties the span to one Execute call.
	RunID string

	// Event is the span's current classification. It starts as a *_start
	// event and is rewritten to the terminal event when the span finishes.
	Event TraceEvent

	// Node is the task name, empty for run spans.
	Node string

	// Start and End bound the span; End is zero while it is open.
	Start time.Time
	End   time.Time

	// Duration is filled in when the span finishes.
	Duration time.Duration

	// Err is the task failure, if any.
	Err error
}

// Hook receives span notifications, once when a span opens and once when it
// finishes. Hooks are called from worker goroutines and must be safe for
// concurrent use.
type Hook interface {
	OnEvent(span *Span)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(span *Span)

// OnEvent implements Hook.
func (f HookFunc) OnEvent(span *Span) { f(span) }

// Tracer collects spans for the runs of a graph and fans them out to
// registered hooks. Safe for concurrent use.
type Tracer struct {
	mu    sync.Mutex
	hooks []Hook
	spans []*Span
}

// NewTracer creates an empty tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// AddHook registers a hook. Register hooks before the graph executes.
func (t *Tracer) AddHook(hook Hook) {
	t.mu.Lock()
	t.hooks = append(t.hooks, hook)
	t.mu.Unlock()
}

// Spans returns a snapshot of every span recorded so far.
func (t *Tracer) Spans() []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Span, len(t.spans))
	copy(out, t.spans)
	return out
}

func (t *Tracer) begin(runID string, event TraceEvent, node string) *Span {
	span := &Span{
		ID:    uuid.NewString(),
		RunID: runID,
		Event: event,
		Node:  node,
		Start: time.Now(),
	}
	t.mu.Lock()
	t.spans = append(t.spans, span)
	hooks := t.hooks
	t.mu.Unlock()
	for _, hook := range hooks {
		hook.OnEvent(span)
	}
	return span
}

func (t *Tracer) finish(span *Span, event TraceEvent, err error) {
	span.End = time.Now()
	span.Duration = span.End.Sub(span.Start)
	span.Event = event
	span.Err = err
	t.mu.Lock()
	hooks := t.hooks
	t.mu.Unlock()
	for _, hook := range hooks {
		hook.OnEvent(span)
	}
}

func (g *Graph) startRunSpan() *Span {
	if g.tracer == nil {
		return nil
	}
	return g.tracer.begin(g.runID, TraceRunStart, "")
}

func (g *Graph) endRunSpan(span *Span, err error) {
	if span == nil {
		return
	}
	g.tracer.finish(span, TraceRunEnd, err)
}

func (g *Graph) startNodeSpan(node string) *Span {
	if g.tracer == nil {
		return nil
	}
	return g.tracer.begin(g.runID, TraceNodeStart, node)
}

func (g *Graph) endNodeSpan(span *Span, err error) {
	if span == nil {
		return
	}
	event := TraceNodeEnd
	if err != nil {
		event = TraceNodeFailure
	}
	g.tracer.finish(span, event, err)
}
