package graph

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracer_RecordsRunAndNodeSpans(t *testing.T) {
	tracer := NewTracer()
	g := New(4, WithTracer(tracer))
	defer g.Close()
	buildDiamond(t, g)

	require.NoError(t, g.Execute(context.Background()))

	spans := tracer.Spans()
	require.Len(t, spans, 5)

	var runSpans, nodeSpans int
	runID := spans[0].RunID
	names := map[string]bool{}
	for _, span := range spans {
		assert.Equal(t, runID, span.RunID)
		assert.False(t, span.End.IsZero())
		assert.GreaterOrEqual(t, span.Duration, time.Duration(0))
		assert.NoError(t, span.Err)
		switch span.Event {
		case TraceRunEnd:
			runSpans++
		case TraceNodeEnd:
			nodeSpans++
			names[span.Node] = true
		default:
			t.Fatalf("unexpected terminal event %s", span.Event)
		}
	}
	assert.Equal(t, 1, runSpans)
	assert.Equal(t, 4, nodeSpans)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, names)
}

func TestTracer_HooksSeeOpenAndClosedSpans(t *testing.T) {
	tracer := NewTracer()
	var mu sync.Mutex
	events := 0
	tracer.AddHook(HookFunc(func(span *Span) {
		mu.Lock()
		events++
		mu.Unlock()
	}))

	g := New(2, WithTracer(tracer))
	defer g.Close()
	NewAction(g, "only", func() {})

	require.NoError(t, g.Execute(context.Background()))

	// One run span and one node span, each reported twice.
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, events)
}

func TestTracer_FailureSpans(t *testing.T) {
	tracer := NewTracer()
	g := New(2, WithTracer(tracer))
	defer g.Close()

	bad := NewTask(g, "bad", func() int { panic("x") })
	next := NewTask1(g, "next", func(x int) int { return x })
	require.NoError(t, Bind(next, 0, bad))

	require.Error(t, g.Execute(context.Background()))

	failures := map[string]bool{}
	for _, span := range tracer.Spans() {
		if span.Event == TraceNodeFailure {
			failures[span.Node] = true
			assert.Error(t, span.Err)
		}
	}
	assert.Equal(t, map[string]bool{"bad": true, "next": true}, failures)
}

func TestTracer_DistinctRunIDsAcrossRuns(t *testing.T) {
	tracer := NewTracer()
	g := New(1, WithTracer(tracer))
	defer g.Close()
	NewAction(g, "only", func() {})

	require.NoError(t, g.Execute(context.Background()))
	g.Reset()
	require.NoError(t, g.Execute(context.Background()))

	ids := map[string]bool{}
	for _, span := range tracer.Spans() {
		ids[span.RunID] = true
	}
	assert.Len(t, ids, 2)
}
