package graph

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/heiseish/graphex/log"
)

// edge records one dependency for traversal and export. Value edges carry
// the argument position they deliver into; ordering edges carry no value.
type edge struct {
	from, to *core
	pos      int
	ordering bool
}

// Graph owns a set of tasks, the worker pool that runs them, and the
// bookkeeping for one execution at a time. Construction (factories, Bind,
// After, Feed) is single-goroutine; Execute fans the work out.
type Graph struct {
	pool  *workerPool
	nodes []*core
	edges []edge

	logger log.Logger
	tracer *Tracer

	mu       sync.Mutex
	cond     *sync.Cond
	finished int
	err      error
	executed bool
	closed   bool

	// runCtx and runID are written once per Execute before any task is
	// submitted, then only read by workers.
	runCtx context.Context
	runID  string
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithLogger routes the engine's log output to the given logger instead of
// the log package default.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithTracer attaches a tracer that observes run and task spans.
func WithTracer(tracer *Tracer) Option {
	return func(g *Graph) {
		g.tracer = tracer
	}
}

// New creates a Graph executing tasks on the given number of workers.
// A worker count below 1 is normalized to 1. Close releases the workers.
func New(workers int, opts ...Option) *Graph {
	g := &Graph{
		pool:   newWorkerPool(workers),
		logger: log.Default(),
		runCtx: context.Background(),
	}
	g.cond = sync.NewCond(&g.mu)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// register creates the scheduler-facing state for a new task. The initial
// parent count equals the callable's arity; ordering edges raise it later.
func (g *Graph) register(name string, argTypes []reflect.Type, setters []func(any)) *core {
	c := &core{
		name:        name,
		graph:       g,
		argTypes:    argTypes,
		setters:     setters,
		bound:       make([]bool, len(argTypes)),
		fed:         make([]bool, len(argTypes)),
		parentCount: int64(len(argTypes)),
	}
	c.pending.Store(c.parentCount)
	g.nodes = append(g.nodes, c)
	return c
}

// HasCycle reports whether the dependency relation contains a cycle. The
// check walks nodes and their outgoing edges in insertion order, so the
// answer is deterministic. It is advisory: Execute does not re-check.
func (g *Graph) HasCycle() bool {
	const (
		gray = iota + 1
		black
	)
	color := make(map[*core]int, len(g.nodes))
	var visit func(*core) bool
	visit = func(c *core) bool {
		color[c] = gray
		for _, next := range c.outgoing {
			switch color[next] {
			case gray:
				return true
			case black:
			default:
				if visit(next) {
					return true
				}
			}
		}
		color[c] = black
		return false
	}
	for _, c := range g.nodes {
		if color[c] == 0 && visit(c) {
			return true
		}
	}
	return false
}

// Reset clears every result slot, latched failure and fed value, restores
// all pending counts, and makes the graph executable again. Values injected
// with Feed must be fed again before the next run.
func (g *Graph) Reset() {
	for _, c := range g.nodes {
		c.reset()
	}
	g.mu.Lock()
	g.finished = 0
	g.err = nil
	g.executed = false
	g.mu.Unlock()
}

// Execute runs the graph to completion and blocks until every registered
// task has finished. Tasks with no unsatisfied prerequisites are submitted
// immediately; each finishing task releases its children, and the child
// whose last prerequisite arrives is submitted by that delivery. Execute
// returns the first task failure (a *PanicError, or a *SkipError wrapping
// the context error if ctx was cancelled between tasks), ErrAlreadyExecuted when called again
// without Reset, or ErrClosed after Close. Cancellation skips tasks that
// have not started; it never interrupts a running callable.
func (g *Graph) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if g.executed {
		g.mu.Unlock()
		return ErrAlreadyExecuted
	}
	g.executed = true
	g.finished = 0
	g.err = nil
	g.mu.Unlock()

	g.runCtx = ctx
	g.runID = uuid.NewString()

	total := len(g.nodes)
	g.logger.Debug("run %s: executing %d tasks on %d workers", g.runID, total, g.pool.size)
	span := g.startRunSpan()
	if total == 0 {
		g.endRunSpan(span, nil)
		return nil
	}

	for _, c := range g.nodes {
		if c.pending.Load() == 0 {
			g.submit(c)
		}
	}

	g.mu.Lock()
	for g.finished < total {
		g.cond.Wait()
	}
	err := g.err
	g.mu.Unlock()

	g.endRunSpan(span, err)
	if err != nil {
		g.logger.Error("run %s: finished with failure: %v", g.runID, err)
	} else {
		g.logger.Debug("run %s: all %d tasks finished", g.runID, total)
	}
	return err
}

// Close shuts the worker pool down and joins the workers. The graph cannot
// execute afterwards.
func (g *Graph) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()
	g.pool.shutdown()
}

func (g *Graph) submit(c *core) {
	g.logger.Debug("run %s: scheduling %s", g.runID, c.name)
	g.pool.submit(c.execute)
}

func (g *Graph) nodeDone() {
	g.mu.Lock()
	g.finished++
	if g.finished == len(g.nodes) {
		g.cond.Broadcast()
	}
	g.mu.Unlock()
}

func (g *Graph) recordErr(err error) {
	g.mu.Lock()
	if g.err == nil {
		g.err = err
	}
	g.mu.Unlock()
}
