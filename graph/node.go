package graph

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Node is the handle shared by every task registered in a Graph, whatever
// its callable signature. It is what linking and traversal operate on; the
// typed surface lives on Task and Action.
type Node interface {
	// Name returns the task name given at construction.
	Name() string

	node() *core
}

// typeFor returns the reflect.Type for V. Equivalent to reflect.TypeFor[V]()
// (Go 1.22+), reimplemented for compatibility with the Go 1.21 toolchain.
func typeFor[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}

// core holds the scheduler-facing state of one task: argument slots,
// readiness counters, subscriber lists and the latched failure. The typed
// callable and its result slot are captured by the invoke and clearResult
// closures built in the factory functions.
type core struct {
	name  string
	graph *Graph

	argTypes []reflect.Type
	setters  []func(any)
	bound    []bool
	fed      []bool

	parentCount int64
	pending     atomic.Int64

	// orderSubs tick a child when this task finishes; failSubs release a
	// child when this task fails. One failSub per outgoing edge of either
	// kind.
	orderSubs []func()
	failSubs  []func(error)

	outgoing []*core

	invoke      func()
	clearResult func()

	mu  sync.Mutex
	err error
}

// arrive records one satisfied prerequisite. The caller that drives pending
// to zero is the one that schedules the task.
func (c *core) arrive() {
	if c.pending.Add(-1) == 0 {
		c.graph.submit(c)
	}
}

// latch records the first failure observed for this task.
func (c *core) latch(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

func (c *core) failure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// inherit is registered on parents as the failure counterpart of a value or
// ordering subscription: the child will not receive its input, so it is
// released carrying the ancestor failure instead.
func (c *core) inherit(err error) {
	c.latch(&SkipError{Node: c.name, Cause: err})
	c.arrive()
}

func (c *core) propagate(err error) {
	for _, fail := range c.failSubs {
		fail(err)
	}
}

// execute runs on a pool worker once every prerequisite has arrived. A task
// that inherited a failure, or whose run was cancelled, skips its callable
// and releases its children; a callable panic is latched and treated the
// same way.
func (c *core) execute() {
	g := c.graph
	span := g.startNodeSpan(c.name)

	if c.failure() == nil {
		if err := g.runCtx.Err(); err != nil {
			c.latch(&SkipError{Node: c.name, Cause: err})
		}
	}

	if c.failure() == nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.latch(&PanicError{Node: c.name, Value: r})
				}
			}()
			c.invoke()
		}()
	}

	if err := c.failure(); err != nil {
		if _, ok := err.(*PanicError); ok {
			g.logger.Error("run %s: %v", g.runID, err)
		} else {
			g.logger.Debug("run %s: %v", g.runID, err)
		}
		g.recordErr(err)
		g.endNodeSpan(span, err)
		c.propagate(err)
		g.nodeDone()
		return
	}

	g.endNodeSpan(span, nil)
	for _, sub := range c.orderSubs {
		sub()
	}
	g.nodeDone()
}

func (c *core) reset() {
	c.pending.Store(c.parentCount)
	for i := range c.fed {
		c.fed[i] = false
	}
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
	if c.clearResult != nil {
		c.clearResult()
	}
}

// After declares ordering dependencies: child runs only after every parent
// has finished. No value is transferred.
func After(child Node, parents ...Node) {
	cc := child.node()
	for _, parent := range parents {
		pc := parent.node()
		cc.parentCount++
		cc.pending.Add(1)
		pc.orderSubs = append(pc.orderSubs, cc.arrive)
		pc.failSubs = append(pc.failSubs, cc.inherit)
		pc.outgoing = append(pc.outgoing, cc)
		pc.graph.edges = append(pc.graph.edges, edge{from: pc, to: cc, ordering: true})
	}
}

// Feed injects a literal value into argument position pos of a node that has
// no parent wired to that position, exactly as if a parent had delivered it.
// Together with Reset this parameterizes a graph between runs. Feed is part
// of graph construction and must not race with Execute.
func Feed[V any](n Node, pos int, v V) error {
	c := n.node()
	if pos < 0 || pos >= len(c.argTypes) {
		return fmt.Errorf("%s position %d: %w", c.name, pos, ErrPositionOutOfRange)
	}
	if c.bound[pos] {
		return fmt.Errorf("%s position %d: %w", c.name, pos, ErrPositionBound)
	}
	if c.fed[pos] {
		return fmt.Errorf("%s position %d: %w", c.name, pos, ErrPositionFed)
	}
	if vt := typeFor[V](); !vt.AssignableTo(c.argTypes[pos]) {
		return fmt.Errorf("%s position %d: %s is not assignable to %s: %w",
			c.name, pos, vt, c.argTypes[pos], ErrTypeMismatch)
	}
	c.setters[pos](v)
	c.fed[pos] = true
	c.pending.Add(-1)
	return nil
}
