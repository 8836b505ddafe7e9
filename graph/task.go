package graph

import (
	"fmt"
	"reflect"
)

// TaskOption configures a task at construction time.
type TaskOption func(*taskSettings)

type taskSettings struct {
	exclusive bool
}

// ExclusiveResult marks the task's result as owned rather than shared: it is
// handed off to at most one consumer instead of being copied to each. Wiring
// a second consumer fails, and a successful hand-off (or Collect) empties
// the result slot.
func ExclusiveResult() TaskOption {
	return func(s *taskSettings) {
		s.exclusive = true
	}
}

// Task is a node whose callable produces a value of type R. Its result can
// be wired into children's argument slots with Bind and retrieved with
// Collect.
type Task[R any] struct {
	c *core

	valueSubs []func(R)
	result    R
	hasResult bool
	exclusive bool
	output    bool
}

// Name returns the task name given at construction.
func (t *Task[R]) Name() string { return t.c.name }

func (t *Task[R]) node() *core { return t.c }

// MarkOutput requests that the result survive execution so the host can
// Collect it afterwards. A task with an exclusive result that already feeds
// a consumer cannot also be an output: the single value cannot go to both.
func (t *Task[R]) MarkOutput() error {
	if t.exclusive && len(t.valueSubs) > 0 {
		return fmt.Errorf("%s: %w", t.c.name, ErrExclusiveOutput)
	}
	t.output = true
	return nil
}

// Collect retrieves the task's result. Shared results are returned as
// copies and remain collectable; an exclusive result is handed off, leaving
// the slot empty so further Collect calls fail. Collect fails with
// ErrNoResult when the slot is empty: the task has not run, the result went
// to a consumer, it was dropped because the task was not marked as output,
// or Reset cleared it.
func (t *Task[R]) Collect() (R, error) {
	if !t.hasResult {
		var zero R
		return zero, fmt.Errorf("%s: %w", t.c.name, ErrNoResult)
	}
	v := t.result
	if t.exclusive {
		t.drop()
	}
	return v, nil
}

// deliver stores the result and fans it out to subscribers. Exclusive
// results are handed to their single consumer and the slot emptied; shared
// results are copied to every consumer and dropped afterwards unless the
// task is marked as output.
func (t *Task[R]) deliver(v R) {
	t.result, t.hasResult = v, true
	if t.exclusive {
		if len(t.valueSubs) == 1 {
			r := t.result
			t.drop()
			t.valueSubs[0](r)
		}
		return
	}
	for _, sub := range t.valueSubs {
		sub(t.result)
	}
	if !t.output {
		t.drop()
	}
}

func (t *Task[R]) drop() {
	var zero R
	t.result, t.hasResult = zero, false
}

// Action is a node whose callable produces no value. It can only be the
// source of ordering edges; the compiler rules out wiring its (nonexistent)
// result anywhere.
type Action struct {
	c *core
}

// Name returns the action name given at construction.
func (a *Action) Name() string { return a.c.name }

func (a *Action) node() *core { return a.c }

// Bind wires parent's result into argument position pos of child. The child
// becomes ready only after the value has been delivered. Fails when pos is
// out of range, already bound or fed, when the parent's result type is not
// assignable to the slot, or when the parent's exclusive result is already
// spoken for (a consumer or the output marker).
func Bind[R any](child Node, pos int, parent *Task[R]) error {
	cc := child.node()
	pc := parent.c
	if pos < 0 || pos >= len(cc.argTypes) {
		return fmt.Errorf("%s position %d: %w", cc.name, pos, ErrPositionOutOfRange)
	}
	if cc.bound[pos] {
		return fmt.Errorf("%s position %d: %w", cc.name, pos, ErrPositionBound)
	}
	if cc.fed[pos] {
		return fmt.Errorf("%s position %d: %w", cc.name, pos, ErrPositionFed)
	}
	if rt := typeFor[R](); !rt.AssignableTo(cc.argTypes[pos]) {
		return fmt.Errorf("%s position %d: %s result %s is not assignable to %s: %w",
			cc.name, pos, pc.name, rt, cc.argTypes[pos], ErrTypeMismatch)
	}
	if parent.exclusive {
		if len(parent.valueSubs) > 0 {
			return fmt.Errorf("%s: %w", pc.name, ErrExclusiveFanOut)
		}
		if parent.output {
			return fmt.Errorf("%s: %w", pc.name, ErrExclusiveOutput)
		}
	}

	setSlot := cc.setters[pos]
	parent.valueSubs = append(parent.valueSubs, func(v R) {
		setSlot(v)
		cc.arrive()
	})
	cc.bound[pos] = true
	pc.failSubs = append(pc.failSubs, cc.inherit)
	pc.outgoing = append(pc.outgoing, cc)
	pc.graph.edges = append(pc.graph.edges, edge{from: pc, to: cc, pos: pos})
	return nil
}

func newTask[R any](opts []TaskOption) *Task[R] {
	var s taskSettings
	for _, opt := range opts {
		opt(&s)
	}
	return &Task[R]{exclusive: s.exclusive}
}

// NewTask registers a task with no inputs producing an R.
func NewTask[R any](g *Graph, name string, fn func() R, opts ...TaskOption) *Task[R] {
	t := newTask[R](opts)
	t.c = g.register(name, nil, nil)
	t.c.invoke = func() { t.deliver(fn()) }
	t.c.clearResult = t.drop
	return t
}

// NewTask1 registers a task with one input producing an R.
func NewTask1[A0, R any](g *Graph, name string, fn func(A0) R, opts ...TaskOption) *Task[R] {
	t := newTask[R](opts)
	var a0 A0
	t.c = g.register(name,
		[]reflect.Type{typeFor[A0]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
		})
	t.c.invoke = func() { t.deliver(fn(a0)) }
	t.c.clearResult = t.drop
	return t
}

// NewTask2 registers a task with two inputs producing an R.
func NewTask2[A0, A1, R any](g *Graph, name string, fn func(A0, A1) R, opts ...TaskOption) *Task[R] {
	t := newTask[R](opts)
	var a0 A0
	var a1 A1
	t.c = g.register(name,
		[]reflect.Type{typeFor[A0](), typeFor[A1]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
		})
	t.c.invoke = func() { t.deliver(fn(a0, a1)) }
	t.c.clearResult = t.drop
	return t
}

// NewTask3 registers a task with three inputs producing an R.
func NewTask3[A0, A1, A2, R any](g *Graph, name string, fn func(A0, A1, A2) R, opts ...TaskOption) *Task[R] {
	t := newTask[R](opts)
	var a0 A0
	var a1 A1
	var a2 A2
	t.c = g.register(name,
		[]reflect.Type{typeFor[A0](), typeFor[A1](), typeFor[A2]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
			func(v any) { a2 = v.(A2) },
		})
	t.c.invoke = func() { t.deliver(fn(a0, a1, a2)) }
	t.c.clearResult = t.drop
	return t
}

// NewTask4 registers a task with four inputs producing an R.
func NewTask4[A0, A1, A2, A3, R any](g *Graph, name string, fn func(A0, A1, A2, A3) R, opts ...TaskOption) *Task[R] {
	t := newTask[R](opts)
	var a0 A0
	var a1 A1
	var a2 A2
	var a3 A3
	t.c = g.register(name,
		[]reflect.Type{
			typeFor[A0](), typeFor[A1](),
			typeFor[A2](), typeFor[A3](),
		},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
			func(v any) { a2 = v.(A2) },
			func(v any) { a3 = v.(A3) },
		})
	t.c.invoke = func() { t.deliver(fn(a0, a1, a2, a3)) }
	t.c.clearResult = t.drop
	return t
}

// NewAction registers a task with no inputs and no result.
func NewAction(g *Graph, name string, fn func()) *Action {
	act := &Action{}
	act.c = g.register(name, nil, nil)
	act.c.invoke = fn
	return act
}

// NewAction1 registers a task with one input and no result.
func NewAction1[A0 any](g *Graph, name string, fn func(A0)) *Action {
	act := &Action{}
	var a0 A0
	act.c = g.register(name,
		[]reflect.Type{typeFor[A0]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
		})
	act.c.invoke = func() { fn(a0) }
	return act
}

// NewAction2 registers a task with two inputs and no result.
func NewAction2[A0, A1 any](g *Graph, name string, fn func(A0, A1)) *Action {
	act := &Action{}
	var a0 A0
	var a1 A1
	act.c = g.register(name,
		[]reflect.Type{typeFor[A0](), typeFor[A1]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
		})
	act.c.invoke = func() { fn(a0, a1) }
	return act
}

// NewAction3 registers a task with three inputs and no result.
func NewAction3[A0, A1, A2 any](g *Graph, name string, fn func(A0, A1, A2)) *Action {
	act := &Action{}
	var a0 A0
	var a1 A1
	var a2 A2
	act.c = g.register(name,
		[]reflect.Type{typeFor[A0](), typeFor[A1](), typeFor[A2]()},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
			func(v any) { a2 = v.(A2) },
		})
	act.c.invoke = func() { fn(a0, a1, a2) }
	return act
}

// NewAction4 registers a task with four inputs and no result.
func NewAction4[A0, A1, A2, A3 any](g *Graph, name string, fn func(A0, A1, A2, A3)) *Action {
	act := &Action{}
	var a0 A0
	var a1 A1
	var a2 A2
	var a3 A3
	act.c = g.register(name,
		[]reflect.Type{
			typeFor[A0](), typeFor[A1](),
			typeFor[A2](), typeFor[A3](),
		},
		[]func(any){
			func(v any) { a0 = v.(A0) },
			func(v any) { a1 = v.(A1) },
			func(v any) { a2 = v.(A2) },
			func(v any) { a3 = v.(A3) },
		})
	act.c.invoke = func() { fn(a0, a1, a2, a3) }
	return act
}
