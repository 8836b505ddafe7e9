// Package graph executes a directed acyclic graph of typed tasks on a
// fixed-size worker pool.
//
// A task is a function of zero or more typed inputs producing zero or one
// typed output. Edges either carry the producer's result into a specific
// argument position of the consumer (Bind) or impose pure ordering (After).
// Independent tasks run in parallel; a task runs exactly once per Execute,
// as soon as its last prerequisite arrives.
//
// # Building a graph
//
//	g := graph.New(4)
//	defer g.Close()
//
//	a := graph.NewTask(g, "a", func() int { return 1 })
//	b := graph.NewTask1(g, "b", func(x int) int { return x + 2 })
//	c := graph.NewTask1(g, "c", func(x int) int { return x * 2 })
//	d := graph.NewTask2(g, "d", func(x, y int) int { return x % y })
//
//	graph.Bind(b, 0, a)
//	graph.Bind(c, 0, a)
//	graph.Bind(d, 0, b)
//	graph.Bind(d, 1, c)
//	d.MarkOutput()
//
//	if err := g.Execute(context.Background()); err != nil {
//		// a task panicked or the context was cancelled
//	}
//	v, err := d.Collect()
//
// # Results
//
// A shared result is retained past execution only for tasks marked with
// MarkOutput; otherwise it is dropped once every consumer has received its
// copy, and Collect fails with ErrNoResult. A task built with
// ExclusiveResult hands its value off instead of copying: at most one
// consumer may be wired, and a successful hand-off (or Collect) empties the
// slot. An exclusive result with no consumer stays in the slot until it is
// collected or Reset clears it.
//
// # Parameterized reruns
//
// Feed injects literals into argument positions that have no producer,
// making a graph a reusable computation template:
//
//	graph.Feed(b, 0, 10)
//	g.Execute(ctx)
//	g.Reset()
//	graph.Feed(b, 0, 20)
//	g.Execute(ctx)
//
// # Failure
//
// Task callables do not return errors; a callable that panics has the panic
// latched on its node as a *PanicError, its descendants are released
// without running (each carrying a *SkipError), and Execute returns the
// failure. A callable that never returns blocks Execute forever; there are
// no timeouts and no cancellation of a running callable.
//
// # Concurrency
//
// Graph construction is single-goroutine and must happen before Execute.
// During a run the engine's only shared mutable state per task is an atomic
// prerequisite counter; argument slots are each written exactly once before
// the task runs. Collect is meant for after Execute returns.
package graph
