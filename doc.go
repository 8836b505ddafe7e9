// GraphEx - Typed Task Graph Execution for Go
//
// GraphEx executes a directed acyclic graph of typed tasks with
// concurrency. Tasks are plain functions; edges either carry a producer's
// result into a specific argument position of a consumer or impose pure
// ordering. Independent tasks run in parallel on a fixed-size worker pool,
// and each task runs exactly once per execution.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/heiseish/graphex
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/heiseish/graphex/graph"
//	)
//
//	func main() {
//		g := graph.New(4)
//		defer g.Close()
//
//		a := graph.NewTask(g, "a", func() int { return 1 })
//		b := graph.NewTask1(g, "b", func(x int) int { return x + 2 })
//		graph.Bind(b, 0, a)
//		b.MarkOutput()
//
//		if err := g.Execute(context.Background()); err != nil {
//			panic(err)
//		}
//		v, _ := b.Collect()
//		fmt.Println(v) // 3
//	}
//
// # Packages
//
//   - graph: the engine itself - graph construction, typed linking, cycle
//     detection, the worker pool, execution, tracing and export
//   - log: the logging facade with standard-library and golog backends
//
// See the graph package documentation for further examples.
package graphex
