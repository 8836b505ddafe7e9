// Package log provides the logging facade used by the graphex engine.
//
// The engine logs through the Logger interface so that host programs can
// route messages into whatever logging stack they already run. Three
// implementations ship with the package:
//
//   - LeveledLogger: standard-library logger with level filtering
//   - Nop: discards everything
//   - Golog: adapter over github.com/kataras/golog
//
// A package-level default (Default / SetDefault / SetLevel) is used by
// graphs that were not given a logger explicitly:
//
//	log.SetLevel(log.DebugLevel)
//
//	g := graph.New(4)
//	defer g.Close()
//
// Or with golog:
//
//	glogger := golog.New()
//	log.SetDefault(log.NewGolog(glogger))
package log
