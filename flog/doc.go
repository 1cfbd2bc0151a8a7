// Package flog provides the small leveled-logging interface used by the
// flow engine's ambient diagnostics: run start, lifecycle-hook failures,
// drained update errors, and cancellation.
//
// The engine never requires a logger — every component accepts a nil
// flog.Logger and treats it as NoOpLogger — but when one is supplied it is
// used the way a production graph runtime logs its own control flow, not
// the application data flowing through it.
//
// Two implementations are provided: DefaultLogger, backed by the standard
// library's log.Logger, and GologLogger, a thin adapter over
// github.com/kataras/golog for applications that already use it elsewhere.
package flog
