// Package diag provides an injectable diagnostic sink for reporting
// failures with call-site context.
//
// # Overview
//
// Library packages in this module never print or log on their own.
// Instead, each component accepts an optional *Sink; every reported
// failure is delivered to the sink's handler together with the function
// name, file name, and line number of the reporting call site.
//
// Diagnostics are purely observational: reporting never affects control
// flow or return values.
//
// # Basic Usage
//
//	sink := diag.New(func(e diag.Entry) {
//	    log.Printf("%s (%s:%d): %s", e.Func, e.File, e.Line, e.Msg)
//	})
//
//	dev, err := regmap.New(16, 4, read, write,
//	    regmap.WithDiagnostics(sink),
//	)
//
// # Quiet Mode
//
// A sink can be silenced for a bounded stretch of code, such as a test
// that deliberately provokes failures:
//
//	sink.Silence(true)
//	defer sink.Silence(false)
//
// Silencing is scoped to the one sink; there is no process-wide state.
//
// # Nil Safety
//
// All methods are safe on a nil *Sink, so components may report
// unconditionally without checking whether diagnostics were configured.
package diag
