package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Entry describes one reported failure, including the call site that
// reported it.
type Entry struct {
	// Func is the fully qualified name of the reporting function
	Func string

	// File is the base name of the reporting source file
	File string

	// Line is the line number of the reporting call
	Line int

	// Msg is the failure description
	Msg string
}

// Handler receives diagnostic entries. Implementations should return
// quickly; they are called synchronously from the failing operation.
type Handler func(Entry)

// Sink routes failure reports to a handler. A nil *Sink discards all
// reports.
type Sink struct {
	handler Handler
	quiet   bool
}

// New creates a sink delivering entries to the given handler.
func New(handler Handler) *Sink {
	return &Sink{handler: handler}
}

// Silence suppresses (or re-enables) reporting on this sink.
func (s *Sink) Silence(quiet bool) {
	if s == nil {
		return
	}
	s.quiet = quiet
}

// Report delivers a message to the handler with the caller's context.
func (s *Sink) Report(msg string) {
	s.emit(msg)
}

// Reportf is Report with fmt.Sprintf formatting.
func (s *Sink) Reportf(format string, args ...interface{}) {
	s.emit(fmt.Sprintf(format, args...))
}

func (s *Sink) emit(msg string) {
	if s == nil || s.quiet || s.handler == nil {
		return
	}

	// skip emit and its exported wrapper to land on the reporting site
	e := Entry{Msg: msg}
	pc, file, line, ok := runtime.Caller(2)
	if ok {
		e.File = filepath.Base(file)
		e.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.Func = fn.Name()
		}
	}

	s.handler(e)
}
