// Package diagnostics is the planner's optional observer: every local
// recovery the planner performs is reported through a Sink when one is
// supplied, and silently skipped when it is nil.
package diagnostics

import "log"

// Kind names a class of local recovery the planner can perform.
type Kind string

const (
	DegeneratePolygon Kind = "degenerate_polygon"
	OffsetSaturation  Kind = "offset_saturation"
	LinkFailure       Kind = "link_failure"
	EmptyBlockSet     Kind = "empty_block_set"
	NoValidBestAngle  Kind = "no_valid_best_angle"
	ResidualBlocks    Kind = "residual_blocks"
)

// Event is one reported occurrence. Detail carries kind-specific context
// (e.g. the pass index for a LinkFailure event) and is left as
// interface{} since callers inspect it by Kind, not by type-switching
// broadly.
type Event struct {
	Kind    Kind
	Message string
	Detail  interface{}
}

// Sink collects Events for later inspection and, when non-nil, writes
// a log line for each one
// through Logf. A nil *Sink is a valid receiver for Report: local recovery
// proceeds identically, just unreported.
type Sink struct {
	Events []Event
}

// Report appends an Event and logs it. Safe to call on a nil Sink.
func (s *Sink) Report(kind Kind, message string, detail interface{}) {
	if s == nil {
		return
	}
	s.Events = append(s.Events, Event{Kind: kind, Message: message, Detail: detail})
	Logf("[%s] %s", kind, message)
}

// Logf is the package-level log function: standard library by default,
// replaceable globally via SetLogger.
var Logf = log.Printf

// SetLogger replaces Logf, e.g. to route diagnostics through a structured
// logger instead of the standard library's.
func SetLogger(f func(format string, args ...interface{})) {
	Logf = f
}
