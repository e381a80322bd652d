package resolver

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// Reporter receives the recoverable problems found while resolving a feed.
// Implementations must be safe for concurrent use as the table scans can run
// in parallel.
type Reporter interface {
	Report(err error)
}

type kinded interface {
	Kind() string
}

// DiagnosticKind returns the short kind name of a diagnostic, or "unknown".
func DiagnosticKind(err error) string {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}

	return "unknown"
}

// LogReporter writes every diagnostic as a warning on the global logger.
type LogReporter struct{}

func (LogReporter) Report(err error) {
	event := log.Warn().Str("kind", DiagnosticKind(err))

	var missingShape *MissingShapeForRoute
	var geometry *GeometryError
	var malformedTime *MalformedTimeValue
	switch {
	case errors.As(err, &missingShape):
		event = event.Str("route", missingShape.RouteID)
	case errors.As(err, &geometry):
		event = event.Str("route", geometry.RouteID).Str("shape", geometry.ShapeID)
	case errors.As(err, &malformedTime):
		event = event.Str("trip", malformedTime.TripID)
	}

	event.Err(err).Msg("Diagnostic")
}

// CollectingReporter keeps every diagnostic in memory, optionally passing
// them on to another Reporter.
type CollectingReporter struct {
	Next Reporter

	mutex       sync.Mutex
	diagnostics []error
}

func (c *CollectingReporter) Report(err error) {
	c.mutex.Lock()
	c.diagnostics = append(c.diagnostics, err)
	c.mutex.Unlock()

	if c.Next != nil {
		c.Next.Report(err)
	}
}

func (c *CollectingReporter) Diagnostics() []error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]error(nil), c.diagnostics...)
}

// Counts returns the number of diagnostics seen per kind.
func (c *CollectingReporter) Counts() map[string]int {
	counts := map[string]int{}
	for _, diagnostic := range c.Diagnostics() {
		counts[DiagnosticKind(diagnostic)]++
	}

	return counts
}
