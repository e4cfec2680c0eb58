package svgps

import "fmt"

// ParseError reports malformed source shape parameters, such as an arc with
// a zero or negative radius. Parse errors are recovered locally: the bad
// primitive degrades to a straight line between its endpoints and the rest
// of the document is processed normally.
type ParseError struct {
	Op     string // the primitive that failed, e.g. "arc"
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svgps: parse %s: %s", e.Op, e.Reason)
}

// FormatError reports a malformed canonical (.svgcom) file. It is fatal for
// the read: callers must not trust any partially decoded data.
type FormatError struct {
	Field  string // the violated field, e.g. "header", "commands"
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("svgps: invalid svgcom %s: %s", e.Field, e.Reason)
}

// GeometryError reports degenerate occluder geometry, such as a zero-area
// fill. It is never fatal: the occluder simply contributes no coverage.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("svgps: degenerate geometry: %s", e.Reason)
}
