package sitepage

import "fmt"

// DescribeValidationError produces a single-line human-readable summary of a
// validation failure. It prefers the first structural sub-error's path and
// message, falls back to the location tag plus the top-level message, then
// the bare message, then a generic string. It never panics, so it is safe to
// call from top-level error-reporting paths.
func DescribeValidationError(err error) string {
	const fallback = "validation failed"
	if err == nil {
		return fallback
	}
	e, ok := AsError(err)
	if !ok {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return fallback
	}
	if len(e.Issues) > 0 {
		first := e.Issues[0]
		path := first.Path
		if path == "" {
			path = "/"
		}
		return fmt.Sprintf("%s: %s", path, first.Message)
	}
	if e.Where != "" && e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Where, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
