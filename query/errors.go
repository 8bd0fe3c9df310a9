package query

import "errors"

// CompileError reports a chain the compiler cannot fold: an empty chain, or
// a non-Where operation after the first. Both are caller contract
// violations, never recovered.
type CompileError struct {
	Reason string
}

func (e *CompileError) Error() string {
	return "query: cannot compile chain: " + e.Reason
}

// IsCompile reports whether err is (or wraps) a CompileError.
func IsCompile(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}
