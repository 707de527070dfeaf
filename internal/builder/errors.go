package builder

import "fmt"

// SurfaceParseError reports malformed command-line input against the built
// grammar: an unknown flag, wrong arity, a conflicting flag pair, or a value
// outside an enumerated set. It carries the usage text so front-ends can
// print it before exiting non-zero.
type SurfaceParseError struct {
	Err   error
	Flag  string // offending flag, when known
	Usage string
}

func (e *SurfaceParseError) Error() string {
	return fmt.Sprintf("%v", e.Err)
}

func (e *SurfaceParseError) Unwrap() error {
	return e.Err
}
