package domain

import "fmt"

// FormatError reports a structurally invalid world file.
type FormatError struct {
	Line int // 1-based source line, 0 when not tied to a line
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("world format: line %d: %s", e.Line, e.Msg)
	}
	return "world format: " + e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// UsageError reports a bad command invocation (argument count, algorithm name).
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Unwrap() error { return e.Err }
