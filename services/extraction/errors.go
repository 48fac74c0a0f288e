package extraction

import "fmt"

// FormatError signals that the extractor's output could not be parsed into
// the expected structured shape. The turn that hit it must leave all
// conversation state untouched.
type FormatError struct {
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed extraction output: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("malformed extraction output: %s", e.Detail)
}

func (e *FormatError) Unwrap() error { return e.Err }
