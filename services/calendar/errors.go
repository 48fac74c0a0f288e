package calendar

import "fmt"

// DispatchError signals that the calendar provider rejected the event.
type DispatchError struct {
	Detail string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed: %s", e.Detail)
}

func (e *DispatchError) Unwrap() error { return e.Err }
