package service

import "fmt"

// BackendError reports a failed backend call: either the request never
// completed (Status 0, Err set) or the server answered non-2xx.
// All non-2xx responses are treated uniformly; callers do not branch on
// the status code.
type BackendError struct {
	Op     string
	Status int
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
