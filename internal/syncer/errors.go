package syncer

import "errors"

// ErrorKind identifies the local validation failure kept in the state for
// inline display. Backend failures are never stored here: they either
// return to the caller (loud channel) or go to the log (quiet channel).
type ErrorKind int

const (
	// ErrorNone means no pending inline error.
	ErrorNone ErrorKind = iota

	// ErrorEmptyInput means the last add was rejected for empty text.
	ErrorEmptyInput
)

// ErrEmptyInput rejects an add whose trimmed text is empty.
// Checked before any network call.
var ErrEmptyInput = errors.New("task text must not be empty")

// ErrMissingSession means no valid token was found in the credential
// store when a mutating action was attempted. It signals a session that
// expired between actions and is surfaced loudly.
var ErrMissingSession = errors.New("no active session (run: taskwire login)")
