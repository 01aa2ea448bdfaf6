// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty input, out-of-range reference).
	UserError = 1

	// AuthError indicates a missing or expired session, or a config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
