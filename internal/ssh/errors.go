package ssh

import "errors"

var (
	// ErrAuth is returned when the server rejects the supplied credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrVerification is returned when the transport accepted the credentials
	// but the remote identity does not match the requested username.
	ErrVerification = errors.New("identity verification failed")

	// ErrTimeout is returned when the connection attempt times out.
	ErrTimeout = errors.New("connection timed out")

	// ErrNotConnected is returned by operations that require a live connection.
	ErrNotConnected = errors.New("not connected")

	// ErrShellNotRunning is returned by shell operations outside the Running state.
	ErrShellNotRunning = errors.New("interactive shell not running")
)
