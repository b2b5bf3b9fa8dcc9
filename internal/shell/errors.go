package shell

import "errors"

var (
	ErrShellAlreadyRunning = errors.New("shell is already running")
	ErrNilDispatcher       = errors.New("shell requires a dispatcher")
)
