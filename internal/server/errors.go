package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMaxClientsReached    = errors.New("maximum clients reached")
	ErrListenerFailed       = errors.New("failed to create listener")
)
