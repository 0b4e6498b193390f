package server

// Server is the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives or
	// the listener fails.
	RunServer()

	// Shutdown gracefully stops the server, letting in-flight requests
	// finish.
	Shutdown()
}
