// Package server runs the HTTP transport of the user directory and shuts
// it down gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
