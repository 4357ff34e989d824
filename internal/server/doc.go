// Package server wires and runs the application's HTTP server together
// with its background workers.
//
// It owns the lifecycle: startup, signal handling, and graceful shutdown of
// the listener and every worker.
package server
