// Package observability wires structured logging, request correlation and
// Prometheus metrics into the HTTP server.
package observability
