// Package api provides the HTTP API server for Glance.
// It serves the v2 image and image-tag endpoints over the in-memory
// store, optional bearer-token authentication, and the Prometheus
// metrics endpoint.
//
// Key components:
//   - Server: HTTP server with token auth and graceful shutdown.
//   - Handler: Image and tag endpoint implementations.
//   - RegisterRoutes: Wires handlers and the metrics route onto a server.
package api
