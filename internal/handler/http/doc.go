// Package http implements the HTTP transport layer of the lockbox server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer;
// role-based authorization deliberately is not, because the service layer
// re-resolves roles from storage.
package http
