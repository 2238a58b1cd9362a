// Package http exposes the dataset CRUD contract over HTTP: a chi router
// with four operation handlers, a CORS/preflight middleware that stamps
// every response, request-scoped logging, and a single error-to-status map
// translating service and store sentinels into the fixed response codes.
package http
