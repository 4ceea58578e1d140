// Package errs defines the error types returned to API clients.
//
// Every failure leaves the service as an *HTTPError so clients always get
// the same JSON shape: a machine-friendly code, a generic human message,
// the HTTP status and, for validation failures, per-field errors.
package errs
