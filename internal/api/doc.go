// Package api contains the HTTP handlers, request/response models and
// error mapping for the REST surface. Handlers stay thin: they decode
// and validate input, call a service or store, and translate errors into
// sanitized responses via HandleAPIError.
package api
