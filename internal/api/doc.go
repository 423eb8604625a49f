// Package api handles incoming HTTP requests, request validation and
// response formatting. It translates HTTP concerns into calls on the
// identity, task and tag services and maps their errors to status codes.
package api
