// Package service contains the application use cases of the study tracker:
// registration and sessions (IdentityService), task management
// (TaskService) and the tag catalog (TagService).
//
// Services coordinate domain objects and the store interfaces from
// internal/store. Every mutation runs inside store.RunInTransaction so a
// failure leaves nothing half-written. Store and domain errors are
// translated into the sentinels in errors.go, which the API layer maps to
// HTTP status codes with errors.Is.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage implementation.
package service
