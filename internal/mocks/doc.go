// Package mocks provides centralized test doubles for the store, auth and
// service interfaces.
//
// The store mocks are in-memory fakes that behave like the PostgreSQL
// stores (ID assignment, uniqueness, owner-scoped writes) so service tests
// can exercise real flows. Every method can be overridden through its Fn
// field to inject errors:
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.UpdateFn = func(ctx context.Context, task *domain.Task) error {
//	    return errors.New("connection reset")
//	}
//
// The service mocks are thin function-field doubles used by the HTTP
// handler tests.
package mocks
