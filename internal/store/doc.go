// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Stores that take part in multi-step operations expose WithTx so a service
// can bind them to a transaction started by RunInTransaction.
package store
