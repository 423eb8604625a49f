// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests call GetTestDBWithT, which skips the test when no database URL is
// configured, applies the embedded migrations once per process, and closes
// the connection on cleanup. WithTx runs the test body in a transaction that
// is always rolled back, so tests can run in parallel without seeing each
// other's rows:
//
//	func TestTaskStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        tasks := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests that must observe committed data across connections, such as
// concurrent registration, use ResetTables instead of WithTx.
//
// The database URL is read from DATABASE_URL, then STUDYTRACK_TEST_DB_URL.
package testdb
