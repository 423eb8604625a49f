package main

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/mocks"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an application around service mocks and a sqlmock
// database. Pings succeed unless the database is closed.
func newTestApp(t *testing.T) (*application, sqlmock.Sqlmock, *logger.TestLogBuffer) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	log, logs := logger.NewTestLogger(t)

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:                   0,
				ReadTimeoutSeconds:     5,
				WriteTimeoutSeconds:    10,
				ShutdownTimeoutSeconds: 5,
			},
			Tags: config.TagsConfig{Seed: []string{"DSA", "TSP", "EYC", "All"}},
		},
		logger:   log,
		db:       db,
		sessions: mocks.NewMockSessionStore(),
		identity: &mocks.MockIdentityService{},
		tasks:    &mocks.MockTaskService{},
		tags:     &mocks.MockTagService{},
	}
	return app, mock, logs
}

func closeDB(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) {
	t.Helper()
	mock.ExpectClose()
	require.NoError(t, db.Close())
}
