package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer(config.ServerConfig{
		Port:                8081,
		ReadTimeoutSeconds:  5,
		WriteTimeoutSeconds: 10,
	}, http.NotFoundHandler())

	assert.Equal(t, ":8081", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	app, mock, logs := newTestApp(t)
	mock.ExpectClose()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, newHTTPServer(app.config.Server, app.setupRouter()), ln)
	}()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, logs.String(), "server shutdown completed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
