package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/server"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func waitReady(t *testing.T, addr func() string) {
	t.Helper()
	for range 50 {
		resp, err := http.Get("http://" + addr() + "/")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server at %s never became ready", addr())
}

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("exposes_bound_address", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- srv.Start(ctx, okHandler()) }()

		waitReady(t, srv.Addr)
		assert.NotEqual(t, ":0", srv.Addr())

		require.NoError(t, srv.Stop())
		cancel()
		<-done
	})

	t.Run("start_twice_fails", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go srv.Start(ctx, okHandler())
		waitReady(t, srv.Addr)

		err := srv.Start(ctx, okHandler())
		assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)

		require.NoError(t, srv.Stop())
	})

	t.Run("stop_without_start_is_a_noop", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		assert.NoError(t, srv.Stop())
	})

	t.Run("run_returns_nil_on_context_cancel", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, okHandler())() }()

		waitReady(t, srv.Addr)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("run never returned after cancel")
		}
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires_address", func(t *testing.T) {
		t.Parallel()

		_, err := server.NewFromConfig(server.Config{})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("builds_from_defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, ":8080", srv.Addr())
	})
}
