package rest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv := httptest.NewServer(NewRouter(ws))
	t.Cleanup(srv.Close)

	get := func(t *testing.T, path string) (*http.Response, string) {
		t.Helper()

		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		return resp, string(body)
	}

	t.Run("Ping answers pong", func(t *testing.T) {
		resp, body := get(t, "/ping")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", body)
	})

	t.Run("Root serves the game page", func(t *testing.T) {
		resp, body := get(t, "/")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, `class="gameboard"`)
		assert.Contains(t, body, "/ws")
	})

	t.Run("Websocket path goes to the websocket handler", func(t *testing.T) {
		resp, _ := get(t, "/ws")

		assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	})

	t.Run("Other paths are not found", func(t *testing.T) {
		resp, _ := get(t, "/index.php")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
