package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	t.Run("Should set the CORS headers and call through", func(t *testing.T) {
		called := false
		handler := CORS(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.True(t, called)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should short-circuit preflight requests", func(t *testing.T) {
		handler := CORS(func(w http.ResponseWriter, r *http.Request) {
			t.Error("preflight must not reach the handler")
		})

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodOptions, "/ask", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
