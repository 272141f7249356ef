// Package testingutils holds HTTP helpers shared by handler tests.
package testingutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/calorix/backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// SetupTestRouter creates a new Gin router for testing
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Recovery(zap.NewNop()))
	router.Use(middleware.CORS(nil))
	return router
}

// RequestOption adjusts a test request before it is served.
type RequestOption func(*http.Request)

// WithLanguage sets the Accept-Language header.
func WithLanguage(lang string) RequestOption {
	return func(r *http.Request) { r.Header.Set("Accept-Language", lang) }
}

// PerformRequest performs an HTTP request for testing
func PerformRequest(router http.Handler, method, path string, body interface{}, token string, opts ...RequestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// AssertResponse asserts that the response matches the expected status code and body
func AssertResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code)
	if expectedBody != nil {
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, expectedBody, response)
	}
}

// DecodeJSON unmarshals the response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
