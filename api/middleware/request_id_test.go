package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestIDHandler() http.Handler {
	return RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	rec := httptest.NewRecorder()
	requestIDHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rec.Header().Get(requestIDHeader)
	_, err := uuid.Parse(got)
	require.NoError(t, err, "missing header should get a generated uuid")
}

func TestRequestIDEchoesInboundValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "client-retry-42")
	rec := httptest.NewRecorder()
	requestIDHandler().ServeHTTP(rec, req)

	assert.Equal(t, "client-retry-42", rec.Header().Get(requestIDHeader))
}

func TestRequestIDReplacesOversizedValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()
	requestIDHandler().ServeHTTP(rec, req)

	got := rec.Header().Get(requestIDHeader)
	_, err := uuid.Parse(got)
	require.NoError(t, err, "oversized header should be replaced, not echoed")
}
