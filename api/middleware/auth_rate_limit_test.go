package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counts: map[string]int64{}}
}

func (s *memoryStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequest(email string) *http.Request {
	body := strings.NewReader(`{"email":"` + email + `","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.RemoteAddr = "198.51.100.7:4242"
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRateLimitBlocksAfterEmailLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 100, 3)
	handler := AuthRateLimit(policy, newMemoryStore(), nil)(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("user@example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("user@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different account from the same IP is still under its own limit.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("other@example.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 100)
	handler := AuthRateLimit(policy, newMemoryStore(), nil)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("user@example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("another@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAuthRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 1, 1)
	handler := AuthRateLimit(policy, nil, nil)(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("user@example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAuthRateLimitPreservesRequestBody(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 10, 10)

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		seen = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthRateLimit(policy, newMemoryStore(), nil)(inner)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("user@example.com"))

	assert.Contains(t, seen, "user@example.com")
}
