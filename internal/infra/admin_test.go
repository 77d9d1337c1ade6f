package infra

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCache struct {
	cleared, cleaned int
}

func (f *fakeCache) Stats() map[string]int { return map[string]int{"size": 3} }
func (f *fakeCache) Clear()                { f.cleared++ }
func (f *fakeCache) CleanupExpired()       { f.cleaned++ }

func TestAdminServer(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{}
	h := NewAdmin(":0", cache).Handler()

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"Stats", http.MethodGet, "/cache/stats", http.StatusOK, "{\"size\":3}\n"},
		{"Clear", http.MethodPost, "/cache/clear", http.StatusOK, "cache cleared"},
		{"Cleanup", http.MethodPost, "/cache/cleanup", http.StatusOK, "expired cache entries cleaned"},
		{"ClearWrongMethod", http.MethodGet, "/cache/clear", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		tt := tt
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.wantCode, rec.Code, tt.name)
		if tt.wantBody != "" {
			assert.Equal(t, tt.wantBody, rec.Body.String(), tt.name)
		}
	}
	assert.Equal(t, 1, cache.cleared)
	assert.Equal(t, 1, cache.cleaned)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminServer_NoCache(t *testing.T) {
	t.Parallel()

	h := NewAdmin(":0", nil).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
