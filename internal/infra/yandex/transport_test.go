package yandex

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransport(t *testing.T) *Transport {
	t.Helper()
	return NewTransport(TransportConfig{
		Locale:  "ru_RU",
		Token:   "secret",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestTransport_Post_Headers(t *testing.T) {
	t.Parallel()

	var (
		gotHeaders http.Header
		gotBody    string
		gotMethod  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	resp, err := testTransport(t).Post(context.Background(), EndpointCheckPrice, srv.URL, []byte(`{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
	assert.Equal(t, "ru_RU", gotHeaders.Get("Accept-Language"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, gotBody)
	assert.Equal(t, true, resp["ok"])
}

func TestTransport_Post_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    []byte
		noURL   bool
		check   func(t *testing.T, resp map[string]any, err error)
	}{
		{
			name: "EmptyBody",
			body: nil,
			check: func(t *testing.T, resp map[string]any, err error) {
				assert.ErrorIs(t, err, ErrEmptyRequest)
				assert.Nil(t, resp)
			},
		},
		{
			name:  "EmptyURL",
			body:  []byte(`{}`),
			noURL: true,
			check: func(t *testing.T, resp map[string]any, err error) {
				assert.ErrorIs(t, err, ErrEmptyRequest)
			},
		},
		{
			name: "EmptyResponse",
			body: []byte(`{}`),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			check: func(t *testing.T, resp map[string]any, err error) {
				require.NoError(t, err)
				assert.Empty(t, resp)
			},
		},
		{
			name: "NotJSON",
			body: []byte(`{}`),
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
			check: func(t *testing.T, resp map[string]any, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "decode response")
			},
		},
		{
			name: "ErrorStatusStillDecoded",
			body: []byte(`{}`),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code": "validation_error", "message": "bad items"}`))
			},
			check: func(t *testing.T, resp map[string]any, err error) {
				require.NoError(t, err)
				assert.Equal(t, "validation_error", resp["code"])
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			url := ""
			if !tt.noURL {
				handler := tt.handler
				if handler == nil {
					handler = func(w http.ResponseWriter, r *http.Request) {
						t.Error("request must not be sent")
					}
				}
				srv := httptest.NewServer(handler)
				defer srv.Close()
				url = srv.URL
			}

			resp, err := testTransport(t).Post(context.Background(), EndpointCheckPrice, url, tt.body)
			tt.check(t, resp, err)
		})
	}
}

func TestTransport_Get_NoAuthHeader(t *testing.T) {
	t.Parallel()

	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"response": {}}`))
	}))
	defer srv.Close()

	_, err := testTransport(t).Get(context.Background(), EndpointGeocode, srv.URL)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestTransport_TLSVerification(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	strict := NewTransport(TransportConfig{Token: "t", Timeout: 5 * time.Second}, nil)
	_, err := strict.Post(context.Background(), EndpointCheckPrice, srv.URL, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")

	insecure := NewTransport(TransportConfig{Token: "t", Timeout: 5 * time.Second, InsecureSkipVerify: true}, nil)
	resp, err := insecure.Post(context.Background(), EndpointCheckPrice, srv.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, true, resp["ok"])
}

func TestTransport_RateLimitHonoursContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := NewTransportWithClient(TransportConfig{RateLimit: 0.001, Burst: 1}, srv.Client(), nil)

	_, err := tr.Get(context.Background(), EndpointGeocode, srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = tr.Get(ctx, EndpointGeocode, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}

type recordingProvider struct {
	endpoints []string
	statuses  []int
	lookups   []bool
}

func (p *recordingProvider) RequestDone(endpoint string, status int, _ float64) {
	p.endpoints = append(p.endpoints, endpoint)
	p.statuses = append(p.statuses, status)
}
func (p *recordingProvider) ErrorRecorded(string) {}
func (p *recordingProvider) GeocodeCacheLookup(hit bool, _ int) {
	p.lookups = append(p.lookups, hit)
}
func (p *recordingProvider) GatewayRequest(string, int, float64) {}

func TestTransport_Metrics(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	rec := &recordingProvider{}
	tr := NewTransportWithClient(TransportConfig{}, srv.Client(), rec)

	_, err := tr.Post(context.Background(), EndpointOffersCreate, srv.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, []string{EndpointOffersCreate}, rec.endpoints)
	assert.Equal(t, []int{http.StatusUnauthorized}, rec.statuses)
}

func Test_lookup(t *testing.T) {
	t.Parallel()

	doc, err := decodeObject([]byte(`{"a": {"b": [{"c": "x"}, {"c": 2.5}]}, "n": null}`))
	require.NoError(t, err)

	v, ok := lookupString(doc, "a", "b", 0, "c")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	raw, ok := lookup(doc, "a", "b", 1, "c")
	require.True(t, ok)
	f, ok := toF64(raw)
	assert.True(t, ok)
	assert.InDelta(t, 2.5, f, 1e-9)

	_, ok = lookup(doc, "a", "b", 5)
	assert.False(t, ok)
	_, ok = lookup(doc, "a", "missing")
	assert.False(t, ok)
	_, ok = lookup(doc, "n")
	assert.False(t, ok)
	_, ok = lookup(doc, "a", 0)
	assert.False(t, ok)
}

func Test_toF64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"Float", 1.5, 1.5, true},
		{"Int", 3, 3, true},
		{"Int64", int64(4), 4, true},
		{"StringWithCurrency", "195.5 RUB", 195.5, true},
		{"StringComma", "12,75", 12.75, true},
		{"EmptyString", "", 0, false},
		{"Garbage", "abc", 0, false},
		{"Bool", true, 0, false},
	}
	for _, tt := range tests {
		tt := tt
		got, ok := toF64(tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		assert.InDelta(t, tt.want, got, 1e-9, tt.name)
	}
}
