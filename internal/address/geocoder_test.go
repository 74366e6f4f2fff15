package address

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGeocoder(logger, server.URL, t.TempDir())
}

func TestReverseGeocode(t *testing.T) {
	requests := 0
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "37.579100", r.URL.Query().Get("lat"))
		w.Write([]byte(`{"display_name": "서울특별시 서대문구 미근동"}`))
	})

	addr := g.ReverseGeocode(37.5791, 126.9368)
	assert.Equal(t, "서울특별시 서대문구 미근동", addr)

	// Second lookup of the same coordinate is served from cache.
	addr = g.ReverseGeocode(37.5791, 126.9368)
	assert.Equal(t, "서울특별시 서대문구 미근동", addr)
	assert.Equal(t, 1, requests)
}

func TestReverseGeocode_FailuresAreEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "No result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, tt.handler)
			assert.Equal(t, "", g.ReverseGeocode(37.5, 127.0))
		})
	}
}

func TestReverseGeocode_NetworkFailureIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	g := NewGeocoder(logger, server.URL, t.TempDir())

	assert.Equal(t, "", g.ReverseGeocode(37.5, 127.0))
}
