package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mgRoad     = Point{Lat: 12.9756, Lng: 77.6050}
	koramangla = Point{Lat: 12.9352, Lng: 77.6245}
)

func TestHaversineProvider(t *testing.T) {
	m, err := HaversineProvider{}.Distance(context.Background(), mgRoad, koramangla)
	require.NoError(t, err)
	assert.InDelta(t, 4.97, Kilometers(m), 0.1)

	m, err = HaversineProvider{}.Distance(context.Background(), mgRoad, mgRoad)
	require.NoError(t, err)
	assert.Zero(t, m)

	_, err = HaversineProvider{}.Distance(context.Background(), Point{Lat: 100}, mgRoad)
	assert.Error(t, err)
}

func TestStaticProvider(t *testing.T) {
	m, err := StaticProvider{Meters: 3500}.Distance(context.Background(), mgRoad, koramangla)
	require.NoError(t, err)
	assert.Equal(t, 3.5, Kilometers(m))

	boom := errors.New("boom")
	_, err = StaticProvider{Err: boom}.Distance(context.Background(), mgRoad, koramangla)
	assert.ErrorIs(t, err, boom)
}

func TestMatrixClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12.975600,77.605000", r.URL.Query().Get("origins"))
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"rows":[{"elements":[{"distance":5400,"status":"OK"}]}]}`))
	}))
	defer srv.Close()

	m, err := NewMatrixClient(srv.URL, "key", time.Second).Distance(context.Background(), mgRoad, koramangla)
	require.NoError(t, err)
	assert.Equal(t, 5400.0, m)
}

func TestMatrixClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  error
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }, nil},
		{"empty rows", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"rows":[]}`)) }, nil},
		{"no route", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`))
		}, ErrNoRoute},
		{"garbage", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewMatrixClient(srv.URL, "", time.Second).Distance(context.Background(), mgRoad, koramangla)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestMatrixClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewMatrixClient(srv.URL, "", 20*time.Millisecond).Distance(context.Background(), mgRoad, koramangla)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
