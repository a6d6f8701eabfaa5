package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(endpoint string) *ClientImpl {
	cfg := &config.Config{}
	cfg.Upstream.OpenMeteoURL = endpoint
	cfg.Upstream.UserAgent = "planner-test/1.0"
	cfg.Upstream.Timeout = 2 * time.Second
	return NewClientImpl(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "27.1767", r.URL.Query().Get("latitude"))
		assert.Equal(t, "78.0081", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{"current_weather":{"temperature":31.4,"windspeed":12.3}}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	report, err := client.Current(context.Background(), types.Coordinate{Latitude: 27.1767, Longitude: 78.0081})
	require.NoError(t, err)
	assert.Equal(t, 31.4, report.TemperatureC)
	assert.Equal(t, 12.3, report.WindspeedKmh)
}

func TestCurrent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Current(context.Background(), types.Coordinate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
}

func TestSummary_Format(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_weather":{"temperature":31.44,"windspeed":12.35}}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	summary := client.Summary(context.Background(), types.Coordinate{})
	assert.Equal(t, "31.4°C | wind 12.3 km/h", summary)
}

func TestSummary_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	assert.Equal(t, Unavailable, client.Summary(context.Background(), types.Coordinate{}))
}
