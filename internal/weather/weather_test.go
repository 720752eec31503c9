package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"schoolplanner/internal/config"
	"schoolplanner/internal/logger"
	"schoolplanner/internal/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kyivBody = `{
	"name": "Kyiv",
	"weather": [{"description": "ясно", "icon": "01d"}],
	"main": {"temp": 21.5, "feels_like": 20.9, "humidity": 40},
	"wind": {"speed": 3.2}
}`

func newClient(url, key string, timeout int) *weather.Client {
	return weather.NewClient(config.WeatherConfig{
		URL:     url,
		APIKey:  key,
		City:    "Kyiv",
		Units:   "metric",
		Lang:    "uk",
		Timeout: timeout,
	}, logger.Discard())
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Lviv", q.Get("q"))
		assert.Equal(t, "secret", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "uk", q.Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(kyivBody))
	}))
	defer srv.Close()

	got := newClient(srv.URL, "secret", 5).Fetch(context.Background(), "Lviv")
	require.NotNil(t, got)
	assert.Equal(t, weather.Reading{
		City:        "Kyiv",
		Description: "ясно",
		Icon:        "01d",
		Temperature: 21.5,
		FeelsLike:   20.9,
		Humidity:    40,
		WindSpeed:   3.2,
	}, *got)
}

func TestFetch_DefaultCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kyiv", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(kyivBody))
	}))
	defer srv.Close()

	assert.NotNil(t, newClient(srv.URL, "secret", 5).Fetch(context.Background(), ""))
}

func TestFetch_DegradesToNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			},
		},
		{
			name: "bad body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
		{
			name: "oversized body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name":"` + strings.Repeat("a", 2<<20) + `"}`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(3 * time.Second):
				case <-r.Context().Done():
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			assert.Nil(t, newClient(srv.URL, "secret", 1).Fetch(context.Background(), "Kyiv"))
		})
	}
}

func TestFetch_NoKeySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	assert.Nil(t, newClient(srv.URL, "", 5).Fetch(context.Background(), "Kyiv"))
	assert.False(t, called)
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Nil(t, newClient(url, "secret", 1).Fetch(context.Background(), "Kyiv"))
}
