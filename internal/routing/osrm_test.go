package routing_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/routing"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func osrmOK(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestOSRMRoute(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	dmp := models.MustLatLon(49.261474, -123.248060)
	buchanan := models.MustLatLon(49.269258, -123.254784)

	t.Run("successful route", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				// OSRM takes lon,lat pairs in the path, foot profile.
				assert.Contains(t, req.URL.Path, "/route/v1/foot/")
				assert.Contains(t, req.URL.Path, "-123.248060,49.261474;-123.254784,49.269258")
				assert.Equal(t, "full", req.URL.Query().Get("overview"))
				assert.Equal(t, "geojson", req.URL.Query().Get("geometries"))

				body := `{"code":"Ok","routes":[{"geometry":{"coordinates":
					[[-123.248060,49.261474],[-123.251000,49.265000],[-123.254784,49.269258]]}}]}`
				return osrmOK(body), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		path, err := provider.Route(ctx, dmp, buchanan)

		require.NoError(t, err)
		require.Len(t, path, 3)
		// GeoJSON [lon, lat] pairs come back as lat/lon points.
		assert.InEpsilon(t, 49.261474, path[0].Latitude, 1e-9)
		assert.InEpsilon(t, -123.248060, path[0].Longitude, 1e-9)
		assert.InEpsilon(t, 49.269258, path[2].Latitude, 1e-9)
	})

	t.Run("no route found", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return osrmOK(`{"code":"NoRoute","routes":[]}`), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		_, err := provider.Route(ctx, dmp, buchanan)

		require.ErrorIs(t, err, routing.ErrOSRMNoRoute)
	})

	t.Run("empty path", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return osrmOK(`{"code":"Ok","routes":[{"geometry":{"coordinates":[]}}]}`), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		_, err := provider.Route(ctx, dmp, buchanan)

		require.ErrorIs(t, err, routing.ErrOSRMEmptyPath)
	})

	t.Run("malformed coordinate pair", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return osrmOK(`{"code":"Ok","routes":[{"geometry":{"coordinates":[[-123.25]]}}]}`), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		_, err := provider.Route(ctx, dmp, buchanan)

		require.ErrorIs(t, err, routing.ErrOSRMInvalidCoord)
	})

	t.Run("retries transient errors", func(t *testing.T) {
		var calls atomic.Int32
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				if calls.Add(1) < 3 {
					return &http.Response{
						StatusCode: http.StatusServiceUnavailable,
						Body:       io.NopCloser(bytes.NewBufferString("busy")),
					}, nil
				}
				body := `{"code":"Ok","routes":[{"geometry":{"coordinates":[[-123.25,49.26],[-123.26,49.27]]}}]}`
				return osrmOK(body), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		path, err := provider.Route(ctx, dmp, buchanan)

		require.NoError(t, err)
		assert.Len(t, path, 2)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				calls.Add(1)
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Body:       io.NopCloser(bytes.NewBufferString("bad coords")),
				}, nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		_, err := provider.Route(ctx, dmp, buchanan)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("should not reach the client with a canceled context")
				return nil, nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "", logger)
		_, err := provider.Route(canceled, dmp, buchanan)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("custom base url", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "osrm.internal.example.com", req.URL.Host)
				body := `{"code":"Ok","routes":[{"geometry":{"coordinates":[[-123.25,49.26],[-123.26,49.27]]}}]}`
				return osrmOK(body), nil
			},
		}

		provider := routing.NewOSRMProviderWithClient(mockClient, "http://osrm.internal.example.com/", logger)
		_, err := provider.Route(ctx, dmp, buchanan)
		require.NoError(t, err)
	})
}
