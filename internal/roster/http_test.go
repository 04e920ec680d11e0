package roster_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmeet/meetup-service/internal/roster"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestFetchRandomStudent(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	baseURL := "http://roster.example.com/getStudent"

	t.Run("successful fetch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, baseURL, req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				responseBody := `{
					"Id": 31662210,
					"FirstName": "Jordan",
					"LastName": "Lee",
					"Sections": [
						{"CourseName": "CPSC", "CourseNumber": 210, "SectionName": "201"},
						{"CourseName": "MATH", "CourseNumber": 221, "SectionName": "202"}
					]
				}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := roster.NewHTTPProviderWithClient(mockClient, baseURL, logger)
		record, err := provider.FetchRandomStudent(ctx)

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, 31662210, record.ID)
		assert.Equal(t, "Jordan", record.FirstName)
		require.Len(t, record.Sections, 2)
		assert.Equal(t, "CPSC", record.Sections[0].CourseName)
		assert.Equal(t, 210, record.Sections[0].CourseNumber)
		assert.Equal(t, "201", record.Sections[0].SectionName)
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := roster.NewHTTPProviderWithClient(mockClient, baseURL, logger)
		_, err := provider.FetchRandomStudent(ctx)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("non-200 status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(bytes.NewBufferString("maintenance")),
				}, nil
			},
		}

		provider := roster.NewHTTPProviderWithClient(mockClient, baseURL, logger)
		_, err := provider.FetchRandomStudent(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("malformed body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString("<html>nope</html>")),
				}, nil
			},
		}

		provider := roster.NewHTTPProviderWithClient(mockClient, baseURL, logger)
		_, err := provider.FetchRandomStudent(ctx)

		require.Error(t, err)
	})

	t.Run("empty record", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		provider := roster.NewHTTPProviderWithClient(mockClient, baseURL, logger)
		_, err := provider.FetchRandomStudent(ctx)

		require.ErrorIs(t, err, roster.ErrRosterEmptyRecord)
	})
}
