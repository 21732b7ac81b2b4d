package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "value", body["key"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	result, err := PostJSON(context.Background(), server.URL, map[string]string{"key": "value"}, nil)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "application/json", result.ContentType)
	assert.JSONEq(t, `{"ok":true}`, string(result.Body))
}

func TestPostJSON_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429}}`))
	}))
	defer server.Close()

	result, err := PostJSON(context.Background(), server.URL, struct{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, http.StatusTooManyRequests, result.StatusCode)
}

func TestPostJSON_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Test": "abc"}

	result, err := PostJSON(context.Background(), server.URL, struct{}{}, opts)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
}

func TestPostJSON_InvalidURL(t *testing.T) {
	_, err := PostJSON(context.Background(), "not-a-valid-url", struct{}{}, nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestPostJSON_UnparsableURLRedactsKey(t *testing.T) {
	_, err := PostJSON(context.Background(), "http://example.invalid/%zz/v1?key=super-secret&alt=json", struct{}{}, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
	assert.NotContains(t, err.Error(), "super-secret")
	assert.Contains(t, fetchErr.URL, "key=REDACTED&alt=json")
}

func TestPostJSON_ConnectionRefusedRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := PostJSON(context.Background(), addr+"/v1?key=super-secret", struct{}{}, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestPostJSON_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := PostJSON(ctx, server.URL, struct{}{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://example.com/v1?key=abc", want: "https://example.com/v1?key=REDACTED"},
		{in: "https://example.com/v1", want: "https://example.com/v1"},
		{in: "https://example.com/v1?alt=json", want: "https://example.com/v1?alt=json"},
		{in: "http://bad/%zz?key=abc", want: "http://bad/%zz?key=REDACTED"},
		{in: "http://bad/%zz?alt=json&key=abc#frag", want: "http://bad/%zz?alt=json&key=REDACTED#frag"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RedactURL(tt.in))
	}
}
