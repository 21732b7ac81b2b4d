package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRESTClient(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.Endpoint = server.URL

	client, err := NewRESTClient(config, "test-key", server.Client())
	require.NoError(t, err)
	return client
}

func TestRESTClient_RequestEnvelope(t *testing.T) {
	client := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		expected := map[string]any{
			"contents": []any{
				map[string]any{
					"role":  "user",
					"parts": []any{map[string]any{"text": "hello prompt"}},
				},
			},
			"generationConfig": map[string]any{"temperature": 0.7},
		}
		assert.Equal(t, expected, body)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Dear Hiring Manager"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "hello prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager", text)
}

func TestRESTClient_Responses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantText   string
		wantStatus int
		noContent  bool
		wantErr    bool
	}{
		{name: "first part only", status: 200, body: `{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`, wantText: "a"},
		{name: "empty candidates", status: 200, body: `{"candidates":[]}`, noContent: true},
		{name: "missing candidates", status: 200, body: `{}`, noContent: true},
		{name: "no content", status: 200, body: `{"candidates":[{"finishReason":"SAFETY"}]}`, noContent: true},
		{name: "empty parts", status: 200, body: `{"candidates":[{"content":{"parts":[]}}]}`, noContent: true},
		{name: "empty text", status: 200, body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, noContent: true},
		{name: "malformed body", status: 200, body: `{"candidates":`, wantErr: true},
		{name: "rate limited", status: 429, body: `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`, wantStatus: 429},
		{name: "server error", status: 500, body: `oops`, wantStatus: 500},
		{name: "bad request", status: 400, body: ``, wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestRESTClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			text, err := client.GenerateContent(context.Background(), "p", TierStandard)
			switch {
			case tt.wantText != "":
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, text)
			case tt.noContent:
				assert.ErrorIs(t, err, ErrNoContent)
			case tt.wantStatus != 0:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tt.wantStatus == 429, IsRateLimited(err))
			case tt.wantErr:
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrNoContent))
				assert.False(t, IsRateLimited(err))
			}
		})
	}
}

func TestRESTClient_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/custom-model:generateContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	config := DefaultConfig().WithModel(TierStandard, "custom-model")
	config.Endpoint = server.URL + "/"

	client, err := NewRESTClient(config, "k", nil)
	require.NoError(t, err)

	text, err := client.GenerateContent(context.Background(), "p", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "custom-model", client.GetModel(TierStandard))
	assert.NoError(t, client.Close())
}

func TestNewRESTClient_RequiresAPIKey(t *testing.T) {
	_, err := NewRESTClient(DefaultConfig(), "", nil)
	assert.Error(t, err)
}

func TestRESTClient_NoModel(t *testing.T) {
	client, err := NewRESTClient(&Config{Models: map[ModelTier]string{}}, "k", nil)
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "p", TierStandard)
	assert.ErrorContains(t, err, "no model configured")
}

func TestRESTClient_InvalidEndpointRedactsKey(t *testing.T) {
	config := DefaultConfig()
	config.Endpoint = "http://example.invalid/%zz"

	client, err := NewRESTClient(config, "SECRET123", nil)
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "prompt", TierStandard)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET123")
	assert.Contains(t, err.Error(), "key=REDACTED")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// "é" is two bytes; cutting at 2 would split it
	got := truncate("aébc", 2)
	assert.Equal(t, "a...", got)
	assert.True(t, utf8.ValidString(got))

	long := strings.Repeat("日本", 300)
	assert.True(t, utf8.ValidString(truncate(long, maxErrorBody)))
}
