package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_SelectsTransport(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig(), "key")
	require.NoError(t, err)
	_, ok := client.(*RESTClient)
	assert.True(t, ok)

	config := DefaultConfig()
	config.Transport = "carrier-pigeon"
	_, err = NewClient(context.Background(), config, "key")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	assert.Error(t, err)

	config := DefaultConfig()
	config.Transport = TransportSDK
	_, err = NewClient(context.Background(), config, "")
	assert.Error(t, err)
}

func TestExtractTextFromResponse_ValidResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("Dear team,"), genai.Text(" ignored")},
				},
			},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Dear team,", text)
}

func TestExtractTextFromResponse_NoContent(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil response", resp: nil},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{name: "no parts", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}},
		{name: "empty text", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("")}}}}}},
		{name: "non-text part", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			assert.ErrorIs(t, err, ErrNoContent)
		})
	}
}
