package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ammahealth/explainer-backend/pkg/config"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:       "test-key",
		Model:        "gpt-4o-mini",
		RateLimitRPM: -1,
	})
	require.NoError(t, err)
	client.baseURL = server.URL
	return client, server
}

func responsesBody(text string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"output": []map[string]interface{}{
			{"content": []map[string]string{{"type": "output_text", "text": text}}},
		},
	})
	return body
}

func TestGenerateScript_ParsesSections(t *testing.T) {
	script := `{"intro":"Hello Ada","overview":"Your heart","treatment":"Rest","reminders":"Call us"}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write(responsesBody(script))
	})

	payload, err := client.GenerateScript(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", payload.Intro)
	assert.Equal(t, "Your heart", payload.Overview)
	assert.Equal(t, "Rest", payload.Treatment)
	assert.Equal(t, "Call us", payload.Reminders)
	assert.Empty(t, payload.Content)
}

func TestGenerateScript_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n{\"intro\":\"Hi\",\"overview\":\"ok\",\"treatment\":\"t\",\"reminders\":\"r\"}\n```"
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(responsesBody(fenced))
	})

	payload, err := client.GenerateScript(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Hi", payload.Intro)
}

func TestGenerateScript_MalformedTextDegradesToContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(responsesBody("Here is your script, no JSON today."))
	})

	payload, err := client.GenerateScript(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Here is your script, no JSON today.", payload.Content)
	assert.Empty(t, payload.Intro)
}

func TestGenerateScript_EmptyResponseIsProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(responsesBody(""))
	})

	_, err := client.GenerateScript(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
}

func TestGenerateScript_HTTPErrorIsProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GenerateScript(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
}
