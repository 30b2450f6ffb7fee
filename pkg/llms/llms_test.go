package llms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senseihq/sensei/pkg/config"
)

func testLLMConfig(provider, baseURL string) *config.LLMConfig {
	return &config.LLMConfig{
		Provider:    provider,
		Model:       "test-model",
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Temperature: 0.7,
		MaxTokens:   256,
		Timeout:     5,
		MaxRetries:  1,
		RetryDelay:  1,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.LLMConfig
		wantErr  bool
		wantType interface{}
	}{
		{"openai", testLLMConfig("openai", ""), false, &OpenAIProvider{}},
		{"ollama", testLLMConfig("ollama", ""), false, &OllamaProvider{}},
		{"mock", testLLMConfig("mock", ""), false, &MockProvider{}},
		{"openai without key", &config.LLMConfig{Provider: "openai"}, true, nil},
		{"unknown", testLLMConfig("bard", ""), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, provider)
		})
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "decorators wrap functions"}},
			},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProviderFromConfig(testLLMConfig("openai", server.URL))
	require.NoError(t, err)

	got, err := provider.Generate(context.Background(), "You are a tutor.", "Explain decorators")
	require.NoError(t, err)
	assert.Equal(t, "decorators wrap functions", got)

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Nil(t, captured["response_format"])
}

func TestOpenAIProvider_GenerateJSONSetsResponseFormat(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `{"questions":[]}`}},
			},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProviderFromConfig(testLLMConfig("openai", server.URL))
	require.NoError(t, err)

	got, err := provider.GenerateJSON(context.Background(), "", "make a quiz")
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[]}`, got)

	format := captured["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid api key", "type": "auth_error"},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProviderFromConfig(testLLMConfig("openai", server.URL))
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, false, req["stream"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "generated locally"},
			"done":    true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProviderFromConfig(testLLMConfig("ollama", server.URL))
	require.NoError(t, err)

	got, err := provider.Generate(context.Background(), "", "Explain channels")
	require.NoError(t, err)
	assert.Equal(t, "generated locally", got)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()

	t.Run("deterministic", func(t *testing.T) {
		first, err := provider.Generate(context.Background(), "sys", "Explain goroutines")
		require.NoError(t, err)
		second, err := provider.Generate(context.Background(), "sys", "Explain goroutines")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Contains(t, first, "Explain goroutines")
	})

	t.Run("empty prompt", func(t *testing.T) {
		_, err := provider.Generate(context.Background(), "", "   ")
		assert.Error(t, err)
	})

	t.Run("json is empty object", func(t *testing.T) {
		got, err := provider.GenerateJSON(context.Background(), "", "quiz")
		require.NoError(t, err)
		assert.JSONEq(t, "{}", got)
	})
}
