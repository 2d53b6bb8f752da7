package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikalabs/walletchat/internal/model"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) (*openAIProvider, *openAIEmbedProvider) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := &http.Client{Timeout: 5 * time.Second}
	chat := &openAIProvider{apiKey: "test-key", baseURL: srv.URL, client: client}
	embed := &openAIEmbedProvider{apiKey: "test-key", baseURL: srv.URL, client: client}
	return chat, embed
}

func TestOpenAIChatSuccess(t *testing.T) {
	var gotReq openAIChatRequest
	chat, _ := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  hello there  "}},
			},
		})
	})

	reply, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{
		{Role: model.RoleSystem, Content: "be brief"},
		{Role: model.RoleUser, Content: "hi"},
	}, ChatOptions{MaxTokens: 500, Temperature: 0.7})
	require.NoError(t, err)
	require.Equal(t, "hello there", reply)
	require.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Equal(t, 500, gotReq.MaxTokens)
	require.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestOpenAIChatClassifiesQuotaError(t *testing.T) {
	chat, _ := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"insufficient_quota"}}`, http.StatusTooManyRequests)
	})

	_, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{{Role: model.RoleUser, Content: "hi"}}, ChatOptions{})
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestOpenAIChatClassifiesAuthError(t *testing.T) {
	chat, _ := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	})

	_, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{{Role: model.RoleUser, Content: "hi"}}, ChatOptions{})
	require.ErrorIs(t, err, ErrAuthFailed)
}

func TestOpenAIChatGenericFailureKeepsMessage(t *testing.T) {
	chat, _ := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{{Role: model.RoleUser, Content: "hi"}}, ChatOptions{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrQuotaExceeded)
	require.NotErrorIs(t, err, ErrAuthFailed)
	require.Contains(t, err.Error(), "upstream exploded")
}

func TestOpenAIChatEmptyChoices(t *testing.T) {
	chat, _ := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{{Role: model.RoleUser, Content: "hi"}}, ChatOptions{})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIChatWithoutKey(t *testing.T) {
	chat := &openAIProvider{baseURL: defaultOpenAIBaseURL, client: http.DefaultClient}
	_, err := chat.Chat(context.Background(), "gpt-4o-mini", []model.Message{{Role: model.RoleUser, Content: "hi"}}, ChatOptions{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAIEmbed(t *testing.T) {
	_, embed := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req openAIEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "text-embedding-3-small", req.Model)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	})

	vec, err := embed.Embed(context.Background(), "text-embedding-3-small", "some text")
	require.NoError(t, err)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOpenAIEmbedClassifiesQuotaError(t *testing.T) {
	_, embed := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})

	_, err := embed.Embed(context.Background(), "text-embedding-3-small", "some text")
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestClassifyStatusError(t *testing.T) {
	require.ErrorIs(t, classifyStatusError("openai", http.StatusTooManyRequests, "x"), ErrQuotaExceeded)
	require.ErrorIs(t, classifyStatusError("openai", http.StatusUnauthorized, "x"), ErrAuthFailed)
	err := classifyStatusError("openai", http.StatusInternalServerError, "boom")
	require.False(t, errors.Is(err, ErrQuotaExceeded))
	require.False(t, errors.Is(err, ErrAuthFailed))
	require.Contains(t, err.Error(), "boom")
}
