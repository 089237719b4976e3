package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := ChatCompletionResponse{}
	resp.Choices = []struct {
		Message AIChatMessage `json:"message"`
	}{
		{Message: AIChatMessage{Role: "assistant", Content: content}},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func newTestAIService(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAIService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	}, nil)
}

func TestAnalyzeComplexityUsesModelReply(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		chatReply(t, w, `Sure, here it is: {"complexity_score": 0.35, "complexity_level": "medium", "confidence": 0.9, "suggestions": ["use fewer loops"]}`)
	})

	result, aiPowered := svc.AnalyzeComplexity(context.Background(), "for i in range(3):\n    print(i)")
	assert.True(t, aiPowered)
	assert.InDelta(t, 0.35, result.ComplexityScore, 1e-9)
	assert.Equal(t, model.ComplexityMedium, result.ComplexityLevel)
	assert.InDelta(t, 0.9, result.AIConfidence, 1e-9)
	assert.Equal(t, []string{"use fewer loops"}, result.Suggestions)
}

func TestAnalyzeComplexityFallsBackOnServerError(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	})

	code := "n = 4\nfor i in range(n):\n    for j in range(n):\n        pass"
	result, aiPowered := svc.AnalyzeComplexity(context.Background(), code)

	assert.False(t, aiPowered)
	assert.InDelta(t, 0.8, result.ComplexityScore, 1e-9)
	assert.Equal(t, model.ComplexityHigh, result.ComplexityLevel)
	assert.Equal(t, 0.0, result.AIConfidence)
}

func TestAnalyzeComplexityFallsBackWhenUnconfigured(t *testing.T) {
	svc := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	assert.False(t, svc.Enabled())

	result, aiPowered := svc.AnalyzeComplexity(context.Background(), "x = 1")
	assert.False(t, aiPowered)
	assert.Equal(t, 0.0, result.AIConfidence)
	assert.Equal(t, model.ComplexityLow, result.ComplexityLevel)
}

// 模型失败后的启发式结果不得进入缓存，端点恢复时要能重新拿到模型结果
func TestAnalyzeComplexityDoesNotCacheFallback(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		chatReply(t, w, `{"complexity_score": 0.9, "complexity_level": "high", "confidence": 0.8, "suggestions": []}`)
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
		CacheTTLHours:  1,
	}, rdb)

	code := "for i in range(3):\n    print(i)"

	first, aiPowered := svc.AnalyzeComplexity(context.Background(), code)
	assert.False(t, aiPowered)
	assert.Equal(t, 0.0, first.AIConfidence)
	assert.Empty(t, mr.Keys())

	second, aiPowered := svc.AnalyzeComplexity(context.Background(), code)
	require.True(t, aiPowered)
	assert.InDelta(t, 0.9, second.ComplexityScore, 1e-9)
	assert.InDelta(t, 0.8, second.AIConfidence, 1e-9)

	// 模型结果已缓存，第三次不再请求端点
	third, aiPowered := svc.AnalyzeComplexity(context.Background(), code)
	assert.True(t, aiPowered)
	assert.InDelta(t, 0.9, third.ComplexityScore, 1e-9)
	assert.Equal(t, 2, calls)
}

func TestParseComplexityReply(t *testing.T) {
	t.Run("no json object", func(t *testing.T) {
		_, err := parseComplexityReply("I cannot answer that")
		assert.Error(t, err)
	})

	t.Run("unknown level reclassified", func(t *testing.T) {
		result, err := parseComplexityReply(`{"complexity_score": 0.9, "complexity_level": "extreme", "confidence": 0.8}`)
		require.NoError(t, err)
		assert.Equal(t, model.ComplexityHigh, result.ComplexityLevel)
	})

	t.Run("score clamped", func(t *testing.T) {
		result, err := parseComplexityReply(`{"complexity_score": 3.2, "complexity_level": "high", "confidence": 1.5}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, result.ComplexityScore)
		assert.Equal(t, 1.0, result.AIConfidence)
	})

	t.Run("missing confidence gets floor", func(t *testing.T) {
		result, err := parseComplexityReply(`{"complexity_score": 0.2, "complexity_level": "low"}`)
		require.NoError(t, err)
		assert.Equal(t, 0.5, result.AIConfidence)
	})
}

func TestSuggestImprovementsParsesLines(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "- Use a constant for the size\n* Extract a helper\n\nName the loop variable row\nFourth one\nFifth one")
	})

	suggestions := svc.SuggestImprovements(context.Background(), "for i in range(3): pass")
	assert.Equal(t, []string{
		"Use a constant for the size",
		"Extract a helper",
		"Name the loop variable row",
		"Fourth one",
	}, suggestions)
}

func TestSuggestImprovementsFallback(t *testing.T) {
	svc := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	assert.Equal(t, FallbackImprovements(), svc.SuggestImprovements(context.Background(), "x = 1"))
}

func TestExplainCodeFallback(t *testing.T) {
	svc := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	explanation := svc.ExplainCode(context.Background(), "for i: pass", "Diamond Pattern")
	assert.Contains(t, explanation, "Diamond Pattern")
}
