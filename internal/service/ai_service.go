package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/pkg/logger"
	"pattern_master_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AIService 封装托管模型调用。模型失败从不上抛：
// 复杂度分析回退到启发式，讲解/建议回退到固定文案。
type AIService struct {
	config config.AIConfig
	client *http.Client
	rdb    *redis.Client
}

func NewAIService(cfg config.AIConfig, rdb *redis.Client) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		rdb:    rdb,
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat 单轮调用OpenAI兼容的chat-completions接口
func (s *AIService) Chat(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	if s.config.BaseURL == "" || s.config.APIKey == "" {
		return "", fmt.Errorf("AI endpoint not configured")
	}

	if systemPrompt == "" {
		systemPrompt = "You are a programming tutor for an educational pattern-learning platform. Answer concisely."
	}

	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// modelComplexityReply 要求模型按此JSON结构回答
type modelComplexityReply struct {
	ComplexityScore float64  `json:"complexity_score"`
	ComplexityLevel string   `json:"complexity_level"`
	Confidence      float64  `json:"confidence"`
	Suggestions     []string `json:"suggestions"`
}

// AnalyzeComplexity 优先走模型；任何失败（未配置、超时、非200、
// 响应不可解析）都降级为启发式结果。返回值第二项表示是否为模型产出。
func (s *AIService) AnalyzeComplexity(ctx context.Context, code string) (model.ComplexityResult, bool) {
	if cached, ok := s.cachedResult(ctx, code); ok {
		return cached, cached.AIConfidence > 0
	}

	result, ok := s.modelComplexity(ctx, code)
	if !ok {
		// 启发式结果不落缓存，模型恢复后同样的代码能重新走模型
		monitoring.HeuristicFallbacks.Inc()
		return AnalyzeComplexityHeuristic(code), false
	}

	s.cacheResult(ctx, code, result)
	return result, true
}

func (s *AIService) modelComplexity(ctx context.Context, code string) (model.ComplexityResult, bool) {
	prompt := "Rate the complexity of the following code. Reply with a single JSON object " +
		`{"complexity_score": <0..1>, "complexity_level": "low|medium|high", "confidence": <0..1>, "suggestions": [<up to 3 strings>]}` +
		" and nothing else.\n\n```\n" + code + "\n```"

	reply, err := s.Chat(ctx, prompt, "You are a static-analysis assistant. Answer with JSON only.")
	if err != nil {
		logger.Log.Warn("model complexity analysis unavailable, using heuristic", zap.Error(err))
		return model.ComplexityResult{}, false
	}

	parsed, err := parseComplexityReply(reply)
	if err != nil {
		logger.Log.Warn("unparseable model reply, using heuristic", zap.Error(err))
		return model.ComplexityResult{}, false
	}
	return parsed, true
}

func parseComplexityReply(reply string) (model.ComplexityResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return model.ComplexityResult{}, fmt.Errorf("no JSON object in model reply")
	}

	var parsed modelComplexityReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return model.ComplexityResult{}, err
	}

	score := clamp01(parsed.ComplexityScore)
	level := parsed.ComplexityLevel
	switch level {
	case model.ComplexityLow, model.ComplexityMedium, model.ComplexityHigh:
	default:
		level = ClassifyComplexity(score)
	}

	confidence := clamp01(parsed.Confidence)
	if confidence == 0 {
		// 模型产出但未报置信度，给一个非零下限以区别于启发式
		confidence = 0.5
	}

	return model.ComplexityResult{
		ComplexityScore: score,
		ComplexityLevel: level,
		AIConfidence:    confidence,
		Suggestions:     parsed.Suggestions,
	}, nil
}

// ExplainCode 代码讲解，失败回退到固定文案
func (s *AIService) ExplainCode(ctx context.Context, code string, patternName string) string {
	prompt := fmt.Sprintf("Explain this %s code in simple terms:\n%s\nExplanation:", patternName, code)
	reply, err := s.Chat(ctx, prompt, "")
	if err != nil {
		return FallbackExplanation(patternName)
	}
	return reply
}

// SuggestImprovements 改进建议，失败回退到固定列表
func (s *AIService) SuggestImprovements(ctx context.Context, code string) []string {
	prompt := "Suggest up to 4 concrete improvements for this code, one per line, no numbering:\n" + code
	reply, err := s.Chat(ctx, prompt, "")
	if err != nil {
		return FallbackImprovements()
	}

	var suggestions []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if line != "" {
			suggestions = append(suggestions, line)
		}
	}
	if len(suggestions) == 0 {
		return FallbackImprovements()
	}
	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	return suggestions
}

// Enabled 模型端点是否已配置
func (s *AIService) Enabled() bool {
	return s.config.BaseURL != "" && s.config.APIKey != ""
}

// ModelName 用于持久化分析记录的model_used字段
func (s *AIService) ModelName() string {
	return s.config.Model
}

func (s *AIService) cacheKey(code string) string {
	sum := sha1.Sum([]byte(code))
	return "ai:complexity:" + hex.EncodeToString(sum[:])
}

func (s *AIService) cachedResult(ctx context.Context, code string) (model.ComplexityResult, bool) {
	if s.rdb == nil {
		return model.ComplexityResult{}, false
	}
	raw, err := s.rdb.Get(ctx, s.cacheKey(code)).Result()
	if err != nil {
		return model.ComplexityResult{}, false
	}
	var result model.ComplexityResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return model.ComplexityResult{}, false
	}
	return result, true
}

func (s *AIService) cacheResult(ctx context.Context, code string, result model.ComplexityResult) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := time.Duration(s.config.CacheTTLHours) * time.Hour
	if err := s.rdb.Set(ctx, s.cacheKey(code), raw, ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache analysis result", zap.Error(err))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
