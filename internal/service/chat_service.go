package service

import (
	"context"
	"strings"
)

// ChatService 教学答疑。模型可用时走模型，否则按关键词返回内置回答，
// 从不向调用方报错。
type ChatService struct {
	AI *AIService
}

func NewChatService(ai *AIService) *ChatService {
	return &ChatService{AI: ai}
}

var cannedResponses = []struct {
	keyword  string
	response string
}{
	{"hello", "Hello! I'm your AI coding tutor. How can I help you learn programming patterns today?"},
	{"help", "I can help you understand programming patterns, analyze code, and provide step-by-step guidance. What would you like to learn?"},
	{"pattern", "Programming patterns are visual representations of code logic. They help you understand loops, conditions, and algorithms. Which pattern interests you?"},
	{"loop", "Loops are fundamental in programming patterns. They help you repeat actions and create structured output. Would you like to see some examples?"},
	{"difficult", "Don't worry! Every programmer starts somewhere. Let's break down the problem into smaller, manageable steps. What specific part is challenging?"},
}

const defaultChatResponse = "That's a great question! Let me help you understand that concept. Can you tell me more about what specific part you'd like to explore?"

// Reply 返回答复与是否为模型产出
func (s *ChatService) Reply(ctx context.Context, message string, chatContext string) (string, bool) {
	if s.AI != nil && s.AI.Enabled() {
		systemPrompt := "You are a friendly programming tutor teaching loop-based console patterns. Keep answers short and encouraging."
		if chatContext != "" {
			systemPrompt += " Context: " + chatContext
		}
		if reply, err := s.AI.Chat(ctx, message, systemPrompt); err == nil {
			return reply, true
		}
	}

	lower := strings.ToLower(message)
	for _, c := range cannedResponses {
		if strings.Contains(lower, c.keyword) {
			return c.response, false
		}
	}
	return defaultChatResponse, false
}
