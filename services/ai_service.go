package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
)

// AIClient produces one assistant reply for a system persona and an ordered
// turn sequence ending in the latest user message. Implementations return an
// error (never a partial reply) on failure; callers substitute their own
// fallback text.
type AIClient interface {
	Complete(ctx context.Context, system string, turns []models.Turn) (string, error)
}

// AIService talks to Groq's OpenAI-compatible chat completion API and falls
// back to a local Ollama instance when Groq is unavailable.
type AIService struct {
	groq        *openai.Client
	groqModel   string
	ollamaURL   string
	ollamaModel string
	maxTokens   int
	temperature float32
	httpClient  *http.Client
}

func NewAIService(cfg *config.Config) *AIService {
	var groq *openai.Client
	if cfg.AI.GroqAPIKey != "" {
		groqConfig := openai.DefaultConfig(cfg.AI.GroqAPIKey)
		groqConfig.BaseURL = cfg.AI.GroqBaseURL
		groq = openai.NewClientWithConfig(groqConfig)
	}

	return &AIService{
		groq:        groq,
		groqModel:   cfg.AI.GroqModel,
		ollamaURL:   cfg.AI.OllamaURL,
		ollamaModel: cfg.AI.OllamaModel,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.AI.Timeout,
		},
	}
}

// Complete tries Groq first, then Ollama.
func (s *AIService) Complete(ctx context.Context, system string, turns []models.Turn) (string, error) {
	reply, err := s.callGroq(ctx, system, turns)
	if err == nil {
		return reply, nil
	}
	log.Printf("[AI] groq failed, trying ollama: %v", err)

	reply, ollamaErr := s.callOllama(ctx, system, turns)
	if ollamaErr != nil {
		return "", fmt.Errorf("all AI providers failed: groq: %v; ollama: %w", err, ollamaErr)
	}
	return reply, nil
}

func (s *AIService) callGroq(ctx context.Context, system string, turns []models.Turn) (string, error) {
	if s.groq == nil {
		return "", errors.New("groq client not configured")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		if turn.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	resp, err := s.groq.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.groqModel,
		Messages:    messages,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("groq returned an empty reply")
	}
	log.Println("[AI] groq responded")
	return reply, nil
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (s *AIService) callOllama(ctx context.Context, system string, turns []models.Turn) (string, error) {
	// Ollama's generate endpoint takes a single prompt, so prior turns are
	// flattened into a transcript above the latest message.
	var transcript strings.Builder
	for i, turn := range turns {
		role := "User"
		if turn.Role == models.RoleAssistant {
			role = "Assistant"
		}
		if i == len(turns)-1 {
			transcript.WriteString("User: " + turn.Content)
			break
		}
		transcript.WriteString(role + ": " + turn.Content + "\n")
	}

	payload := ollamaRequest{
		Model:  s.ollamaModel,
		System: system,
		Prompt: transcript.String(),
		Stream: false,
		Options: map[string]any{
			"temperature": s.temperature,
			"num_predict": 600,
			"num_ctx":     2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ollamaURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama returned HTTP %d: %s", resp.StatusCode, data)
	}

	var parsed ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	reply := strings.TrimSpace(parsed.Response)
	if reply == "" {
		return "", errors.New("ollama returned an empty reply")
	}
	log.Println("[AI] ollama responded")
	return reply, nil
}
