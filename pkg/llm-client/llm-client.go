package llmclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

// LLMConfig holds the connection settings for the chat completion API.
type LLMConfig struct {
	APIKey       string        `yaml:"api_key" json:"api_key"`
	BaseURL      string        `yaml:"base_url" json:"base_url"`
	Model        string        `yaml:"model" json:"model"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt"`
	HistoryLimit int           `yaml:"history_limit" json:"history_limit"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// LLMClient answers user messages through an OpenAI compatible completion API.
type LLMClient struct {
	client *openai.Client
	config LLMConfig
}

func NewLLMClient(config LLMConfig) (*LLMClient, error) {
	if config.APIKey == "" {
		return nil, errors.New("llm api key is not configured")
	}
	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &LLMClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Complete sends the message together with the trimmed chat history and
// returns the assistant's reply.
func (c *LLMClient) Complete(ctx context.Context, history []userTypes.ChatTurn, message string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if c.config.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.config.SystemPrompt,
		})
	}

	if c.config.HistoryLimit > 0 && len(history) > c.config.HistoryLimit {
		history = history[len(history)-c.config.HistoryLimit:]
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == userTypes.CHAT_ROLE_ASSISTANT {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.config.Model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("chat completion request failed", slog.String("model", c.config.Model), slog.String("error", err.Error()))
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("chat completion returned no content")
	}
	return completion.Choices[0].Message.Content, nil
}
