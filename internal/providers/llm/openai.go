package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 20 * time.Second

type OpenAI struct {
	client        *openai.Client
	model         string
	fallbackModel string
	embedModel    openai.EmbeddingModel
	timeout       time.Duration
	log           *logrus.Logger
}

func NewOpenAI(log *logrus.Logger) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	fallback := os.Getenv("OPENAI_FALLBACK_MODEL")
	if fallback == "" {
		fallback = openai.GPT3Dot5Turbo
	}

	return &OpenAI{
		client:        openai.NewClient(apiKey),
		model:         model,
		fallbackModel: fallback,
		embedModel:    openai.SmallEmbedding3,
		timeout:       defaultTimeout,
		log:           log,
	}, nil
}

// Model reports the primary model identifier. It doubles as the model
// part of history keys.
func (p *OpenAI) Model() string { return p.model }

// Generate runs one completion under a wall-clock budget. A failed
// primary call gets one retry against the fallback model, unless the
// budget is already gone.
func (p *OpenAI) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.complete(ctx, p.model, prompt, params)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("completion timed out: %w", err)
	}

	p.log.WithError(err).WithField("fallback", p.fallbackModel).Warn("completion failed, retrying with fallback model")
	text, err = p.complete(ctx, p.fallbackModel, prompt, params)
	if err != nil {
		return "", fmt.Errorf("completion failed after retry: %w", err)
	}
	return text, nil
}

func (p *OpenAI) complete(ctx context.Context, model, prompt string, params GenerationParams) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:       params.MaxTokens,
		Temperature:     params.Temperature,
		TopP:            params.TopP,
		PresencePenalty: params.PresencePenalty,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: p.embedModel,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response is empty")
	}
	return resp.Data[0].Embedding, nil
}
