// Package assistant answers free-form questions about vendors and invoices
// by prompting a chat model with a live snapshot of the database.
package assistant

import (
	"context"
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/repository"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = `You are the assistant for an internal vendor and invoice
tracking application. Answer questions using ONLY the database snapshot
provided with each question. Amounts are in the company's ledger currency.
If the snapshot does not contain the answer, say so instead of guessing.
Keep answers short and factual.`

// chatClient is the subset of the OpenAI client the assistant needs,
// extracted so tests can stub the network call.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds assistant model parameters
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Assistant answers questions against a per-call database snapshot
type Assistant struct {
	client    chatClient
	config    Config
	vendors   *repository.VendorRepository
	invoices  *repository.InvoiceRepository
	analytics *repository.AnalyticsRepository
	logger    *zap.Logger
}

// New creates a new assistant backed by the OpenAI API
func New(
	apiKey string,
	config Config,
	vendors *repository.VendorRepository,
	invoices *repository.InvoiceRepository,
	analytics *repository.AnalyticsRepository,
	logger *zap.Logger,
) *Assistant {
	return &Assistant{
		client:    openai.NewClient(apiKey),
		config:    config,
		vendors:   vendors,
		invoices:  invoices,
		analytics: analytics,
		logger:    logger,
	}
}

// Ask answers one question against a fresh snapshot of the database
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	snapshot, err := a.buildSnapshot()
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Database snapshot:\n\n%s\nQuestion: %s", snapshot.Render(), question)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.config.Model,
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		a.logger.Error("Assistant completion failed", zap.Error(err))
		return "", fmt.Errorf("failed to answer question: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	answer := resp.Choices[0].Message.Content
	a.logger.Info("Assistant answered",
		zap.Int("question_len", len(question)),
		zap.Int("answer_len", len(answer)))
	return answer, nil
}
