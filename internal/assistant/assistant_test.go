package assistant

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
)

type fakeChatClient struct {
	lastRequest openai.ChatCompletionRequest
	answer      string
	err         error
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.answer}},
		},
	}, nil
}

func newTestAssistant(t *testing.T) (*Assistant, *fakeChatClient) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	logger := zap.NewNop()
	vendors := repository.NewVendorRepository(db, logger)
	invoices := repository.NewInvoiceRepository(db, logger)
	analytics := repository.NewAnalyticsRepository(db, logger)

	vendor := &models.Vendor{VendorName: "TechMart Solutions", BusinessType: "IT Services", CreatedBy: "jdoe"}
	require.NoError(t, vendors.Create(vendor))

	number := "INV007"
	date := "03/14/2024"
	amount := 1234.56
	require.NoError(t, invoices.Create(&models.Invoice{
		InvoiceNumber: &number,
		Date:          &date,
		Amount:        &amount,
		VendorID:      &vendor.ID,
		CreatedBy:     "jdoe",
	}))

	client := &fakeChatClient{answer: "TechMart Solutions has one invoice."}
	a := &Assistant{
		client:    client,
		config:    Config{Model: "gpt-4o-mini", MaxTokens: 500},
		vendors:   vendors,
		invoices:  invoices,
		analytics: analytics,
		logger:    logger,
	}
	return a, client
}

func TestAsk_IncludesSnapshotInPrompt(t *testing.T) {
	a, client := newTestAssistant(t)

	answer, err := a.Ask(context.Background(), "How many invoices does TechMart have?")
	require.NoError(t, err)
	assert.Equal(t, "TechMart Solutions has one invoice.", answer)

	require.Len(t, client.lastRequest.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.lastRequest.Messages[0].Role)

	prompt := client.lastRequest.Messages[1].Content
	assert.Contains(t, prompt, "TechMart Solutions")
	assert.Contains(t, prompt, "INV007")
	assert.Contains(t, prompt, "03/14/2024")
	assert.Contains(t, prompt, "How many invoices does TechMart have?")
}

func TestAsk_PropagatesClientError(t *testing.T) {
	a, client := newTestAssistant(t)
	client.err = errors.New("rate limited")

	_, err := a.Ask(context.Background(), "anything")
	assert.Error(t, err)
}

func TestSnapshotRender_AbsentFields(t *testing.T) {
	snapshot := &Snapshot{
		Overview: &repository.Overview{InvoiceCount: 1},
		Invoices: []*models.Invoice{{ID: 9, CreatedBy: "guest"}},
	}

	rendered := snapshot.Render()
	assert.Contains(t, rendered, "#9")
	assert.Contains(t, rendered, "amount=n/a")
	assert.Contains(t, rendered, "date=n/a")
}
