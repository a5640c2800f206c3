package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used unless overridden.
const DefaultModel = openai.GPT4oMini

// promptTemplate embeds the digest into the fixed report structure.
const promptTemplate = `You are a financial analyst generating a comprehensive Premarket Report for equity traders in India.

Based on the following raw market news and updates, write a concise, actionable, and well-structured report suitable to be read by traders before the Indian stock market opens.

The report should include:
- 🔔 A crisp summary of global cues (GIFT Nifty, US markets, crude, gold, dollar index, bond yields, Asian markets)
- 📊 Domestic market setup: Nifty/Sensex close, support/resistance levels, VIX, FII/DII flows, PCR
- 🔍 Stocks in Focus with reason (news impact, earnings, regulatory update, deals, etc.)
- 💹 Top Trading Ideas (stock, CMP, buy/sell, target, SL)
- 📢 Corporate actions or events (dividends, bonus, board meetings, SME listings)
- 🧾 Bulk/Block deals or fund flow highlights
- ⚠️ Risks to watch (macro, geopolitical, etc.)
- ✅ A strategy summary to guide the trading day

Remove any fluff before the first emoji section like 🔔 or 📊.
Format the output using emojis and headers to make it engaging and scannable. Keep the tone clear, professional, and trader-friendly.

Here is the raw input: %s`

// Generator turns the digest text into the premarket report via chat
// completions. It holds no state beyond the API client.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a report generator with the default model.
func NewGenerator(apiKey string) *Generator {
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  DefaultModel,
	}
}

// NewGeneratorWithModel creates a report generator for a specific model.
func NewGeneratorWithModel(apiKey, model string) *Generator {
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate produces the report text from the digest. A generation
// failure is fatal for the invocation and propagates to the caller.
func (g *Generator) Generate(ctx context.Context, digestText string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, digestText),
			},
		},
		Temperature: 0.7,
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
