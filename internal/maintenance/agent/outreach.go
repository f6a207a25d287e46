package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"leasewell_backend/platform/apperr"
)

const outreachSystemPrompt = "You are a professional property management assistant. Generate concise, professional messages for contractor outreach."

func outreachPrompt(req Request, contractor Contractor) string {
	rating := "N/A"
	if contractor.Rating != nil {
		rating = fmt.Sprintf("%.1f", *contractor.Rating)
	}

	return fmt.Sprintf(`You are a property management assistant reaching out to a contractor for a maintenance request. Generate a professional, concise message to %s requesting a quote.

Maintenance Request Details:
- Issue: %s
- Description: %s
- Category: %s
- Priority: %s
- Property Address: %s

Contractor Information:
- Name: %s
- Rating: %s
- Reviews: %d

Generate a friendly, professional message (2-3 sentences) that:
1. Introduces the property management company
2. Briefly describes the maintenance issue
3. Requests a quote and availability
4. Mentions the property address
5. Asks for their best price

Keep it concise and professional. Do not include any greetings or signatures, just the message body.`,
		contractor.Name, req.Title, req.Description, req.Category, req.Priority,
		req.OutreachAddress(), contractor.Name, rating, contractor.ReviewCount)
}

// OpenAIGenerator generates outreach messages through the OpenAI chat API.
type OpenAIGenerator struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOpenAIGenerator creates an OpenAI-backed generator.
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		apiKey: apiKey,
		model:  "gpt-4o-mini",
		url:    "https://api.openai.com/v1/chat/completions",
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// GenerateOutreach produces the outreach message for one contractor.
func (g *OpenAIGenerator) GenerateOutreach(ctx context.Context, req Request, contractor Contractor) (string, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model: g.model,
		Messages: []openAIMessage{
			{Role: "system", Content: outreachSystemPrompt},
			{Role: "user", Content: outreachPrompt(req, contractor)},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "openai request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Upstream(fmt.Sprintf("openai API returned %d", resp.StatusCode))
	}

	var parsed openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", apperr.Upstream("openai returned no choices")
	}
	message := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if message == "" {
		return "", apperr.Upstream("openai returned an empty message")
	}
	return message, nil
}

// AnthropicGenerator generates outreach messages through the Anthropic
// messages API.
type AnthropicGenerator struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewAnthropicGenerator creates an Anthropic-backed generator.
func NewAnthropicGenerator(apiKey string) *AnthropicGenerator {
	return &AnthropicGenerator{
		apiKey: apiKey,
		model:  "claude-3-5-sonnet-20241022",
		url:    "https://api.anthropic.com/v1/messages",
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateOutreach produces the outreach message for one contractor.
func (g *AnthropicGenerator) GenerateOutreach(ctx context.Context, req Request, contractor Contractor) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     g.model,
		MaxTokens: 200,
		System:    outreachSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: outreachPrompt(req, contractor)},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "anthropic request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Upstream(fmt.Sprintf("anthropic API returned %d", resp.StatusCode))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Content) == 0 {
		return "", apperr.Upstream("anthropic returned no content")
	}
	message := strings.TrimSpace(parsed.Content[0].Text)
	if message == "" {
		return "", apperr.Upstream("anthropic returned an empty message")
	}
	return message, nil
}

// TemplateGenerator produces outreach messages from canned templates. Used
// when no AI credential is configured.
type TemplateGenerator struct {
	rng *rand.Rand
}

// NewTemplateGenerator creates a template-backed generator using the given
// random source.
func NewTemplateGenerator(rng *rand.Rand) *TemplateGenerator {
	return &TemplateGenerator{rng: rng}
}

// GenerateOutreach picks one of three templates parameterized by the
// contractor and request.
func (g *TemplateGenerator) GenerateOutreach(_ context.Context, req Request, contractor Contractor) (string, error) {
	address := req.OutreachAddress()
	templates := []string{
		fmt.Sprintf("Hello %s, we have a %s maintenance issue at %s. %s. We're looking for a quote and availability. Could you provide your best price?",
			contractor.Name, req.Category, address, req.Title),
		fmt.Sprintf("Hi %s, we need a quote for a %s priority %s repair at %s. The issue: %s. Please let us know your availability and pricing.",
			contractor.Name, req.Priority, req.Category, address, req.Title),
		fmt.Sprintf("Dear %s, we're seeking a contractor for a maintenance request at %s. Issue: %s (%s). We'd appreciate a quote and your earliest availability.",
			contractor.Name, address, req.Title, req.Category),
	}
	return templates[g.rng.Intn(len(templates))], nil
}
