package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var newGenaiClient = genai.NewClient

// Gemini 以 Google Generative AI SDK 產生文字
type Gemini struct {
	apiKey string
	client *genai.Client
	model  string

	generate func(ctx context.Context, p Prompt) (*genai.GenerateContentResponse, error)
}

// NewGemini apiKey 為空時回傳的 Gemini 每次呼叫都回 ErrNotConfigured
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	g := &Gemini{apiKey: apiKey, model: model}
	if apiKey == "" {
		return g, nil
	}
	client, err := newGenaiClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: init client: %w", redactError(err, apiKey))
	}
	g.client = client
	g.generate = g.generateContent
	return g, nil
}

func (g *Gemini) generateContent(ctx context.Context, p Prompt) (*genai.GenerateContentResponse, error) {
	m := g.client.GenerativeModel(g.model)
	if p.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}
	return m.GenerateContent(ctx, genai.Text(p.User))
}

func (g *Gemini) Complete(ctx context.Context, p Prompt) (string, error) {
	if g.apiKey == "" || g.generate == nil {
		return "", ErrNotConfigured
	}
	resp, err := g.generate(ctx, p)
	if err != nil {
		return "", redactError(fmt.Errorf("gemini: %w", err), g.apiKey)
	}
	return responseText(resp)
}

// responseText 串接第一個候選答案的所有文字片段
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: response has no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini: response has no text")
	}
	return b.String(), nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
