package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Provider struct {
	apiKey string
	model  string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) defaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-1.5-flash"
}

func (p *Provider) Answer(ctx context.Context, req advisor.Request) (*advisor.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.defaultModel())
	var temperature float32 = 0.4
	model.Temperature = &temperature

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	output, err := textFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &advisor.Response{
		Text:      output,
		LatencyMs: latency,
	}, nil
}

// textFromResponse concatenates the text parts of the first candidate.
// Safety-blocked responses carry a candidate with nil Content.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}
	return output, nil
}

func buildPrompt(req advisor.Request) string {
	language := "English"
	if req.Language == "hi" {
		language = "Hindi"
	}

	return fmt.Sprintf(`You are a farming advisory assistant for Indian farmers.
Answer the question below in %s, in a few short practical sentences.
Cover crops, soil, irrigation, pests, weather and market practices;
if the question is outside farming, ask for a farming-related question.

Question: %s`, language, req.Question)
}
