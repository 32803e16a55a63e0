package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient backs both oracle contracts with the Gemini API: a flash text
// model for compliance prompts and a flash image model for product shots.
// Every call carries its own deadline.
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
	log        *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string, timeout time.Duration, log *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		timeout:    timeout,
		log:        log,
	}, nil
}

func (g *GeminiClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Complete sends a prompt to the text model and returns the raw response text.
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

// GenerateImage asks the image model for a single rendering at the requested
// aspect ratio and returns the raw image bytes.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspectRatio,
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.imageModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini image generation failed: %w", err)
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("no image data received from gemini")
}
