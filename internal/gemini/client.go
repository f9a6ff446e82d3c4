// Package gemini wraps the generative backend behind the single synchronous
// call the advisor needs: prompt text in, reply text out.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/dvloznov/finance-advisor/internal/advisor"
)

// connectionTestPrompt is the canned prompt used to verify the backend is
// reachable and still answering in the expected shape.
const connectionTestPrompt = `You are a smart financial assistant. Generate a test recommendation.

Return only a JSON object with this structure:
{
  "title": "Connection successful",
  "desc": "The generative backend is responding correctly",
  "type": "no_transactions"
}`

// Client calls the Gemini API with fixed generation parameters and safety
// settings. Those are configuration constants of the batch job, not tunable
// per call.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		// API version v1 is what docs use for current Gemini models.
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewClient: create genai client: %w", err)
	}

	return &Client{
		genai: client,
		model: model,
	}, nil
}

// generationConfig returns the fixed parameters applied to every call:
// moderate sampling, a bounded reply, and medium-and-above blocking across
// all four harm categories.
func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopK:            genai.Ptr[float32](1),
		TopP:            genai.Ptr[float32](1),
		MaxOutputTokens: 2048,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
}

// Generate sends the prompt and returns the model's raw text reply. An
// empty reply (no candidates, or content blocked by the safety filters)
// is an error; the caller skips the user and moves on.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, generationConfig())
	if err != nil {
		return "", fmt.Errorf("Generate: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Generate: empty response from model (no candidates or blocked by safety filters)")
	}

	return text, nil
}

// CheckConnection sends the canned test prompt and verifies the reply
// parses into a valid recommendation. Run before any user is processed so
// a dead backend aborts the job up front.
func (c *Client) CheckConnection(ctx context.Context) error {
	raw, err := c.Generate(ctx, connectionTestPrompt)
	if err != nil {
		return fmt.Errorf("CheckConnection: %w", err)
	}
	if _, err := advisor.ParseRecommendation(raw); err != nil {
		return fmt.Errorf("CheckConnection: unexpected reply shape: %w", err)
	}
	return nil
}
