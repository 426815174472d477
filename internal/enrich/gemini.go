package enrich

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemPrompt = `You are a specialized civic engagement AI assistant for community reporting.

CORE MISSION: Transform informal citizen complaints into professional civic reports.

STRICT REQUIREMENTS:
1. ONLY process civic issues: infrastructure, public services, utilities, safety, maintenance
2. REJECT inappropriate content: violence, sexual content, hate speech, political attacks
3. Generate formal, actionable complaint language
4. Keep responses under 100 characters for captions
5. Provide relevant civic hashtags with # symbol

RESPONSE FORMAT (JSON only):
{
    "caption": "Professional civic complaint description",
    "hashtags": ["#infrastructure", "#publicsafety", "#utilities"]
}

When content is rejected, respond with:
{
    "error": "Content not appropriate for civic reporting. Please focus on community issues."
}

EXAMPLES:
- "drainage problem" -> "Drainage system failure causing waterlogging. Immediate repair required."
- "broken streetlight" -> "Non-functional street lighting creating safety hazards."
- "water shortage" -> "Water supply disruption affecting residents. Restoration needed."

Focus on: Roads, Water, Electricity, Drainage, Waste, Public Transport, Street Lights, Parks, Safety

IMPORTANT: Always respond with valid JSON only. No additional text or explanations.`

// GeminiGenerator generates suggestions using Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given model (defaults to
// gemini-2.0-flash).
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, content string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(content),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no content returned")
	}
	return text, nil
}
