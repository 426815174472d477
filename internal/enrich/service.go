// Package enrich turns informal citizen complaints into professional civic
// report captions with hashtags. The heavy lifting is delegated to a text
// Generator (Gemini in production); this package owns the prompt, the JSON
// extraction and the civic-content policy.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotCivic marks content outside the civic-reporting scope.
var ErrNotCivic = errors.New("content not appropriate for civic reporting")

// Suggestion is the enriched caption with its hashtags.
type Suggestion struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// Generator produces the model's raw text for a complaint.
type Generator interface {
	Generate(ctx context.Context, content string) (string, error)
}

// Service validates complaints and shapes the model output.
type Service struct {
	generator Generator
}

func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// Suggest asks the model for a caption/hashtag suggestion. Content the model
// refuses to process returns ErrNotCivic.
func (s *Service) Suggest(ctx context.Context, content string) (Suggestion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Suggestion{}, fmt.Errorf("%w: empty content", ErrNotCivic)
	}

	raw, err := s.generator.Generate(ctx, content)
	if err != nil {
		return Suggestion{}, fmt.Errorf("generation failed: %w", err)
	}

	suggestion, err := parseSuggestion(raw)
	if err != nil {
		return Suggestion{}, err
	}

	suggestion.Hashtags = normalizeHashtags(suggestion.Hashtags)
	return suggestion, nil
}

// parseSuggestion extracts the JSON object from the model output. Models
// occasionally wrap the JSON in prose or code fences, so the parse starts at
// the first brace and ends at the last.
func parseSuggestion(raw string) (Suggestion, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Suggestion{}, fmt.Errorf("model output carried no JSON object")
	}

	var body struct {
		Caption  string   `json:"caption"`
		Hashtags []string `json:"hashtags"`
		Error    string   `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &body); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse model output: %w", err)
	}

	if body.Error != "" {
		return Suggestion{}, fmt.Errorf("%w: %s", ErrNotCivic, body.Error)
	}
	if body.Caption == "" {
		return Suggestion{}, ErrNotCivic
	}

	return Suggestion{Caption: body.Caption, Hashtags: body.Hashtags}, nil
}

func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		out = append(out, tag)
	}
	return out
}
