// Package enrich calls the caption/hashtag suggestion service from the post
// composer.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voicevote/voicevote/internal/common"
)

// ErrRejected means the service refused the content as non-civic. The
// caller shows the service's message next to the caption field.
var ErrRejected = errors.New("content rejected by suggestion service")

// Suggestion mirrors the service response.
type Suggestion struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// Client talks to the suggestion service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Suggest submits the draft caption and returns the service's suggestion.
func (c *Client) Suggest(ctx context.Context, content string) (Suggestion, error) {
	body, err := json.Marshal(map[string]string{"content": strings.TrimSpace(content)})
	if err != nil {
		return Suggestion{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai-suggest-caption", bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Suggestion{}, err
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		if e.Error == "" {
			e.Error = "content not appropriate for civic reporting"
		}
		return Suggestion{}, fmt.Errorf("%w: %s", ErrRejected, e.Error)
	case resp.StatusCode != http.StatusOK:
		return Suggestion{}, fmt.Errorf("%w: suggestion service returned status %d", common.ErrUnavailable, resp.StatusCode)
	}

	var suggestion Suggestion
	if err := json.Unmarshal(raw, &suggestion); err != nil {
		return Suggestion{}, fmt.Errorf("failed to decode suggestion: %w", err)
	}
	return suggestion, nil
}
