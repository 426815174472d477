package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voicevote/voicevote/internal/client/models"
	"github.com/voicevote/voicevote/internal/common"
)

// HTTPClient implements Client over the backend's JSON envelope protocol.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	timeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.httpc = c }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokens:  tokens,
		timeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// envelope is the common part of every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// doJSON performs one request and decodes the body into out (which must
// embed envelope). auth controls whether the bearer token is attached.
func (h *HTTPClient) doJSON(ctx context.Context, method, path string, body any, auth bool, out any) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if auth {
		token, err := h.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if token == "" {
			return common.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if err := h.mapStatus(ctx, resp.StatusCode, data); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// mapStatus converts HTTP failures into sentinel errors. A 401 additionally
// drops the cached token so the next call starts logged out.
func (h *HTTPClient) mapStatus(ctx context.Context, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var env envelope
	_ = json.Unmarshal(body, &env)

	switch status {
	case http.StatusUnauthorized:
		_ = h.tokens.Invalidate(ctx)
		return common.ErrSessionExpired
	case http.StatusForbidden:
		if env.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrForbidden, env.Message)
		}
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	}

	if env.Message != "" {
		return fmt.Errorf("server rejected request: %s", env.Message)
	}
	return fmt.Errorf("unexpected status %d", status)
}

func (h *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		envelope
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := h.doJSON(ctx, http.MethodPost, "/auth/login", body, false, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		if resp.Message != "" {
			return "", fmt.Errorf("login failed: %s", resp.Message)
		}
		return "", fmt.Errorf("login failed")
	}
	return resp.Token, nil
}

func (h *HTTPClient) CheckNullifier(ctx context.Context, nullifier string) (NullifierCheck, error) {
	var resp envelope
	body := map[string]string{"nullifier": nullifier}
	if err := h.doJSON(ctx, http.MethodPost, "/auth/check-nullifier", body, false, &resp); err != nil {
		return NullifierCheck{}, err
	}
	return NullifierCheck{OK: resp.Success, Message: resp.Message}, nil
}

func (h *HTTPClient) RegisterUser(ctx context.Context, req RegisterRequest) error {
	var resp envelope
	if err := h.doJSON(ctx, http.MethodPost, "/auth/register", req, false, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("registration failed: %s", resp.Message)
	}
	return nil
}

func (h *HTTPClient) AllPosts(ctx context.Context) ([]models.Post, error) {
	var resp struct {
		envelope
		Posts []models.Post `json:"posts"`
	}
	if err := h.doJSON(ctx, http.MethodGet, "/api/posts/all", nil, true, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to load posts: %s", resp.Message)
	}
	return resp.Posts, nil
}

func (h *HTTPClient) Post(ctx context.Context, postID string) (models.Post, error) {
	var resp struct {
		envelope
		Post models.Post `json:"post"`
	}
	if err := h.doJSON(ctx, http.MethodGet, "/api/posts/"+postID, nil, true, &resp); err != nil {
		return models.Post{}, err
	}
	if !resp.Success {
		return models.Post{}, fmt.Errorf("failed to load post: %s", resp.Message)
	}
	return resp.Post, nil
}

func (h *HTTPClient) CreatePost(ctx context.Context, caption string, hashtags []string, imageURL string) error {
	var resp envelope
	body := map[string]any{
		"caption":  caption,
		"hashtags": hashtags,
		"imageUrl": imageURL,
	}
	if err := h.doJSON(ctx, http.MethodPost, "/api/posts", body, true, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("failed to create post: %s", resp.Message)
	}
	return nil
}

func (h *HTTPClient) Like(ctx context.Context, postID string) (models.Post, error) {
	return h.react(ctx, postID, "like")
}

func (h *HTTPClient) Dislike(ctx context.Context, postID string) (models.Post, error) {
	return h.react(ctx, postID, "dislike")
}

func (h *HTTPClient) react(ctx context.Context, postID, action string) (models.Post, error) {
	var resp struct {
		envelope
		Post models.Post `json:"post"`
	}
	path := "/api/posts/" + postID + "/" + action
	if err := h.doJSON(ctx, http.MethodPost, path, map[string]any{}, true, &resp); err != nil {
		return models.Post{}, err
	}
	if !resp.Success {
		return models.Post{}, fmt.Errorf("failed to %s post: %s", action, resp.Message)
	}
	return resp.Post, nil
}

func (h *HTTPClient) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var resp struct {
		envelope
		Dashboard models.Dashboard `json:"dashboard"`
	}
	if err := h.doJSON(ctx, http.MethodGet, "/auth/dashboard", nil, true, &resp); err != nil {
		return models.Dashboard{}, err
	}
	if !resp.Success {
		return models.Dashboard{}, fmt.Errorf("failed to load dashboard: %s", resp.Message)
	}
	return resp.Dashboard, nil
}
