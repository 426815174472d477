package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/voicevote/voicevote/internal/common"
)

// PinataStore pins images to IPFS through Pinata's pinning API.
type PinataStore struct {
	apiURL     string
	gatewayURL string
	apiKey     string
	apiSecret  string
	httpc      *http.Client
	now        func() time.Time
}

type PinataOption func(*PinataStore)

// WithPinataAPIURL overrides the pinning endpoint (tests).
func WithPinataAPIURL(url string) PinataOption {
	return func(p *PinataStore) { p.apiURL = url }
}

func WithPinataHTTPClient(c *http.Client) PinataOption {
	return func(p *PinataStore) { p.httpc = c }
}

// NewPinataStore builds a store pinning through the given gateway, e.g.
// "https://gateway.pinata.cloud".
func NewPinataStore(gatewayURL, apiKey, apiSecret string, opts ...PinataOption) *PinataStore {
	p := &PinataStore{
		apiURL:     "https://api.pinata.cloud/pinning/pinFileToIPFS",
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpc:      &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *PinataStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ValidateImage(data); err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}

	metadata, err := json.Marshal(map[string]any{
		"name": fmt.Sprintf("voicevote-post-%d", p.now().UnixMilli()),
		"keyvalues": map[string]string{
			"app": "voicevote-app",
		},
	})
	if err != nil {
		return "", err
	}
	if err := mw.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.apiSecret)

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinning failed with status %d: %s", resp.StatusCode, raw)
	}

	var pinResp struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.Unmarshal(raw, &pinResp); err != nil {
		return "", fmt.Errorf("failed to decode pinning response: %w", err)
	}
	if pinResp.IpfsHash == "" {
		return "", fmt.Errorf("pinning response carried no hash")
	}

	return p.gatewayURL + "/ipfs/" + pinResp.IpfsHash, nil
}
