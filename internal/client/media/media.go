// Package media uploads post images. The default backend pins files to IPFS
// through Pinata; an S3 store covers self-hosted deployments. Both return the
// public URL the post will carry.
package media

import (
	"context"
	"net/http"
	"strings"

	"github.com/voicevote/voicevote/internal/common"
)

// MaxImageSize bounds uploads to 10 MiB.
const MaxImageSize = 10 << 20

// Store uploads an image and returns its public URL.
type Store interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ValidateImage sniffs the content and enforces the size limit. Validation
// failures are field-local; callers surface them without aborting the flow.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return common.ErrNoMedia
	}
	if len(data) > MaxImageSize {
		return common.ErrFileTooBig
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return common.ErrNotAnImage
	}
	return nil
}
