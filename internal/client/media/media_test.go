package media

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevote/voicevote/internal/common"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	require.NoError(t, ValidateImage(pngBytes(t)))

	require.ErrorIs(t, ValidateImage(nil), common.ErrNoMedia)
	require.ErrorIs(t, ValidateImage([]byte("plain text, definitely not a picture")), common.ErrNotAnImage)

	big := make([]byte, MaxImageSize+1)
	require.ErrorIs(t, ValidateImage(big), common.ErrFileTooBig)
}

func TestPinataStore_Upload(t *testing.T) {
	img := pngBytes(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "key-1", r.Header.Get("pinata_api_key"))
		require.Equal(t, "secret-1", r.Header.Get("pinata_secret_api_key"))

		require.NoError(t, r.ParseMultipartForm(MaxImageSize))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		var meta struct {
			Name      string            `json:"name"`
			Keyvalues map[string]string `json:"keyvalues"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("pinataMetadata")), &meta))
		assert.Contains(t, meta.Name, "voicevote-post-")
		assert.Equal(t, "voicevote-app", meta.Keyvalues["app"])

		json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmHash123"})
	}))
	t.Cleanup(srv.Close)

	store := NewPinataStore("https://gateway.pinata.cloud/", "key-1", "secret-1", WithPinataAPIURL(srv.URL))

	url, err := store.Upload(context.Background(), "report.png", img)
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmHash123", url)
}

func TestPinataStore_RejectsInvalidImageLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	store := NewPinataStore("https://gw", "k", "s", WithPinataAPIURL(srv.URL))
	_, err := store.Upload(context.Background(), "notes.txt", []byte("just words here, nothing else"))
	require.ErrorIs(t, err, common.ErrNotAnImage)
	assert.False(t, called)
}

func TestPinataStore_SurfacesAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	store := NewPinataStore("https://gw", "bad", "creds", WithPinataAPIURL(srv.URL))
	_, err := store.Upload(context.Background(), "report.png", pngBytes(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
