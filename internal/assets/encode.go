package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coverstudio/internal/domain"
)

const fetchTimeout = 30 * time.Second

// Encode reads the full binary content of an uploaded file and wraps it as a
// transport-neutral reference image. The declared MIME type is trusted as-is.
func Encode(r io.Reader, mimeType string) (*domain.ReferenceImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.ReadError{Err: err}
	}
	if len(data) == 0 {
		return nil, &domain.ReadError{Err: io.ErrUnexpectedEOF}
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &domain.ReferenceImage{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Decode returns the original bytes of an encoded reference image.
func Decode(img *domain.ReferenceImage) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return nil, &domain.ReadError{Err: err}
	}
	return raw, nil
}

// PresetFetcher re-fetches the configured preset person photo for every
// image-generation invocation. Nothing is cached: the asset lives only for
// the duration of one call.
type PresetFetcher struct {
	url    string
	client *http.Client
}

func NewPresetFetcher(url string, client *http.Client) *PresetFetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &PresetFetcher{url: url, client: client}
}

// Fetch downloads the preset photo and encodes it. All failures are
// FetchError so callers can surface a system-fetch message instead of a
// provider one.
func (f *PresetFetcher) Fetch(ctx context.Context) (*domain.ReferenceImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: f.url, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: f.url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{URL: f.url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{URL: f.url, Err: err}
	}
	mimeType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return &domain.ReferenceImage{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
