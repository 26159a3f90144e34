package asset

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// Loader resolves to image data. Implementations honour ctx for
// cancellation and timeouts.
type Loader interface {
	Load(ctx context.Context) (*Image, error)
}

// FileLoader loads an image from the local filesystem.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", l.Path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", l.Path, err)
	}
	return img, nil
}

// StatusError is returned by HTTPLoader when the server answers with a
// non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPLoader fetches an image with a GET request. A nil Client means
// http.DefaultClient.
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func (l HTTPLoader) Load(ctx context.Context) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", l.URL, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", l.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: l.URL, StatusCode: resp.StatusCode}
	}
	img, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", l.URL, err)
	}
	return img, nil
}
