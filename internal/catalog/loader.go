package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrCatalogUnavailable wraps every failure mode of the one-shot catalog
// read: unreachable source, non-success status, unreadable or malformed
// document. The load is not retried; the caller decides how to degrade.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Loader performs the single catalog read of a page session. The source is
// either an http(s) URL or a local file path.
type Loader struct {
	Client *http.Client
}

func NewLoader() *Loader {
	return &Loader{Client: &http.Client{Timeout: 5 * time.Second}}
}

func (l *Loader) Load(ctx context.Context, source string) ([]Product, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.loadHTTP(ctx, source)
	}
	return l.loadFile(source)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}
	return products, nil
}

func (l *Loader) loadFile(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}
	return products, nil
}
