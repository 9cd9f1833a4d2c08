package license

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkgforge-labs/pyforge/internal/branding"
)

const defaultFetchTimeout = 30 * time.Second

// StatusError reports a non-2xx response from a template source. It is kept
// distinct from transport errors so ChainProvider can abort instead of
// falling back (a bad status means the source answered and said no).
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching license template from %s: status %d", e.URL, e.Code)
}

// RemoteProvider fetches license templates over HTTP from the fixed
// per-key template URLs.
type RemoteProvider struct {
	httpClient *http.Client
	mirror     string
}

// RemoteOption configures a RemoteProvider.
type RemoteOption func(*RemoteProvider)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(p *RemoteProvider) {
		p.httpClient = c
	}
}

// WithMirror rewrites template URLs to <mirror>/<key>, for air-gapped
// installs and tests.
func WithMirror(mirror string) RemoteOption {
	return func(p *RemoteProvider) {
		p.mirror = mirror
	}
}

// NewRemote creates a RemoteProvider with the given options. The default
// client carries a request timeout so a hung source cannot stall the run.
func NewRemote(opts ...RemoteOption) *RemoteProvider {
	p := &RemoteProvider{
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch downloads the template for key. Unknown keys fail before any
// request is issued.
func (p *RemoteProvider) Fetch(ctx context.Context, key string) (string, error) {
	url, err := URLFor(key)
	if err != nil {
		return "", err
	}
	if p.mirror != "" {
		url = strings.TrimRight(p.mirror, "/") + "/" + Normalize(key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating license request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching license template: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading license template: %w", err)
	}

	return string(body), nil
}
