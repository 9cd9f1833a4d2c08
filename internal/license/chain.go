package license

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ChainProvider tries a primary provider and falls back to a secondary on
// transport failure. Unknown keys and non-2xx responses do not fall back:
// both mean the request itself was wrong or refused, and silently
// substituting a bundled template would mask that.
type ChainProvider struct {
	Primary  Provider
	Fallback Provider

	// Warn receives a one-line notice when the fallback is used. Nil discards.
	Warn io.Writer
}

// Fetch resolves key through the primary provider, consulting the fallback
// only on transport errors.
func (c *ChainProvider) Fetch(ctx context.Context, key string) (string, error) {
	text, err := c.Primary.Fetch(ctx, key)
	if err == nil {
		return text, nil
	}

	var statusErr *StatusError
	if errors.Is(err, ErrUnknownLicense) || errors.As(err, &statusErr) {
		return "", err
	}

	if c.Warn != nil {
		fmt.Fprintf(c.Warn, "license fetch failed (%v); using bundled template\n", err)
	}
	return c.Fallback.Fetch(ctx, key)
}
