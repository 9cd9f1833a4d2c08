package license

import (
	"context"
	"embed"
	"fmt"
)

//go:embed templates
var templateFS embed.FS

// BundledProvider serves license templates embedded in the binary. It is the
// offline fallback behind ChainProvider; the bundled apache-2.0 and gpl-3.0
// entries carry the standard application notices rather than the full
// multi-page texts, which only the remote sources provide.
type BundledProvider struct{}

// Fetch returns the embedded template for key.
func (BundledProvider) Fetch(_ context.Context, key string) (string, error) {
	norm := Normalize(key)
	if _, err := URLFor(norm); err != nil {
		return "", err
	}

	data, err := templateFS.ReadFile("templates/" + norm + ".txt")
	if err != nil {
		return "", fmt.Errorf("reading bundled template for %s: %w", norm, err)
	}
	return string(data), nil
}
