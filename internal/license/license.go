package license

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Supported license keys.
const (
	KeyMIT    = "mit"
	KeyApache = "apache-2.0"
	KeyGPL3   = "gpl-3.0"
)

// templateURLs maps each supported key to the remote template source.
var templateURLs = map[string]string{
	KeyMIT:    "https://raw.githubusercontent.com/OpenSourceInitiative/licenses/master/MIT",
	KeyApache: "https://raw.githubusercontent.com/apache/licenses/master/LICENSE-2.0",
	KeyGPL3:   "https://raw.githubusercontent.com/tldr-pages/tldr/master/licenses/gpl-3.0.md",
}

// ErrUnknownLicense is returned when a key is not in the supported set.
// It is always raised before any network I/O.
var ErrUnknownLicense = errors.New("unknown license type")

// Provider resolves a license key to its template text.
type Provider interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// Normalize lowercases and trims a user-supplied license key.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Keys returns the supported license keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(templateURLs))
	for k := range templateURLs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// URLFor returns the remote template URL for a key.
func URLFor(key string) (string, error) {
	url, ok := templateURLs[Normalize(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownLicense, key, strings.Join(Keys(), ", "))
	}
	return url, nil
}
