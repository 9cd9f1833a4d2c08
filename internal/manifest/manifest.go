package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest file written into every scaffolded project.
const FileName = "pyproject.toml"

// Manifest is the decoded subset of a pyproject document that the
// scaffolder inspects. The full text is always written verbatim; decoding
// exists only for title derivation and validation.
type Manifest struct {
	Project     Project     `toml:"project"`
	BuildSystem BuildSystem `toml:"build-system"`
}

// Project mirrors the [project] table.
type Project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Description    string   `toml:"description"`
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

// BuildSystem mirrors the [build-system] table.
type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

// Resolve turns the --toml argument into manifest text. If arg names an
// existing file its contents are returned; otherwise arg is treated as
// literal manifest text.
func Resolve(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading manifest file %s: %w", arg, err)
		}
		return string(data), nil
	}
	return arg, nil
}

// Parse decodes manifest text into a Manifest.
func Parse(text string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(text, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Title derives a README heading from manifest text. A decoded
// project.name wins; otherwise the first "key = value" line supplies the
// trimmed value portion.
func Title(text string) (string, error) {
	if m, err := Parse(text); err == nil && m.Project.Name != "" {
		return m.Project.Name, nil
	}
	return firstLineValue(text)
}

// firstLineValue extracts the value portion of the manifest's first
// "key = value" line.
func firstLineValue(text string) (string, error) {
	line, _, _ := strings.Cut(text, "\n")
	_, value, found := strings.Cut(line, "=")
	if !found {
		return "", fmt.Errorf("cannot derive title: first manifest line %q is not key = value", line)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("cannot derive title: first manifest line %q has an empty value", line)
	}
	return value, nil
}

// CheckVersion reports whether project.version parses as a semantic
// version. Callers surface failures as warnings, not errors.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("project.version %q is not a valid semantic version: %w", version, err)
	}
	return nil
}
