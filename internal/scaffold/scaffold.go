package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkgforge-labs/pyforge/internal/buildtool"
	"github.com/pkgforge-labs/pyforge/internal/license"
	"github.com/pkgforge-labs/pyforge/internal/manifest"
)

// Output file names produced by a run.
const (
	LicenseFileName = "LICENSE"
	ReadmeFileName  = "README.md"
)

// Options controls a single scaffold run.
type Options struct {
	// ManifestText is written verbatim to pyproject.toml.
	ManifestText string

	// LicenseKey selects a license template. Empty means no LICENSE file.
	LicenseKey string

	// ReadmePath names an existing README to copy. Empty means a README
	// is synthesized from the manifest.
	ReadmePath string

	// SkipBuild disables the best-effort toolchain steps.
	SkipBuild bool
}

// Result holds the outcome of a scaffold run.
type Result struct {
	ProjectDir string
	Files      []string
	Packages   []string
	Warnings   []string
}

// Initializer materializes a Python package: manifest, optional license,
// README, and a best-effort build. Licenses and Backend are injectable so
// tests never touch the network or real tooling.
type Initializer struct {
	Licenses license.Provider
	Backend  buildtool.Backend

	// Stderr receives progress for the best-effort steps; defaults to os.Stderr.
	Stderr io.Writer
}

// Create runs the full initialization sequence. The manifest, license, and
// README files are all on disk before any toolchain call; toolchain
// failures surface as Result warnings, never as errors.
func (i *Initializer) Create(ctx context.Context, projectDir string, opts Options) (*Result, error) {
	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, fmt.Errorf("project directory %s: %w", projectDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not a directory", projectDir)
	}

	result := &Result{ProjectDir: projectDir}

	if err := i.writeManifest(projectDir, opts.ManifestText, result); err != nil {
		return nil, err
	}

	if opts.LicenseKey != "" {
		if err := i.writeLicense(ctx, projectDir, opts.LicenseKey, result); err != nil {
			return nil, err
		}
	}

	if err := i.writeReadme(projectDir, opts, result); err != nil {
		return nil, err
	}

	if !opts.SkipBuild {
		i.runBuild(ctx, projectDir, result)
	}

	return result, nil
}

func (i *Initializer) writeManifest(projectDir, text string, result *Result) error {
	path := filepath.Join(projectDir, manifest.FileName)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	result.Files = append(result.Files, manifest.FileName)

	// Validation issues never block the run.
	if valResult, err := manifest.Validate(text); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not validate manifest: %v", err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	if m, err := manifest.Parse(text); err == nil {
		if err := manifest.CheckVersion(m.Project.Version); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	return nil
}

func (i *Initializer) writeLicense(ctx context.Context, projectDir, key string, result *Result) error {
	if i.Licenses == nil {
		return fmt.Errorf("license %q requested but no license provider is configured", key)
	}

	text, err := i.Licenses.Fetch(ctx, key)
	if err != nil {
		return err
	}

	path := filepath.Join(projectDir, LicenseFileName)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	result.Files = append(result.Files, LicenseFileName)
	return nil
}

func (i *Initializer) writeReadme(projectDir string, opts Options, result *Result) error {
	path := filepath.Join(projectDir, ReadmeFileName)

	if opts.ReadmePath != "" {
		data, err := os.ReadFile(opts.ReadmePath)
		if err != nil {
			return fmt.Errorf("reading README source %s: %w", opts.ReadmePath, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		result.Files = append(result.Files, ReadmeFileName)
		return nil
	}

	title, err := manifest.Title(opts.ManifestText)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte("# "+title), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	result.Files = append(result.Files, ReadmeFileName)
	return nil
}

// runBuild performs the best-effort toolchain steps after all files exist.
func (i *Initializer) runBuild(ctx context.Context, projectDir string, result *Result) {
	if i.Backend == nil {
		return
	}

	stderr := i.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if err := i.Backend.UpgradeToolchain(ctx, projectDir); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("toolchain upgrade failed: %v", err))
		fmt.Fprintf(stderr, "Warning: toolchain upgrade failed: %v\n", err)
	}

	packages, err := buildtool.DiscoverPackages(projectDir)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("package discovery failed: %v", err))
	} else {
		result.Packages = packages
	}

	if err := i.Backend.BuildDistribution(ctx, projectDir); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("distribution build failed: %v", err))
		fmt.Fprintf(stderr, "Warning: distribution build failed: %v\n", err)
	}
}
