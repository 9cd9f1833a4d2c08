package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgforge-labs/pyforge/internal/license"
)

const sampleManifest = `[build-system]
requires = ["setuptools>=68", "build"]
build-backend = "setuptools.build_meta"

[project]
name = "demo-pkg"
version = "0.1.0"
description = "A demo package"
`

// staticProvider returns fixed text for every known key.
type staticProvider struct {
	text string
	err  error
}

func (p staticProvider) Fetch(_ context.Context, key string) (string, error) {
	if _, err := license.URLFor(key); err != nil {
		return "", err
	}
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

// recordingBackend captures which files existed when each step ran.
type recordingBackend struct {
	upgradeErr error
	buildErr   error

	filesAtUpgrade []string
	filesAtBuild   []string
}

func (b *recordingBackend) UpgradeToolchain(_ context.Context, dir string) error {
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		b.filesAtUpgrade = append(b.filesAtUpgrade, e.Name())
	}
	return b.upgradeErr
}

func (b *recordingBackend) BuildDistribution(_ context.Context, dir string) error {
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		b.filesAtBuild = append(b.filesAtBuild, e.Name())
	}
	return b.buildErr
}

func newInitializer(p license.Provider, b *recordingBackend) *Initializer {
	return &Initializer{
		Licenses: p,
		Backend:  b,
		Stderr:   io.Discard,
	}
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertNoFile(t *testing.T, dir, name string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s should not exist, stat error = %v", name, err)
	}
}

func TestCreate_ManifestVerbatim(t *testing.T) {
	dir := t.TempDir()
	scaffolder := newInitializer(staticProvider{text: "x"}, &recordingBackend{})

	result, err := scaffolder.Create(context.Background(), dir, Options{
		ManifestText: sampleManifest,
		SkipBuild:    true,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if got := readOutput(t, dir, "pyproject.toml"); got != sampleManifest {
		t.Errorf("pyproject.toml content differs from input:\n%s", got)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCreate_SynthesizedReadme(t *testing.T) {
	t.Run("structured title", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := newInitializer(staticProvider{}, &recordingBackend{})

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: sampleManifest,
			SkipBuild:    true,
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}

		if got := readOutput(t, dir, "README.md"); got != "# demo-pkg" {
			t.Errorf("README.md = %q, want %q", got, "# demo-pkg")
		}
	})

	t.Run("first line fallback", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := newInitializer(staticProvider{}, &recordingBackend{})

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: "title = My Project\nnot [ toml",
			SkipBuild:    true,
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}

		if got := readOutput(t, dir, "README.md"); got != "# My Project" {
			t.Errorf("README.md = %q, want %q", got, "# My Project")
		}
	})

	t.Run("underivable title is fatal", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := newInitializer(staticProvider{}, &recordingBackend{})

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: "[ broken\n",
			SkipBuild:    true,
		})
		if err == nil {
			t.Fatal("Create() expected error for underivable title")
		}
		assertNoFile(t, dir, "README.md")
	})
}

func TestCreate_ReadmeCopyIsByteExact(t *testing.T) {
	dir := t.TempDir()
	srcDir := t.TempDir()

	content := "# Existing\n\nwith\ttabs and trailing space \n\x00binary\n"
	src := filepath.Join(srcDir, "README.md")
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	scaffolder := newInitializer(staticProvider{}, &recordingBackend{})
	_, err := scaffolder.Create(context.Background(), dir, Options{
		ManifestText: sampleManifest,
		ReadmePath:   src,
		SkipBuild:    true,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if got := readOutput(t, dir, "README.md"); got != content {
		t.Errorf("README.md bytes differ from source")
	}
}

func TestCreate_License(t *testing.T) {
	t.Run("written from provider", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := newInitializer(staticProvider{text: "LICENSE TEXT"}, &recordingBackend{})

		result, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: sampleManifest,
			LicenseKey:   "mit",
			SkipBuild:    true,
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}

		if got := readOutput(t, dir, "LICENSE"); got != "LICENSE TEXT" {
			t.Errorf("LICENSE = %q", got)
		}
		want := []string{"pyproject.toml", "LICENSE", "README.md"}
		if len(result.Files) != len(want) {
			t.Fatalf("Files = %v, want %v", result.Files, want)
		}
		for i := range want {
			if result.Files[i] != want[i] {
				t.Errorf("Files[%d] = %q, want %q", i, result.Files[i], want[i])
			}
		}
	})

	t.Run("unknown key aborts", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := newInitializer(staticProvider{text: "x"}, &recordingBackend{})

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: sampleManifest,
			LicenseKey:   "bsd",
			SkipBuild:    true,
		})
		if !errors.Is(err, license.ErrUnknownLicense) {
			t.Fatalf("Create() error = %v, want ErrUnknownLicense", err)
		}
		assertNoFile(t, dir, "LICENSE")
	})

	t.Run("nil provider errors instead of panicking", func(t *testing.T) {
		dir := t.TempDir()
		scaffolder := &Initializer{Stderr: io.Discard}

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: sampleManifest,
			LicenseKey:   "mit",
			SkipBuild:    true,
		})
		if err == nil {
			t.Fatal("Create() expected error for nil license provider")
		}
		assertNoFile(t, dir, "LICENSE")
	})

	t.Run("fetch status error aborts before LICENSE write", func(t *testing.T) {
		dir := t.TempDir()
		fetchErr := &license.StatusError{URL: "https://example.invalid/mit", Code: http.StatusNotFound}
		scaffolder := newInitializer(staticProvider{err: fetchErr}, &recordingBackend{})

		_, err := scaffolder.Create(context.Background(), dir, Options{
			ManifestText: sampleManifest,
			LicenseKey:   "mit",
			SkipBuild:    true,
		})
		var statusErr *license.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Create() error = %v, want StatusError", err)
		}
		assertNoFile(t, dir, "LICENSE")

		// Manifest was already written; abort does not roll it back.
		if got := readOutput(t, dir, "pyproject.toml"); got != sampleManifest {
			t.Errorf("pyproject.toml missing or modified after aborted run")
		}
	})
}

func TestCreate_BuildFailuresAreWarnings(t *testing.T) {
	dir := t.TempDir()
	backend := &recordingBackend{
		upgradeErr: fmt.Errorf("pip exploded"),
		buildErr:   fmt.Errorf("build exploded"),
	}
	scaffolder := newInitializer(staticProvider{text: "L"}, backend)

	result, err := scaffolder.Create(context.Background(), dir, Options{
		ManifestText: sampleManifest,
		LicenseKey:   "mit",
	})
	if err != nil {
		t.Fatalf("Create() error: %v (build failures must not be fatal)", err)
	}

	if len(result.Warnings) != 2 {
		t.Errorf("Warnings = %v, want upgrade and build warnings", result.Warnings)
	}

	// All three files exist despite both backend failures.
	for _, name := range []string{"pyproject.toml", "LICENSE", "README.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing after backend failure: %v", name, err)
		}
	}
}

func TestCreate_FilesExistBeforeBackendRuns(t *testing.T) {
	dir := t.TempDir()
	backend := &recordingBackend{}
	scaffolder := newInitializer(staticProvider{text: "L"}, backend)

	_, err := scaffolder.Create(context.Background(), dir, Options{
		ManifestText: sampleManifest,
		LicenseKey:   "mit",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for _, name := range []string{"pyproject.toml", "LICENSE", "README.md"} {
		found := false
		for _, f := range backend.filesAtUpgrade {
			if f == name {
				found = true
			}
		}
		if !found {
			t.Errorf("%s not on disk when UpgradeToolchain ran (saw %v)", name, backend.filesAtUpgrade)
		}
	}
}

func TestCreate_PackageDiscovery(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "demo_pkg")
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "__init__.py"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	scaffolder := newInitializer(staticProvider{}, &recordingBackend{})
	result, err := scaffolder.Create(context.Background(), dir, Options{ManifestText: sampleManifest})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if len(result.Packages) != 1 || result.Packages[0] != "demo_pkg" {
		t.Errorf("Packages = %v, want [demo_pkg]", result.Packages)
	}
}

func TestCreate_MissingProjectDir(t *testing.T) {
	scaffolder := newInitializer(staticProvider{}, &recordingBackend{})

	_, err := scaffolder.Create(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{
		ManifestText: sampleManifest,
		SkipBuild:    true,
	})
	if err == nil {
		t.Fatal("Create() expected error for missing project dir")
	}
}

func TestCreate_ValidationWarnings(t *testing.T) {
	dir := t.TempDir()
	scaffolder := newInitializer(staticProvider{}, &recordingBackend{})

	// Valid TOML, but project.name is missing and version is not semver.
	text := "[project]\nversion = \"not.a.version.at.all\"\ndescription = \"d\"\n"
	result, err := scaffolder.Create(context.Background(), dir, Options{
		ManifestText: text,
		ReadmePath:   writeTempReadme(t),
		SkipBuild:    true,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if len(result.Warnings) == 0 {
		t.Error("expected validation warnings for missing project.name")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semantic version") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected version warning, got %v", result.Warnings)
	}
}

func writeTempReadme(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte("# x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
