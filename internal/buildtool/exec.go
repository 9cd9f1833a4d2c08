package buildtool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// ExecBackend shells out to a Python interpreter for toolchain upgrades
// and distribution builds.
type ExecBackend struct {
	// Python is the interpreter binary name or path. Empty means DefaultPython.
	Python string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

func upgradeArgs() []string {
	return []string{"-m", "pip", "install", "--upgrade", "pip", "setuptools", "build"}
}

func buildArgs() []string {
	return []string{"-m", "build"}
}

// UpgradeToolchain runs `python -m pip install --upgrade pip setuptools build`.
func (b *ExecBackend) UpgradeToolchain(ctx context.Context, projectDir string) error {
	return b.run(ctx, projectDir, upgradeArgs())
}

// BuildDistribution runs `python -m build` in the project directory, which
// discovers packages and produces sdist/wheel artifacts under dist/.
func (b *ExecBackend) BuildDistribution(ctx context.Context, projectDir string) error {
	return b.run(ctx, projectDir, buildArgs())
}

func (b *ExecBackend) run(ctx context.Context, dir string, args []string) error {
	python := b.Python
	if python == "" {
		python = DefaultPython
	}

	bin, err := exec.LookPath(python)
	if err != nil {
		return fmt.Errorf("python interpreter %q not found: %w", python, err)
	}

	stdout := b.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := b.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		if tail := lastLine(stderrBuf.String()); tail != "" {
			return fmt.Errorf("%s %s: %w (%s)", python, strings.Join(args, " "), err, tail)
		}
		return fmt.Errorf("%s %s: %w", python, strings.Join(args, " "), err)
	}
	return nil
}

// lastLine returns the final non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
