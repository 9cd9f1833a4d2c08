package buildtool

import "context"

// Backend abstracts the external Python packaging toolchain so the
// scaffolder can be tested without invoking real tooling. Both operations
// are best-effort from the caller's perspective: failures become warnings,
// never fatal errors.
type Backend interface {
	// UpgradeToolchain brings pip, setuptools, and build up to date.
	UpgradeToolchain(ctx context.Context, projectDir string) error

	// BuildDistribution generates sdist/wheel artifacts for the project.
	BuildDistribution(ctx context.Context, projectDir string) error
}
