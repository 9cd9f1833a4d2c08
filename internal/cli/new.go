package cli

import (
	"fmt"
	"os"

	"github.com/pkgforge-labs/pyforge/internal/buildtool"
	"github.com/pkgforge-labs/pyforge/internal/config"
	"github.com/pkgforge-labs/pyforge/internal/license"
	"github.com/pkgforge-labs/pyforge/internal/manifest"
	"github.com/pkgforge-labs/pyforge/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newToml    string
	newLicense string
	newReadme  string
	newPython  string
	newNoBuild bool
	newOffline bool
)

func init() {
	newCmd.Flags().StringVar(&newToml, "toml", "", "Path to a pyproject.toml file, or manifest content as a string (required)")
	newCmd.Flags().StringVar(&newLicense, "license", "", "License to include: mit, apache-2.0, or gpl-3.0")
	newCmd.Flags().StringVar(&newReadme, "readme", "", "Path to an existing README.md file to copy")
	newCmd.Flags().StringVar(&newPython, "python", "", "Python interpreter for the build step (default: build.python config or python3)")
	newCmd.Flags().BoolVar(&newNoBuild, "no-build", false, "Skip the toolchain upgrade and distribution build")
	newCmd.Flags().BoolVar(&newOffline, "offline", false, "Use bundled license templates instead of fetching")
	_ = newCmd.MarkFlagRequired("toml")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <project_dir>",
	Short: "Scaffold a Python package in an existing directory",
	Long: `Scaffold a Python package: write the pyproject.toml manifest, materialize
an optional LICENSE and a README, and run a best-effort distribution build.

The project directory must already exist. The manifest is written verbatim;
when no --readme is given, a one-line README is synthesized from the
manifest's project name.

Examples:
  pyforge new ./demo --toml ./pyproject.toml --license mit
  pyforge new ./demo --toml 'name = "demo"' --readme ../README.md --no-build`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := args[0]

		config.Load()

		manifestText, err := manifest.Resolve(newToml)
		if err != nil {
			return err
		}

		licenseKey := newLicense
		if licenseKey == "" {
			licenseKey = config.Get(config.KeyDefaultLicense)
		}

		python := newPython
		if python == "" {
			python = config.Get(config.KeyPython)
		}

		var provider license.Provider
		if newOffline {
			provider = license.BundledProvider{}
		} else {
			provider = &license.ChainProvider{
				Primary:  license.NewRemote(),
				Fallback: license.BundledProvider{},
				Warn:     os.Stderr,
			}
		}

		scaffolder := &scaffold.Initializer{
			Licenses: provider,
			Backend:  &buildtool.ExecBackend{Python: python},
			Stderr:   os.Stderr,
		}

		result, err := scaffolder.Create(cmd.Context(), projectDir, scaffold.Options{
			ManifestText: manifestText,
			LicenseKey:   licenseKey,
			ReadmePath:   newReadme,
			SkipBuild:    newNoBuild,
		})
		if err != nil {
			return err
		}

		printNewResult(result)
		return nil
	},
}

func printNewResult(result *scaffold.Result) {
	fmt.Printf("Package created successfully in: %s\n", result.ProjectDir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
	if len(result.Packages) > 0 {
		fmt.Println("\nDiscovered packages:")
		for _, p := range result.Packages {
			fmt.Printf("  %s\n", p)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}
