package buildtool

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories never considered package roots.
var skipDirs = map[string]bool{
	"build":       true,
	"dist":        true,
	"__pycache__": true,
	".venv":       true,
	"venv":        true,
	".git":        true,
}

// DiscoverPackages walks projectDir and returns the dotted names of
// importable Python packages (directories containing __init__.py), sorted.
// It is the find_packages analog, used for reporting what a build will pick up.
func DiscoverPackages(projectDir string) ([]string, error) {
	var packages []string

	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != projectDir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}

		if _, err := os.Stat(filepath.Join(path, "__init__.py")); err == nil {
			rel, relErr := filepath.Rel(projectDir, path)
			if relErr != nil {
				return relErr
			}
			packages = append(packages, strings.ReplaceAll(rel, string(filepath.Separator), "."))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(packages)
	return packages, nil
}
