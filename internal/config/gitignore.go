package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps per-user state out of a committed project directory.
const gitignoreContent = `# dispatchdesk project-local data
# config.yaml is shared with the team; cached responses and logs are not.
cache/
logs/
*.log
`

// GitignoreContent returns the .gitignore written into project directories.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes a .gitignore into dir unless one exists. It reports whether a
// file was created and never overwrites.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("checking .gitignore at %s: %w", path, err)
	}

	if err = os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	//nolint:gosec // .gitignore must be world-readable (0644).
	if err = os.WriteFile(path, []byte(gitignoreContent), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, err)
	}
	return true, nil
}

// InitProjectDir creates a project directory holding a copy of cfg and a .gitignore.
// An existing config.yaml is left untouched unless force is set. It returns the path of
// the project config file.
func InitProjectDir(cfg *Config, projectDir string, force bool) (string, error) {
	path := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	project := *cfg
	project.SetPath(path)
	if err := project.Save(); err != nil {
		return path, err
	}
	if _, err := EnsureGitignore(projectDir); err != nil {
		return path, err
	}
	return path, nil
}
