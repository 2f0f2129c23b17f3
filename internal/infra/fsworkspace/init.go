// Package fsworkspace scaffolds a bhloop workspace on the filesystem.
package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

const starterConfig = `bhloop:
  paths:
    output_dir: output
    runs_dir: runs
  export:
    format: csv
    plot: false
`

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "output"),
		filepath.Join(root, "runs"),
		filepath.Join(root, ".bhloop", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	cfgPath := filepath.Join(root, "bhloop.yaml")
	if !force {
		if _, statErr := os.Stat(cfgPath); statErr == nil {
			return nil
		}
	}
	return os.WriteFile(cfgPath, []byte(starterConfig), 0o644)
}

func ensureGitignore(root string) error {
	const header = "# bhloop"
	entries := []string{
		"output/",
		"runs/",
		".bhloop/",
		"bhloop_params.ini",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
