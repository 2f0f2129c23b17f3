package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "bhloop.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestFindRoot_WalksUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bhloop: {}\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root %q, got %q", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFinder().FindRoot(dir)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
