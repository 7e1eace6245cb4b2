package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avolkov/dirscope/internal/core/domain"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	ruleSet, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ruleSet.Extensions["pdf"] != domain.CategoryDocuments {
		t.Errorf("pdf mapped to %q", ruleSet.Extensions["pdf"])
	}
	if len(ruleSet.Subjects) != 5 {
		t.Errorf("got %d subjects, want 5", len(ruleSet.Subjects))
	}
}

func TestLoadMergesExtensionOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `extensions:
  ".epub": Documents
  py: Documents
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ruleSet.Extensions["epub"] != domain.CategoryDocuments {
		t.Errorf("epub mapped to %q", ruleSet.Extensions["epub"])
	}
	if ruleSet.Extensions["py"] != domain.CategoryDocuments {
		t.Errorf("py override not applied, got %q", ruleSet.Extensions["py"])
	}
	if ruleSet.Extensions["jpg"] != domain.CategoryImages {
		t.Errorf("default jpg mapping lost, got %q", ruleSet.Extensions["jpg"])
	}
	if len(ruleSet.Subjects) != 5 {
		t.Errorf("subjects replaced unexpectedly, got %d", len(ruleSet.Subjects))
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("Load() with missing file, want error")
	}
}
