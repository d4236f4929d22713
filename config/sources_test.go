package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSources(t, `
sources:
  amazon:
    enabled: true
    base_url: https://www.amazon.in
    timeout_seconds: 30
  flipkart:
    enabled: true
    base_url: https://www.flipkart.com
categories:
  products: [amazon, flipkart]
`)

	cfg, err := LoadSources(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Sources["amazon"].Timeout() != 30*time.Second {
		t.Errorf("unexpected amazon timeout: %v", cfg.Sources["amazon"].Timeout())
	}
	// missing timeout falls back to the default
	if cfg.Sources["flipkart"].Timeout() != defaultSourceTimeout {
		t.Errorf("unexpected flipkart timeout: %v", cfg.Sources["flipkart"].Timeout())
	}
	if got := cfg.Categories["products"]; len(got) != 2 || got[0] != "amazon" {
		t.Errorf("unexpected products routing: %v", got)
	}
}

func TestLoadSources_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "UnknownSourceReference",
			content: `
sources:
  amazon: {enabled: true, base_url: https://www.amazon.in}
categories:
  products: [amazon, nope]
`,
		},
		{
			name: "EmptyCategory",
			content: `
sources:
  amazon: {enabled: true, base_url: https://www.amazon.in}
categories:
  products: []
`,
		},
		{
			name:    "NoCategories",
			content: `sources: {amazon: {enabled: true}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadSources(writeSources(t, tc.content)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
