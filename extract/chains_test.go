package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultChainConfig_Valid(t *testing.T) {
	if err := DefaultChainConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadChainConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yml")
	yml := `
title:
  - sel: 'h2.new-title'
image_hosts:
  - example.com
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadChainConfig(path)
	if err != nil {
		t.Fatalf("LoadChainConfig: %v", err)
	}

	if len(cfg.Title) != 1 || cfg.Title[0].Sel != "h2.new-title" {
		t.Errorf("Title = %+v, want single override", cfg.Title)
	}
	if len(cfg.ImageHosts) != 1 || cfg.ImageHosts[0] != "example.com" {
		t.Errorf("ImageHosts = %v, want override", cfg.ImageHosts)
	}

	// Untouched chains keep their defaults.
	def := DefaultChainConfig()
	if len(cfg.PriceFallbacks) != len(def.PriceFallbacks) {
		t.Errorf("PriceFallbacks = %+v, want defaults", cfg.PriceFallbacks)
	}
	if cfg.ImageGallery != def.ImageGallery {
		t.Errorf("ImageGallery = %q, want default %q", cfg.ImageGallery, def.ImageGallery)
	}
}

func TestLoadChainConfig_InvalidSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yml")
	yml := `
title:
  - sel: 'span[['
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadChainConfig(path)
	if err == nil {
		t.Fatal("LoadChainConfig = nil error, want selector parse failure")
	}
	// Falls back to defaults so the caller can decide to proceed or abort.
	if len(cfg.Title) != len(DefaultChainConfig().Title) {
		t.Errorf("Title = %+v, want defaults on error", cfg.Title)
	}
}

func TestLoadChainConfig_MissingFile(t *testing.T) {
	_, err := LoadChainConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("LoadChainConfig = nil error, want read failure")
	}
}

func TestLoadChainConfig_EmptySelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yml")
	yml := `
description:
  - sel: '   '
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadChainConfig(path); err == nil {
		t.Fatal("LoadChainConfig = nil error, want empty-selector failure")
	}
}
