package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/rss.xml"

settings:
  enabled: true
  refresh_interval: 1800
  max_items: 25
  timeout: 15
  extract_content: true

excludes:
  - "sponsored"
`

	err := os.WriteFile(filepath.Join(tempDir, "technews.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	sourceConfig, err := configCache.GetConfig("technews")
	if err != nil {
		t.Fatal(err)
	}

	if sourceConfig.Name != "technews" {
		t.Errorf("Expected name 'technews', got '%s'", sourceConfig.Name)
	}
	if sourceConfig.URL != "https://example.com/rss.xml" {
		t.Errorf("Expected URL 'https://example.com/rss.xml', got '%s'", sourceConfig.URL)
	}
	if sourceConfig.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected refresh interval 1800, got %d", sourceConfig.Settings.RefreshInterval)
	}
	if sourceConfig.Settings.MaxItems != 25 {
		t.Errorf("Expected max items 25, got %d", sourceConfig.Settings.MaxItems)
	}
	if !sourceConfig.Settings.ExtractContent {
		t.Error("Expected content extraction enabled")
	}
	if len(sourceConfig.Excludes) != 1 {
		t.Errorf("Expected 1 exclude pattern, got %d", len(sourceConfig.Excludes))
	}
}

func TestConfigCacheLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/rss.xml"

settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "minimal.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	sourceConfig, err := configCache.GetConfig("minimal")
	if err != nil {
		t.Fatal(err)
	}

	if sourceConfig.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", sourceConfig.Settings.RefreshInterval)
	}
	if sourceConfig.Settings.MaxItems != 100 {
		t.Errorf("Expected default max items 100, got %d", sourceConfig.Settings.MaxItems)
	}
	if sourceConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", sourceConfig.Settings.Timeout)
	}
}

func TestConfigCacheRejectsMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "broken.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache("/nonexistent/path")

	if err := configCache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}

func TestConfigCacheGetEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	enabled := `
url: "https://example.com/a.xml"
settings:
  enabled: true
`
	disabled := `
url: "https://example.com/b.xml"
settings:
  enabled: false
`

	if err := os.WriteFile(filepath.Join(tempDir, "on.yml"), []byte(enabled), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "off.yml"), []byte(disabled), 0644); err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	enabledConfigs := configCache.GetEnabledConfigs()
	if len(enabledConfigs) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabledConfigs))
	}
	if _, ok := enabledConfigs["on"]; !ok {
		t.Error("Expected 'on' source in enabled configs")
	}
}

func TestConfigCacheGetUnknownConfig(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())

	if _, err := configCache.GetConfig("missing"); err == nil {
		t.Error("Expected error for unknown source name")
	}
}
