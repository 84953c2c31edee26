package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Viewer.Scene != "cube" {
		t.Errorf("expected scene 'cube', got %s", cfg.Viewer.Scene)
	}
	if cfg.Viewer.DoubleSided {
		t.Error("expected double_sided to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshview.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

viewer:
  scene: "merged"
  double_sided: true
  background: [0.0, 0.5, 1.0]

logging:
  level: "debug"
  log_file: "meshview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Viewer.Scene != "merged" {
		t.Errorf("expected scene 'merged', got %s", cfg.Viewer.Scene)
	}
	if !cfg.Viewer.DoubleSided {
		t.Error("expected double_sided to be true")
	}
	if cfg.Viewer.Background != [3]float32{0, 0.5, 1} {
		t.Errorf("expected background [0 0.5 1], got %v", cfg.Viewer.Background)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshview.log" {
		t.Errorf("expected log file 'meshview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// Values absent from the file keep their defaults
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshview.yaml")

	yamlContent := `
graphics:
  width: 800
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected default height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Viewer.Scene != "cube" {
		t.Errorf("expected default scene 'cube', got %s", cfg.Viewer.Scene)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshview.yaml")

	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "meshview.yaml")

	cfg := Default()
	cfg.Graphics.Width = 2560
	cfg.Viewer.Scene = "plane"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Graphics.Width != 2560 {
		t.Errorf("round-trip width = %d, want 2560", loaded.Graphics.Width)
	}
	if loaded.Viewer.Scene != "plane" {
		t.Errorf("round-trip scene = %s, want 'plane'", loaded.Viewer.Scene)
	}
}
