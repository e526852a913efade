package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected window 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Capture.Width != 320 || cfg.Capture.Height != 180 {
		t.Errorf("expected capture 320x180, got %dx%d", cfg.Capture.Width, cfg.Capture.Height)
	}
	if cfg.Capture.Magnification != 150 {
		t.Errorf("expected magnification 150, got %f", cfg.Capture.Magnification)
	}
	if cfg.Capture.FPS != 30 {
		t.Errorf("expected 30 fps, got %f", cfg.Capture.FPS)
	}

	if cfg.Warper.Enabled {
		t.Error("expected warper to be disabled by default")
	}
	if cfg.Warper.Mode != "full" {
		t.Errorf("expected warper mode 'full', got %s", cfg.Warper.Mode)
	}
	if cfg.Source.Kind != SourceSynthetic {
		t.Errorf("expected synthetic source, got %s", cfg.Source.Kind)
	}

	if !cfg.Audio.Enabled || cfg.Audio.Volume != 0.8 {
		t.Errorf("audio = %+v, want enabled at 0.8", cfg.Audio)
	}
	if cfg.Animation.Watch {
		t.Error("expected animation watch to be off by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

capture:
  width: 640
  height: 360
  magnification: 120
  fps: 60

warper:
  enabled: true
  mode: mouth
  grid: true

source:
  kind: still
  image_path: face.png
  points_path: face.json

animation:
  path: anim.json

logging:
  level: "debug"
  log_file: "fukuwarai.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected window 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Title != "Fukuwarai" {
		t.Errorf("expected title kept from defaults, got %q", cfg.Window.Title)
	}

	if cfg.Capture.Width != 640 || cfg.Capture.Magnification != 120 || cfg.Capture.FPS != 60 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
	if !cfg.Warper.Enabled || cfg.Warper.Mode != "mouth" || !cfg.Warper.Grid {
		t.Errorf("warper = %+v", cfg.Warper)
	}
	if cfg.Source.Kind != SourceStill || cfg.Source.ImagePath != "face.png" || cfg.Source.PointsPath != "face.json" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Animation.Path != "anim.json" {
		t.Errorf("expected animation path anim.json, got %s", cfg.Animation.Path)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "fukuwarai.log" {
		t.Errorf("expected log file 'fukuwarai.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `
[window]
width = 800
height = 600

[warper]
enabled = true
mode = "eyes"

[animation]
path = "anim.yaml"
watch = true

[audio]
volume = 0.25
capture_sound = "click.wav"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected window 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Warper.Enabled || cfg.Warper.Mode != "eyes" {
		t.Errorf("warper = %+v", cfg.Warper)
	}
	if cfg.Animation.Path != "anim.yaml" || !cfg.Animation.Watch {
		t.Errorf("animation = %+v", cfg.Animation)
	}
	if cfg.Audio.Volume != 0.25 || cfg.Audio.CaptureSound != "click.wav" || !cfg.Audio.Enabled {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Capture.Width != 320 {
		t.Errorf("capture width changed to %d", cfg.Capture.Width)
	}
}

func TestLoadFromTOMLUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[window]\nwidht = 800\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown TOML key")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad syntax",
			content: `
window:
  width: not a number
  invalid syntax here
`,
		},
		{
			name: "unknown key",
			content: `
window:
  widht: 800
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file error = %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("empty file changed defaults: width %d", cfg.Window.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero window", modify: func(c *Config) { c.Window.Width = 0 }},
		{name: "zero capture", modify: func(c *Config) { c.Capture.Height = 0 }},
		{name: "zero fps", modify: func(c *Config) { c.Capture.FPS = 0 }},
		{name: "unknown warper mode", modify: func(c *Config) { c.Warper.Mode = "nose" }},
		{name: "unknown source", modify: func(c *Config) { c.Source.Kind = "usb" }},
		{name: "still without files", modify: func(c *Config) { c.Source.Kind = SourceStill }},
		{name: "volume above one", modify: func(c *Config) { c.Audio.Volume = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Warper.Enabled = true
			cfg.Warper.Mode = "eyes"
			cfg.Capture.Magnification = 99
			cfg.Audio.CaptureSound = "shutter.wav"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}

			loaded := Default()
			loaded.Audio.Enabled = false
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("reload error = %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("reloaded config = %+v, want %+v", loaded, cfg)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "animation flag",
			setup: func() { *flagAnimation = "clip.json" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Animation.Path != "clip.json" {
					t.Errorf("expected animation clip.json, got %s", cfg.Animation.Path)
				}
			},
			teardown: func() { *flagAnimation = "" },
		},
		{
			name:  "source flag",
			setup: func() { *flagSource = SourceStill },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Source.Kind != SourceStill {
					t.Errorf("expected still source, got %s", cfg.Source.Kind)
				}
			},
			teardown: func() { *flagSource = "" },
		},
		{
			name:  "warp flag",
			setup: func() { *flagWarp = "eyes" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Warper.Enabled || cfg.Warper.Mode != "eyes" {
					t.Errorf("warper = %+v, want enabled eyes", cfg.Warper)
				}
			},
			teardown: func() { *flagWarp = "" },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Animation.Watch {
					t.Error("expected animation watch with watch flag")
				}
			},
			teardown: func() { *flagWatch = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("warper:\n  mode: nose\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}
