package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAnimation  = flag.String("animation", "", "Path to animation data (YAML or JSON)")
	flagSource     = flag.String("source", "", "Capture source: synthetic or still")
	flagWarp       = flag.String("warp", "", "Run the slit-scan warper with map full, eyes or mouth")
	flagMute       = flag.Bool("mute", false, "Disable capture sounds")
	flagWatch      = flag.Bool("watch", false, "Reload the animation file when it changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagAnimation != "" {
		cfg.Animation.Path = *flagAnimation
	}
	if *flagSource != "" {
		cfg.Source.Kind = *flagSource
	}
	if *flagWarp != "" {
		cfg.Warper.Enabled = true
		cfg.Warper.Mode = *flagWarp
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagWatch {
		cfg.Animation.Watch = true
	}
}
