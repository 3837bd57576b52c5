// Package config loads and provides application configuration.
//
// On first run, a default YAML config is written to ~/.ttx.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all user-configurable settings (SPEC_FULL.md "Ambient
// stack / Configuration": scope is narrowed to what the core needs plus
// the thin-wrapper hooks spec.md §6 calls out).
type Config struct {
	// DefaultShell is loaded from the config file only; internal/terminal
	// picks the shell for new panes itself and does not read this field.
	DefaultShell string `yaml:"default_shell"`

	// DefaultDir is the working directory for new tabs. Empty means the
	// current working directory at launch time.
	DefaultDir string `yaml:"default_dir"`

	// Theme names a palette from internal/ui/themes.go. It is logged at
	// startup; ui.SetTheme is not called with it.
	Theme string `yaml:"theme"`

	// MaxPanesPerTab limits panes in a single tab (1-12).
	MaxPanesPerTab int `yaml:"max_panes_per_tab"`

	// StatusBarVisible is loaded and defaulted here; internal/app does not
	// read it and always draws the footer/status line.
	StatusBarVisible bool `yaml:"status_bar_visible"`

	// SidebarWidth is the character width of the file browser sidebar.
	SidebarWidth int `yaml:"sidebar_width"`

	// KeyBindOverrides maps an action name (see internal/app/keymap.go)
	// to a replacement key string. The map is loaded but not applied:
	// internal/app's key handling does not read it.
	KeyBindOverrides map[string]string `yaml:"key_bind_overrides"`

	// ScrollbackCellsPerGroup and ScrollbackMaxCells are loaded and
	// bounded here; internal/terminal's Scrollback uses its own constants
	// and does not read them.
	ScrollbackCellsPerGroup int `yaml:"scrollback_cells_per_group"`
	ScrollbackMaxCells      int `yaml:"scrollback_max_cells"`

	// SnapshotPath names the layout snapshot file. Empty means the
	// SnapshotPathOrDefault() default. internal/snapshot does no file I/O
	// and nothing outside this package reads the path.
	SnapshotPath string `yaml:"snapshot_path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultShell:            "",
		DefaultDir:              "",
		Theme:                   "dark",
		MaxPanesPerTab:          12,
		StatusBarVisible:        true,
		SidebarWidth:            30,
		ScrollbackCellsPerGroup: 32 * 1024,
		ScrollbackMaxCells:      10_000_000,
	}
}

// configPath returns the path to ~/.ttx.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ttx.yaml")
}

// SnapshotPathOrDefault returns cfg.SnapshotPath if set, else
// ~/.ttx-snapshot.json, a different file from session.go's
// ~/.ttx-session.json.
func (cfg Config) SnapshotPathOrDefault() string {
	if cfg.SnapshotPath != "" {
		return cfg.SnapshotPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ttx-snapshot.json"
	}
	return filepath.Join(home, ".ttx-snapshot.json")
}

// Load reads the config file, falling back to defaults for missing fields.
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet - write defaults for future editing
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.MaxPanesPerTab < 1 {
		cfg.MaxPanesPerTab = 1
	}
	if cfg.MaxPanesPerTab > 12 {
		cfg.MaxPanesPerTab = 12
	}

	validThemes := map[string]bool{"dark": true, "light": true, "dracula": true, "nord": true, "solarized": true}
	if !validThemes[cfg.Theme] {
		cfg.Theme = "dark"
	}

	if cfg.SidebarWidth < 15 {
		cfg.SidebarWidth = 15
	}
	if cfg.SidebarWidth > 60 {
		cfg.SidebarWidth = 60
	}

	if cfg.ScrollbackCellsPerGroup <= 0 {
		cfg.ScrollbackCellsPerGroup = 32 * 1024
	}
	if cfg.ScrollbackMaxCells <= 0 {
		cfg.ScrollbackMaxCells = 10_000_000
	}

	return cfg
}

// writeDefaults persists the default configuration to disk.
func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# ttx configuration\n# Edit this file to customise defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}
