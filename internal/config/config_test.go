package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want 'dark'", cfg.Theme)
	}
	if cfg.MaxPanesPerTab != 12 {
		t.Errorf("MaxPanesPerTab = %d, want 12", cfg.MaxPanesPerTab)
	}
	if !cfg.StatusBarVisible {
		t.Error("StatusBarVisible should default to true")
	}
	if cfg.ScrollbackCellsPerGroup != 32*1024 {
		t.Errorf("ScrollbackCellsPerGroup = %d, want 32768", cfg.ScrollbackCellsPerGroup)
	}
	if cfg.SidebarWidth != 30 {
		t.Errorf("SidebarWidth = %d, want 30", cfg.SidebarWidth)
	}
}

func TestLoadAppliesBoundsAndDefaults(t *testing.T) {
	tests := []struct {
		name    string
		yamlIn  string
		checkFn func(t *testing.T, cfg Config)
	}{
		{
			name:   "max panes clamped above range",
			yamlIn: "max_panes_per_tab: 99\n",
			checkFn: func(t *testing.T, cfg Config) {
				if cfg.MaxPanesPerTab != 12 {
					t.Errorf("MaxPanesPerTab = %d, want clamped to 12", cfg.MaxPanesPerTab)
				}
			},
		},
		{
			name:   "max panes clamped below range",
			yamlIn: "max_panes_per_tab: 0\n",
			checkFn: func(t *testing.T, cfg Config) {
				if cfg.MaxPanesPerTab != 1 {
					t.Errorf("MaxPanesPerTab = %d, want clamped to 1", cfg.MaxPanesPerTab)
				}
			},
		},
		{
			name:   "unknown theme falls back to dark",
			yamlIn: "theme: nonexistent\n",
			checkFn: func(t *testing.T, cfg Config) {
				if cfg.Theme != "dark" {
					t.Errorf("Theme = %q, want fallback to dark", cfg.Theme)
				}
			},
		},
		{
			name:   "valid theme preserved",
			yamlIn: "theme: nord\n",
			checkFn: func(t *testing.T, cfg Config) {
				if cfg.Theme != "nord" {
					t.Errorf("Theme = %q, want nord", cfg.Theme)
				}
			},
		},
		{
			name:   "zero scrollback cells per group falls back to default",
			yamlIn: "scrollback_cells_per_group: 0\n",
			checkFn: func(t *testing.T, cfg Config) {
				if cfg.ScrollbackCellsPerGroup != 32*1024 {
					t.Errorf("ScrollbackCellsPerGroup = %d, want default", cfg.ScrollbackCellsPerGroup)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "ttx.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlIn), 0644); err != nil {
				t.Fatal(err)
			}
			var cfg Config
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			cfg = DefaultConfig()
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				t.Fatal(err)
			}
			cfg = clampForTest(cfg)
			tt.checkFn(t, cfg)
		})
	}
}

// clampForTest mirrors Load()'s post-unmarshal bounds-checking so table
// cases can exercise it without touching the real home-directory path.
func clampForTest(cfg Config) Config {
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

func TestSnapshotPathOrDefaultUsesOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapshotPath = "/tmp/custom-session.json"
	if got := cfg.SnapshotPathOrDefault(); got != "/tmp/custom-session.json" {
		t.Errorf("SnapshotPathOrDefault = %q, want override", got)
	}
}

func TestSnapshotPathOrDefaultFallsBackToHome(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.SnapshotPathOrDefault()
	if got == "" {
		t.Error("expected a non-empty default snapshot path")
	}
}
