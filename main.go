// Command ttx is a terminal multiplexer: a single Bubbletea process that
// manages tabs of split terminal panes, each backed by its own PTY and
// VT100/xterm emulator (internal/terminal), driven by internal/app and
// drawn with internal/ui.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrick-goecommerce/ttx/internal/app"
	"github.com/patrick-goecommerce/ttx/internal/config"
)

func main() {
	health := config.LoadHealth()
	config.MarkStarting(&health)
	repeatedCrashes := config.HasRepeatedCrashes(&health)
	if repeatedCrashes {
		config.EnableAutoLogging(&health)
	}
	_ = config.SaveHealth(health) // persist the dirty marker before we run

	logFile := setupLogging(repeatedCrashes || health.LoggingAuto)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Load()
	log.Info().Str("theme", cfg.Theme).Msg("ttx starting")

	m := app.New(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err := p.Run()

	config.MarkCleanShutdown(&health)
	if err != nil {
		log.Error().Err(err).Msg("ttx exited with error")
		_ = config.SaveHealth(health)
		fmt.Fprintln(os.Stderr, "ttx:", err)
		os.Exit(1)
	}

	if config.ShouldAutoDisableLogging(&health) {
		config.DisableAutoLogging(&health)
	}
	_ = config.SaveHealth(health)
	log.Info().Msg("ttx exited cleanly")
}

// setupLogging wires zerolog to a rotating-by-restart log file under
// ~/.ttx.log when logging is requested (auto-enabled after repeated
// crashes, or via TTX_DEBUG=1). Bubbletea owns the terminal's stdout, so
// anything we log must go to a file, never to stdout/stderr while the
// program is running.
func setupLogging(repeatedCrashes bool) *os.File {
	enabled := os.Getenv("TTX_DEBUG") == "1" || repeatedCrashes

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if !enabled {
		log.Logger = zerolog.Nop()
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil
	}

	f, err := os.OpenFile(filepath.Join(home, ".ttx.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	if repeatedCrashes {
		log.Warn().Msg("repeated crashes detected, auto-enabling verbose logging")
	}
	return f
}
