package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skydash/internal/achievements"
	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
	"github.com/vovakirdan/skydash/internal/platform/tui"
	"github.com/vovakirdan/skydash/internal/storage"
)

var (
	flagDifficulty      string
	flagStaleCollection bool
	flagPlayer          string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run in this terminal.

Controls:
  Space/W/Up - Flap
  P/Esc      - Pause
  R          - Restart (after game over)
  Tab        - Achievements and best runs
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  skydash play
  skydash play --difficulty hard
  skydash play --seed 42 --stale-collection
  skydash play --config ./my-skydash.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagStaleCollection, "stale-collection", false, "Collect power-ups against their start-of-tick positions")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for runs and achievements (default: OS user)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("play needs a terminal; use 'skydash serve' for remote play")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if cmd.Flags().Changed("stale-collection") {
		cfg.PowerUps.StaleCollection = flagStaleCollection
	}

	player := flagPlayer
	if player == "" {
		player = defaultPlayer()
	}

	// The alt screen owns stdout, so logs go to a file
	logger, closeLog := fileLogger()
	defer closeLog()

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open storage
	var achStore achievements.Store
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
		achStore = store.Achievements(player)
	}

	engine := achievements.NewEngine(achStore, cfg.Achievements, logger)
	engine.OnUnlock(func(d achievements.Definition) {
		logger.Info("unlocked", "id", d.ID, "points", d.Points)
	})

	if err := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Engine: engine,
		Player: player,
		Logger: logger,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// fileLogger opens ~/.skydash/skydash.log. Without a writable home the
// logger discards everything.
func fileLogger() (*log.Logger, func()) {
	noop := func() {}
	discard := log.New(io.Discard)
	home, err := os.UserHomeDir()
	if err != nil {
		return discard, noop
	}
	dir := filepath.Join(home, ".skydash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, noop
	}
	f, err := os.OpenFile(filepath.Join(dir, "skydash.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, noop
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "skydash",
	})
	return logger, func() { f.Close() }
}
