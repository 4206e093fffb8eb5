package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skydash/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best runs",
	Long: `Display the best runs, for everyone or a single player.

Examples:
  skydash scores
  skydash scores --player alice --limit 20
  skydash scores --player alice --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this player")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the player's run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if flagScoresPlayer == "" {
			return fmt.Errorf("--clear needs --player")
		}
		if err := store.ClearRuns(flagScoresPlayer); err != nil {
			return fmt.Errorf("error clearing runs: %w", err)
		}
		fmt.Printf("Run history cleared for %s\n", flagScoresPlayer)
		return nil
	}

	runs, err := store.TopRuns(flagScoresPlayer, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	title := "Best Runs"
	if flagScoresPlayer != "" {
		title = fmt.Sprintf("Best Runs - %s", flagScoresPlayer)
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skydash play' to set the first high score!")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("RANK", "PLAYER", "SCORE", "TIME", "POWER-UPS", "CAUSE", "DATE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	for i, r := range runs {
		t.Row(
			fmt.Sprintf("%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			r.Duration.Round(100*time.Millisecond).String(),
			fmt.Sprintf("%d", r.PowerUps),
			r.DeathCause,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())

	if flagScoresPlayer != "" {
		if stats, err := store.PlayerStats(flagScoresPlayer); err == nil {
			fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Played: %s\n",
				stats.Runs, stats.HighScore, stats.AvgScore, stats.PlayTime.Round(time.Second))
		}
	}
	return nil
}
