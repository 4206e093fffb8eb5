package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skydash/internal/achievements"
	"github.com/vovakirdan/skydash/internal/storage"
)

var (
	flagAll       bool
	flagReset     bool
	flagAchPlayer string
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and progress",
	Long: `Display achievements with their progress for a player.

Hidden achievements stay hidden until unlocked unless --all is given.

Examples:
  skydash achievements
  skydash achievements --all
  skydash achievements --player alice --reset`,
	Args: cobra.NoArgs,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&flagAll, "all", false, "Include hidden achievements")
	achievementsCmd.Flags().BoolVar(&flagReset, "reset", false, "Erase the player's achievement progress")
	achievementsCmd.Flags().StringVar(&flagAchPlayer, "player", "", "Player name (default: OS user)")
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runAchievements(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	player := flagAchPlayer
	if player == "" {
		player = defaultPlayer()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.Achievements(player).Reset(); err != nil {
			return fmt.Errorf("error resetting achievements: %w", err)
		}
		fmt.Printf("Achievements reset for %s\n", player)
		return nil
	}

	engine := achievements.NewEngine(store.Achievements(player), cfg.Achievements, nil)
	entries := engine.Visible()
	if flagAll {
		entries = engine.All()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(" ", "ACHIEVEMENT", "POINTS", "PROGRESS", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow || row < 0 || row >= len(entries) {
				return headerStyle
			}
			if entries[row].State.Unlocked {
				return unlockedStyle
			}
			return lockedStyle
		})

	for _, en := range entries {
		mark := "·"
		if en.State.Unlocked {
			mark = "★"
		}
		name := en.Definition.Name
		if en.Definition.Title != "" {
			name += fmt.Sprintf(" [%s]", en.Definition.Title)
		}
		t.Row(mark, name,
			fmt.Sprintf("%d", en.Definition.Points),
			fmt.Sprintf("%3.0f%%", en.State.Progress*100),
			en.Definition.Description,
		)
	}

	fmt.Fprintf(os.Stdout, "Achievements - %s\n", player)
	fmt.Println(t.Render())
	fmt.Printf("Unlocked %d, %d points\n", engine.UnlockedCount(), engine.TotalPoints())
	return nil
}
