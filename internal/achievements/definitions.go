package achievements

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/vovakirdan/skydash/internal/core"
)

// Definition is a static achievement. Definitions are immutable once registered.
type Definition struct {
	ID          string
	Name        string
	Description string
	Points      int
	Title       string // Optional reward title
	Hidden      bool   // Hidden until unlocked
	Requirement Requirement
}

// Info returns the serializable part of the definition.
func (d Definition) Info() Info {
	return Info{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Points:      d.Points,
		Title:       d.Title,
		Hidden:      d.Hidden,
	}
}

// Info is the snapshot of a definition carried by notifications.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Title       string `json:"title,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Definitions is an insertion-ordered registry of definitions keyed by id.
// Evaluation and listing follow registration order.
type Definitions = orderedmap.OrderedMap[string, Definition]

// NewDefinitions builds a registry from defs, later duplicates replacing
// earlier ones in place.
func NewDefinitions(defs ...Definition) *Definitions {
	m := orderedmap.NewOrderedMap[string, Definition]()
	for _, d := range defs {
		m.Set(d.ID, d)
	}
	return m
}

// DefaultDefinitions returns the built-in achievement table.
func DefaultDefinitions() *Definitions {
	return NewDefinitions(
		Definition{ID: "first_score", Name: "Lift Off", Description: "Pass your first obstacle", Points: 10, Requirement: SingleScore{Score: 1}},
		Definition{ID: "score_10", Name: "Getting the Hang of It", Description: "Score 10 in a single run", Points: 25, Requirement: SingleScore{Score: 10}},
		Definition{ID: "score_25", Name: "Sky Runner", Description: "Score 25 in a single run", Points: 50, Requirement: SingleScore{Score: 25}},
		Definition{ID: "score_50", Name: "Cloud Surfer", Description: "Score 50 in a single run", Points: 100, Requirement: SingleScore{Score: 50}},
		Definition{ID: "score_100", Name: "Untouchable", Description: "Score 100 in a single run", Points: 200, Title: "Ace", Requirement: SingleScore{Score: 100}},

		Definition{ID: "total_100", Name: "Frequent Flyer", Description: "Score 100 points across all runs", Points: 25, Requirement: TotalScore{Score: 100}},
		Definition{ID: "total_1000", Name: "Mileage Club", Description: "Score 1000 points across all runs", Points: 100, Requirement: TotalScore{Score: 1000}},

		Definition{ID: "first_powerup", Name: "Power Up!", Description: "Collect your first power-up", Points: 15, Requirement: PowerUpCollected{Count: 1}},
		Definition{ID: "powerups_session_5", Name: "Power Hungry", Description: "Collect 5 power-ups in one run", Points: 30, Requirement: PowerUpCollected{Count: 5}},
		Definition{ID: "shield_10", Name: "Bulwark", Description: "Collect 10 shields", Points: 20, Requirement: PowerUpTypeCollected{Type: core.PowerUpShield, Count: 10}},
		Definition{ID: "slowmo_10", Name: "Bullet Time", Description: "Collect 10 slow-motion power-ups", Points: 20, Requirement: PowerUpTypeCollected{Type: core.PowerUpSlowMo, Count: 10}},
		Definition{ID: "tiny_10", Name: "Pocket Sized", Description: "Collect 10 shrink power-ups", Points: 20, Requirement: PowerUpTypeCollected{Type: core.PowerUpTiny, Count: 10}},
		Definition{ID: "magnet_10", Name: "Attractive", Description: "Collect 10 magnets", Points: 20, Requirement: PowerUpTypeCollected{Type: core.PowerUpMagnet, Count: 10}},
		Definition{ID: "powerups_100", Name: "Collector", Description: "Collect 100 power-ups", Points: 75, Requirement: TotalPowerUps{Count: 100}},

		Definition{ID: "games_10", Name: "Regular", Description: "Play 10 games", Points: 15, Requirement: GamesPlayed{Count: 10}},
		Definition{ID: "games_100", Name: "Devoted", Description: "Play 100 games", Points: 75, Requirement: GamesPlayed{Count: 100}},
		Definition{ID: "win_streak_3", Name: "Hat Trick", Description: "Win 3 runs in a row", Points: 40, Requirement: WinStreak{Count: 3}},
		Definition{ID: "win_streak_10", Name: "On Fire", Description: "Win 10 runs in a row", Points: 150, Title: "Unstoppable", Requirement: WinStreak{Count: 10}},
		Definition{ID: "play_streak_3", Name: "Habit Forming", Description: "Play on 3 consecutive days", Points: 25, Requirement: PlayStreak{Days: 3}},
		Definition{ID: "play_streak_7", Name: "Week Flyer", Description: "Play on 7 consecutive days", Points: 60, Requirement: PlayStreak{Days: 7}},
		Definition{ID: "session_5m", Name: "Marathon", Description: "Stay in a run for 5 minutes", Points: 30, Requirement: SessionTime{Duration: 5 * time.Minute}},
		Definition{ID: "purist_20", Name: "Purist", Description: "Score 20 without collecting a power-up", Points: 60, Requirement: ScoreWithoutPowerUps{Score: 20}},

		Definition{ID: "rapid_flaps_10", Name: "Hummingbird", Description: "Perform 10 rapid-flap bursts", Points: 20, Requirement: RapidFlaps{Count: 10}},
		Definition{ID: "close_calls_10", Name: "Daredevil", Description: "Scrape past 10 obstacles", Points: 30, Requirement: CloseCalls{Count: 10}},
		Definition{ID: "close_calls_50", Name: "Needle Threader", Description: "Scrape past 50 obstacles", Points: 80, Requirement: CloseCalls{Count: 50}},

		Definition{ID: "combo_shield_slowmo", Name: "Armored Time", Description: "Have a shield and slow-motion active together", Points: 50, Hidden: true,
			Requirement: Combo{Types: []core.PowerUpType{core.PowerUpShield, core.PowerUpSlowMo}}},
		Definition{ID: "combo_shield_tiny", Name: "Small Fortress", Description: "Have a shield and shrink active together", Points: 50, Hidden: true,
			Requirement: Combo{Types: []core.PowerUpType{core.PowerUpShield, core.PowerUpTiny}}},
		Definition{ID: "combo_all", Name: "Overpowered", Description: "Have every power-up active at once", Points: 150, Hidden: true, Title: "Overlord",
			Requirement: Combo{Types: core.AllPowerUpTypes()}},
	)
}
