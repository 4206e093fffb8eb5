package achievements

import (
	"time"

	"github.com/vovakirdan/skydash/internal/core"
)

// Progress holds the cumulative counters every requirement is computed from.
type Progress struct {
	TotalScore     int                      `json:"totalScore"`
	MaxScore       int                      `json:"maxScore"`
	GamesPlayed    int                      `json:"gamesPlayed"`
	TotalPlayTime  time.Duration            `json:"totalPlayTime"`
	PowerUpsByType map[core.PowerUpType]int `json:"powerUpsByType"`
	TotalPowerUps  int                      `json:"totalPowerUps"`
	CloseCalls     int                      `json:"closeCalls"`
	RapidFlaps     int                      `json:"rapidFlaps"`

	CurrentWinStreak  int    `json:"currentWinStreak"`
	BestWinStreak     int    `json:"bestWinStreak"`
	CurrentPlayStreak int    `json:"currentPlayStreak"`
	BestPlayStreak    int    `json:"bestPlayStreak"`
	LastPlayDate      string `json:"lastPlayDate,omitempty"` // YYYY-MM-DD, local time

	Session SessionProgress `json:"session"`
}

// SessionProgress holds the counters scoped to the running session.
type SessionProgress struct {
	Active    bool      `json:"active"`
	StartedAt time.Time `json:"startedAt"`
	Score     int       `json:"score"`
	PowerUps  int       `json:"powerUps"`
}

const dateLayout = "2006-01-02"

// recordPlayDay advances the play streak for a session started at now.
// Multiple sessions on the same day count once; a missed day restarts the
// streak at one.
func (p *Progress) recordPlayDay(now time.Time) {
	today := now.Format(dateLayout)
	if p.LastPlayDate == today {
		return
	}

	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	if p.LastPlayDate == yesterday {
		p.CurrentPlayStreak++
	} else {
		p.CurrentPlayStreak = 1
	}
	p.BestPlayStreak = max(p.BestPlayStreak, p.CurrentPlayStreak)
	p.LastPlayDate = today
}

// recordScore applies a new session score, crediting only the increase to
// the running total.
func (p *Progress) recordScore(score int) {
	if score <= p.Session.Score {
		return
	}
	p.TotalScore += score - p.Session.Score
	p.Session.Score = score
	p.MaxScore = max(p.MaxScore, score)
}

// recordResult updates the win streak for a finished run.
func (p *Progress) recordResult(finalScore, winScore int) {
	if finalScore >= winScore {
		p.CurrentWinStreak++
		p.BestWinStreak = max(p.BestWinStreak, p.CurrentWinStreak)
		return
	}
	p.CurrentWinStreak = 0
}

func (p *Progress) ensureMaps() {
	if p.PowerUpsByType == nil {
		p.PowerUpsByType = make(map[core.PowerUpType]int, int(core.PowerUpCount))
	}
}
