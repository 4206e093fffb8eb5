package achievements

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// BlobVersion is the schema version written by this package.
//
//	0, 1: no version field; no play-streak counters
//	2:    version field, play streak, session counters
const BlobVersion = 2

// ErrUnsupportedVersion is returned for blobs written by a newer schema.
var ErrUnsupportedVersion = errors.New("achievements: unsupported blob version")

// State is the runtime state of one achievement. Unlocked never reverts.
type State struct {
	Unlocked   bool       `json:"unlocked"`
	Progress   float64    `json:"progress"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

// Blob is the persisted form of everything the engine tracks.
type Blob struct {
	Version                int              `json:"version"`
	Achievements           map[string]State `json:"achievements"`
	Progress               Progress         `json:"progress"`
	Notifications          []Notification   `json:"notifications"`
	TotalAchievementPoints int              `json:"totalAchievementPoints"`
	UnlockedCount          int              `json:"unlockedCount"`
	LastUpdated            time.Time        `json:"lastUpdated"`
}

// NewBlob returns an empty blob at the current version.
func NewBlob() *Blob {
	b := &Blob{
		Version:      BlobVersion,
		Achievements: make(map[string]State),
	}
	b.Progress.ensureMaps()
	return b
}

// EncodeBlob serializes b as JSON.
func EncodeBlob(b *Blob) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("achievements: failed to encode blob: %w", err)
	}
	return data, nil
}

// DecodeBlob parses data and migrates it to the current version.
func DecodeBlob(data []byte) (*Blob, error) {
	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("achievements: failed to decode blob: %w", err)
	}
	if err := migrate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// migrate upgrades b in place to BlobVersion.
func migrate(b *Blob) error {
	if b.Version > BlobVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, b.Version)
	}
	if b.Version < 0 {
		return fmt.Errorf("achievements: invalid blob version %d", b.Version)
	}

	if b.Version < 2 {
		// Older saves predate play streaks; anyone who played gets a streak of one
		if b.Progress.GamesPlayed > 0 && b.Progress.CurrentPlayStreak == 0 {
			b.Progress.CurrentPlayStreak = 1
			b.Progress.BestPlayStreak = max(b.Progress.BestPlayStreak, 1)
		}
		b.Progress.Session = SessionProgress{}
		b.Version = 2
	}

	if b.Achievements == nil {
		b.Achievements = make(map[string]State)
	}
	b.Progress.ensureMaps()
	return nil
}

// merge reconciles b against defs: ids unknown to defs are dropped, missing
// ids start locked, and totals are recomputed from unlocked definitions.
func merge(b *Blob, defs *Definitions) {
	merged := make(map[string]State, defs.Len())
	b.TotalAchievementPoints = 0
	b.UnlockedCount = 0

	for el := defs.Front(); el != nil; el = el.Next() {
		st := b.Achievements[el.Key]
		if st.Unlocked {
			st.Progress = 1
			b.TotalAchievementPoints += el.Value.Points
			b.UnlockedCount++
		} else {
			st.UnlockedAt = nil
			st.Progress = clampUnit(st.Progress)
		}
		merged[el.Key] = st
	}
	b.Achievements = merged
	b.Notifications = trimNotifications(b.Notifications)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
