package achievements

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/skydash/internal/core"
)

func TestDecodeMigratesLegacyBlob(t *testing.T) {
	legacy := `{
		"achievements": {"first_score": {"unlocked": true, "progress": 1, "unlockedAt": "2023-05-01T10:00:00Z"}},
		"progress": {"totalScore": 40, "maxScore": 12, "gamesPlayed": 6, "powerUpsByType": {"shield": 2}},
		"totalAchievementPoints": 10,
		"unlockedCount": 1
	}`

	b, err := DecodeBlob([]byte(legacy))
	if err != nil {
		t.Fatalf("DecodeBlob() failed: %v", err)
	}
	if b.Version != BlobVersion {
		t.Errorf("version = %d, expected %d", b.Version, BlobVersion)
	}
	if b.Progress.CurrentPlayStreak != 1 || b.Progress.BestPlayStreak != 1 {
		t.Errorf("legacy players should start with a play streak of 1, got %d/%d",
			b.Progress.CurrentPlayStreak, b.Progress.BestPlayStreak)
	}
	if b.Progress.PowerUpsByType[core.PowerUpShield] != 2 {
		t.Errorf("shield count = %d, expected 2", b.Progress.PowerUpsByType[core.PowerUpShield])
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := DecodeBlob([]byte(`{"version": 99}`))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("DecodeBlob() error = %v, expected ErrUnsupportedVersion", err)
	}
}

func TestDecodeRejectsUnknownPowerUpKey(t *testing.T) {
	if _, err := DecodeBlob([]byte(`{"version": 2, "progress": {"powerUpsByType": {"laser": 1}}}`)); err == nil {
		t.Error("unknown power-up keys should fail to decode")
	}
}

func TestMergeAgainstDefinitions(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBlob()
	b.Achievements["first_score"] = State{Unlocked: true, Progress: 0.3, UnlockedAt: &at}
	b.Achievements["retired"] = State{Unlocked: true, Progress: 1}
	b.Achievements["score_10"] = State{Progress: 7, UnlockedAt: &at}
	b.TotalAchievementPoints = 9999
	b.UnlockedCount = 42

	defs := DefaultDefinitions()
	merge(b, defs)

	if _, ok := b.Achievements["retired"]; ok {
		t.Error("unknown ids should be dropped")
	}
	if len(b.Achievements) != defs.Len() {
		t.Errorf("merged %d achievements, expected %d", len(b.Achievements), defs.Len())
	}
	if st := b.Achievements["first_score"]; st.Progress != 1 {
		t.Errorf("unlocked progress = %v, expected 1", st.Progress)
	}
	if st := b.Achievements["score_10"]; st.Progress != 1 || st.Unlocked || st.UnlockedAt != nil {
		t.Errorf("locked state not sanitized: %+v", st)
	}
	first, _ := defs.Get("first_score")
	if b.TotalAchievementPoints != first.Points || b.UnlockedCount != 1 {
		t.Errorf("totals = %d/%d, expected %d/1", b.TotalAchievementPoints, b.UnlockedCount, first.Points)
	}
}

func TestEncodeUsesTypeNames(t *testing.T) {
	b := NewBlob()
	b.Progress.PowerUpsByType[core.PowerUpMagnet] = 3

	data, err := EncodeBlob(b)
	if err != nil {
		t.Fatalf("EncodeBlob() failed: %v", err)
	}
	if !strings.Contains(string(data), `"magnet":3`) {
		t.Errorf("encoded blob should key counters by name: %s", data)
	}
	if !strings.Contains(string(data), `"version":2`) {
		t.Errorf("encoded blob should carry its version: %s", data)
	}
}

func TestTrimNotifications(t *testing.T) {
	var ns []Notification
	for i := 0; i < maxNotifications+5; i++ {
		ns = append(ns, Notification{ID: string(rune('a' + i%26)), Seen: i < 3})
	}

	got := trimNotifications(ns)
	if len(got) != maxNotifications {
		t.Fatalf("len = %d, expected %d", len(got), maxNotifications)
	}
	for _, n := range got {
		if n.Seen {
			t.Error("seen notifications should be dropped first")
		}
	}
}
