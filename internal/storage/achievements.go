package storage

import (
	"github.com/vovakirdan/skydash/internal/achievements"
)

// AchievementStore persists one player's achievement blob in the blobs table.
type AchievementStore struct {
	store *Store
	key   string
}

// Achievements returns an achievements.Store for player.
func (s *Store) Achievements(player string) *AchievementStore {
	return &AchievementStore{store: s, key: "achievements:" + player}
}

// Load implements achievements.Store.
func (a *AchievementStore) Load() (*achievements.Blob, error) {
	data, err := a.store.LoadBlob(a.key)
	if err != nil || data == nil {
		return nil, err
	}
	return achievements.DecodeBlob(data)
}

// Save implements achievements.Store.
func (a *AchievementStore) Save(b *achievements.Blob) error {
	data, err := achievements.EncodeBlob(b)
	if err != nil {
		return err
	}
	return a.store.SaveBlob(a.key, data)
}

// Reset deletes the player's saved progress.
func (a *AchievementStore) Reset() error {
	return a.store.DeleteBlob(a.key)
}

var _ achievements.Store = (*AchievementStore)(nil)
