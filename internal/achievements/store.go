package achievements

import "sync"

// Store persists the engine's blob. Load returns nil and no error when
// nothing has been saved yet.
type Store interface {
	Load() (*Blob, error)
	Save(b *Blob) error
}

// MemoryStore keeps the encoded blob in memory.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the stored bytes.
func (s *MemoryStore) Load() (*Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return DecodeBlob(s.data)
}

// Save encodes and stores b.
func (s *MemoryStore) Save(b *Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := EncodeBlob(b)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

// SetRaw replaces the stored bytes, valid or not.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Raw returns the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Saves returns how many successful saves the store has seen.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailSaves makes every later Save return err. A nil err restores saving.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}
