package printdesk

import (
	"sort"
	"sync"
)

// Store is the persistence boundary for kept prints. Authentication, upload
// transport, and storage format are entirely the adapter's concern; the Desk
// only sees success or failure. ownerID scopes records to a user; the empty
// string is the local/anonymous scope.
//
// Keep and Unkeep are idempotent: keeping an already-kept record replaces it,
// unkeeping an unknown id is a no-op.
type Store interface {
	// List returns the owner's persisted prints, most recent first.
	List(ownerID string) ([]PrintRecord, error)
	// Keep persists a record.
	Keep(rec PrintRecord, ownerID string) error
	// Unkeep removes a record by id.
	Unkeep(id, ownerID string) error
}

// MemoryStore is an in-process Store for the anonymous/local scope.
// Safe for concurrent use (async keep operations run on goroutines).
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string][]PrintRecord // ownerID -> records
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string][]PrintRecord)}
}

// List returns the owner's records, most recent first.
func (s *MemoryStore) List(ownerID string) ([]PrintRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]PrintRecord(nil), s.recs[ownerID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Keep stores rec, replacing any existing record with the same id.
func (s *MemoryStore) Keep(rec PrintRecord, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.recs[ownerID]
	for i := range list {
		if list[i].ID == rec.ID {
			list[i] = rec
			return nil
		}
	}
	s.recs[ownerID] = append(list, rec)
	return nil
}

// Unkeep removes the record with the given id. Unknown ids are a no-op.
func (s *MemoryStore) Unkeep(id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.recs[ownerID]
	for i := range list {
		if list[i].ID == id {
			s.recs[ownerID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}
