package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Vasu1712/zenith-backend/internal/models"
)

// RegistrationStore keeps registrations in memory, in insertion order.
type RegistrationStore struct {
	mu      sync.RWMutex                    // Guards records and order
	records map[string]*models.Registration // id -> record
	order   []string                        // ids, oldest first
}

// NewRegistrationStore creates an empty store.
func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{
		records: make(map[string]*models.Registration),
	}
}

// Create stores a copy of r. Ids are never overwritten.
func (s *RegistrationStore) Create(ctx context.Context, r *models.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[r.ID]; ok {
		return fmt.Errorf("registration %s already exists", r.ID)
	}
	rec := *r
	s.records[r.ID] = &rec
	s.order = append(s.order, r.ID)
	return nil
}

// List returns copies of every record, oldest first.
func (s *RegistrationStore) List(ctx context.Context) ([]*models.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Registration, 0, len(s.order))
	for _, id := range s.order {
		rec := *s.records[id]
		out = append(out, &rec)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *RegistrationStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order)), nil
}

// Get returns a copy of the record with the given id.
func (s *RegistrationStore) Get(id string) (*models.Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	out := *rec
	return &out, true
}
