package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/roasthouse/storefront/pkg/models"
)

// ErrOrderNotFound is returned by Get for an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// Store is the append-only order log. Orders are never mutated or
// deleted once appended; List returns them in creation order.
type Store interface {
	Append(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
}

// MemoryStore keeps the log in process memory. The mutex makes append
// safe under concurrent request handlers; the original storefront
// relied on a single-writer assumption instead.
type MemoryStore struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}
