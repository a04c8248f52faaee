package memory

import (
	"context"
	"sync"

	domain "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

// InventoryRepository keeps the last saved inventory in process memory.
type InventoryRepository struct {
	mu    sync.RWMutex
	saved *domain.Inventory
	saves int
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) Load(ctx context.Context) (*domain.Inventory, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.saved == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return r.saved.Clone(), nil
}

func (r *InventoryRepository) Save(ctx context.Context, inv *domain.Inventory) error {
	_ = ctx
	if inv == nil {
		inv = domain.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved = inv.Clone()
	r.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (r *InventoryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
