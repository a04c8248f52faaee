package inventory

import (
	"context"
)

// Repository persists whole inventories. Load returns an error wrapping
// ErrSnapshotNotFound when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (*Inventory, error)
	Save(ctx context.Context, inv *Inventory) error
}
