package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	domain "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

// DefaultPath is used when no file is configured.
const DefaultPath = "inventory.json"

const indent = "    "

// InventoryRepository stores the whole inventory as one JSON object on disk.
// Writes overwrite the file in place.
type InventoryRepository struct {
	path string
}

func NewInventoryRepository(path string) *InventoryRepository {
	if path == "" {
		path = DefaultPath
	}
	return &InventoryRepository{path: path}
}

func (r *InventoryRepository) Path() string { return r.path }

func (r *InventoryRepository) Load(ctx context.Context) (*domain.Inventory, error) {
	_ = ctx

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("jsonfile: %s: %w", r.path, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", r.path, err)
	}

	inv := domain.New()
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", r.path, err)
	}
	return inv, nil
}

func (r *InventoryRepository) Save(ctx context.Context, inv *domain.Inventory) error {
	_ = ctx
	if inv == nil {
		inv = domain.New()
	}

	data, err := json.MarshalIndent(inv, "", indent)
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", r.path, err)
	}
	return nil
}
