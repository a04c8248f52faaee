package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

func TestLoad_BeforeSave(t *testing.T) {
	_, err := NewInventoryRepository().Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSave_StoresACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()
	inv := domain.FromEntries([]domain.Entry{{Item: "apple", Quantity: 3}})

	require.NoError(t, repo.Save(ctx, inv))
	inv.Add("apple", 100)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity("apple"))
	assert.Equal(t, 1, repo.Saves())

	got.Add("apple", 1)
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Quantity("apple"))
}
