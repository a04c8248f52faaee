package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"INVENTORY_FILE", "LOW_STOCK_THRESHOLD", "METRICS_FILE", "LOG_FILE", "LOG_OUTPUT"} {
		t.Setenv(env, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	a := &app{}
	root := newRootCommand(a)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	require.NoError(t, a.close(err))
	return out.String(), err
}

func TestDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := run(t, "demo", "--file", path)
	require.NoError(t, err)

	assert.Equal(t, "Invalid item or quantity type.\n"+
		"Item 'orange' not found in stock.\n"+
		"Apple stock: 7\n"+
		"Low items: [banana]\n"+
		"\n=== Items Report ===\n"+
		"apple -> 7\n"+
		"banana -> -2\n", out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"apple\": 7,\n    \"banana\": -2\n}", string(raw))
}

func TestRootRunsDemo(t *testing.T) {
	out, err := run(t, "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "Apple stock: 7\n")
}

func TestDemo_Threshold(t *testing.T) {
	out, err := run(t, "demo", "--ephemeral", "--threshold", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Low items: [apple banana]\n")
}

func TestAddRemoveQty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := run(t, "add", "--file", path, "pear", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory file not found. Starting fresh.\n")
	assert.Contains(t, out, "Added 4 of pear\n")

	_, err = run(t, "add", "--file", path, "pear", "3")
	require.NoError(t, err)

	out, err = run(t, "qty", "pear", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "pear stock: 7\n", out)

	_, err = run(t, "remove", "--file", path, "pear", "10")
	require.NoError(t, err)

	out, err = run(t, "report", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "\n=== Items Report ===\n", out)
}

func TestAdd_NegativeQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	_, err := run(t, "add", "--file", path, "banana", "-2")
	require.NoError(t, err)

	out, err := run(t, "report", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "\n=== Items Report ===\nbanana -> -2\n", out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"banana\": -2\n}", string(raw))
}

func TestRemove_NegativeQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 2}`), 0o644))

	_, err := run(t, "remove", "--file", path, "apple", "-3")
	require.NoError(t, err)

	out, err := run(t, "qty", "apple", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "apple stock: 5\n", out)
}

func TestAdd_InvalidQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := run(t, "add", "--file", path, "pear", "ten")

	require.ErrorIs(t, err, dominv.ErrInvalidInput)
	assert.Contains(t, out, "Invalid item or quantity type.\n")
	assert.NoFileExists(t, path)
}

func TestRemove_MissingItem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 2}`), 0o644))

	out, err := run(t, "remove", "--file", path, "orange", "1")

	require.ErrorIs(t, err, dominv.ErrItemNotFound)
	assert.Equal(t, "Item 'orange' not found in stock.\n", out)
}

func TestLow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 7, "banana": -2, "cherry": 4}`), 0o644))

	out, err := run(t, "low", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Low items: [banana cherry]\n", out)
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	batch := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(batch, []byte(`[
		{"item": "apple", "quantity": 3},
		{"item": 123, "quantity": "ten"},
		{"item": "fig", "quantity": 1.5},
		{"item": "fig", "quantity": 2}
	]`), 0o644))

	out, err := run(t, "apply", batch, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 of 4 additions.\n")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"apple\": 3,\n    \"fig\": 2\n}", string(raw))
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": "lots"}`), 0o644))

	_, err := run(t, "report", "--file", path)
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "stockledger.prom")

	_, err := run(t, "demo", "--ephemeral", "--metrics-file", metrics)
	require.NoError(t, err)

	raw, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `usecase_requests_total{outcome="error",use_case="inventory.remove"} 1`)
	assert.Contains(t, string(raw), "inventory_items 2")
	assert.Contains(t, string(raw), `cli_commands_total{command="demo",outcome="success"} 1`)
}
