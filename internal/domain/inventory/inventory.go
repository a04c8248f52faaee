package inventory

import "errors"

var (
	ErrItemNotFound     = errors.New("inventory: item not found")
	ErrInvalidInput     = errors.New("inventory: invalid item or quantity type")
	ErrSnapshotNotFound = errors.New("inventory: snapshot not found")
)

// DefaultLowStockThreshold is the cutoff used when callers do not supply one.
const DefaultLowStockThreshold = 5

// Entry is one item's name/quantity pair.
type Entry struct {
	Item     string
	Quantity int
}

// Inventory maps item names to quantities. Iteration follows insertion order.
// The zero value is an empty inventory ready to use.
type Inventory struct {
	order []string
	qty   map[string]int
}

func New() *Inventory {
	return &Inventory{qty: make(map[string]int)}
}

// FromEntries builds an inventory from entries. A repeated item keeps its
// first position and its last quantity.
func FromEntries(entries []Entry) *Inventory {
	inv := New()
	for _, e := range entries {
		inv.set(e.Item, e.Quantity)
	}
	return inv
}

// Add adds quantity to the item's current stock (0 when absent) and returns
// the resulting quantity. Negative quantities are accepted and never delete
// the entry.
func (inv *Inventory) Add(item string, quantity int) int {
	next := inv.qty[item] + quantity
	inv.set(item, next)
	return next
}

// Remove subtracts quantity from an existing item. The entry is deleted once
// its quantity drops to zero or below, in which case remaining is 0.
func (inv *Inventory) Remove(item string, quantity int) (remaining int, err error) {
	current, ok := inv.qty[item]
	if !ok {
		return 0, ErrItemNotFound
	}
	remaining = current - quantity
	if remaining <= 0 {
		inv.delete(item)
		return 0, nil
	}
	inv.qty[item] = remaining
	return remaining, nil
}

// Quantity returns the item's stock, or 0 when the item is absent.
func (inv *Inventory) Quantity(item string) int {
	return inv.qty[item]
}

func (inv *Inventory) Has(item string) bool {
	_, ok := inv.qty[item]
	return ok
}

// LowStock returns the items whose quantity is strictly below threshold.
func (inv *Inventory) LowStock(threshold int) []string {
	low := make([]string, 0)
	for _, item := range inv.order {
		if inv.qty[item] < threshold {
			low = append(low, item)
		}
	}
	return low
}

func (inv *Inventory) Entries() []Entry {
	entries := make([]Entry, 0, len(inv.order))
	for _, item := range inv.order {
		entries = append(entries, Entry{Item: item, Quantity: inv.qty[item]})
	}
	return entries
}

func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Units sums the quantity of every entry.
func (inv *Inventory) Units() int {
	total := 0
	for _, q := range inv.qty {
		total += q
	}
	return total
}

func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	return FromEntries(inv.Entries())
}

func (inv *Inventory) set(item string, quantity int) {
	if inv.qty == nil {
		inv.qty = make(map[string]int)
	}
	if _, ok := inv.qty[item]; !ok {
		inv.order = append(inv.order, item)
	}
	inv.qty[item] = quantity
}

func (inv *Inventory) delete(item string) {
	delete(inv.qty, item)
	for i, name := range inv.order {
		if name == item {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			return
		}
	}
}
