package inventory

import (
	"fmt"
	"time"
)

const addedTimeLayout = "2006-01-02 15:04:05.000000"

// StockAdded describes one successful addition. It is returned to the caller
// and logged; it is never persisted.
type StockAdded struct {
	ID         string
	Item       string
	Quantity   int
	OccurredAt time.Time
}

func (StockAdded) EventName() string { return "inventory.stock_added" }

func NewStockAdded(id, item string, quantity int, at time.Time) StockAdded {
	return StockAdded{
		ID:         id,
		Item:       item,
		Quantity:   quantity,
		OccurredAt: at,
	}
}

func (e StockAdded) String() string {
	return fmt.Sprintf("%s: Added %d of %s", e.OccurredAt.Format(addedTimeLayout), e.Quantity, e.Item)
}
