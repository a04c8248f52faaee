package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
	"github.com/Zhima-Mochi/stockledger/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const (
	msgInvalidInput  = "Invalid item or quantity type."
	msgFileNotFound  = "Inventory file not found. Starting fresh."
	msgItemNotFound  = "Item '%s' not found in stock."
	reportHeader     = "\n=== Items Report ===\n"
	reportLineFormat = "%s -> %d\n"
)

// Store owns one in-memory inventory and the repository it is persisted to.
// A Store is not safe for concurrent use.
type Store struct {
	inv  *dominv.Inventory
	repo dominv.Repository
	ids  IDGenerator
	out  io.Writer
	now  func() time.Time

	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	itemsGauge   observability.Gauge
	unitsGauge   observability.Gauge
}

type Option func(*Store)

// WithOutput sets where user-facing messages and reports are written.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Store) {
		if w != nil {
			s.out = w
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(repo dominv.Repository, ids IDGenerator, tel observability.Observability, opts ...Option) *Store {
	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		tracer = tel.Tracer()
		metrics = tel.Metrics()
	}

	s := &Store{
		inv:          dominv.New(),
		repo:         repo,
		ids:          ids,
		out:          os.Stdout,
		now:          time.Now,
		log:          baseLog.With(observability.F("component", storeService)),
		tracer:       tracer,
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		itemsGauge:   metrics.Gauge(observability.MInventoryItems),
		unitsGauge:   metrics.Gauge(observability.MInventoryUnits),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add increases item's stock by quantity (negative values decrease it) and
// returns the log entry describing the change.
func (s *Store) Add(ctx context.Context, item string, quantity int) dominv.StockAdded {
	ctx, exec := s.begin(ctx, useCaseAdd, "AddStock",
		attribute.String("inventory.item", item),
		attribute.Int("inventory.quantity", quantity),
	)
	added := s.add(exec, item, quantity)
	s.end(ctx, exec, nil)
	return added
}

// AddValue is Add for values whose types are not known statically. When item
// is not a string or quantity not an integer it prints a diagnostic, leaves
// the inventory untouched and returns an error wrapping ErrInvalidInput.
func (s *Store) AddValue(ctx context.Context, item, quantity any) (dominv.StockAdded, error) {
	ctx, exec := s.begin(ctx, useCaseAdd, "AddStock")

	name, n, err := ParseAddition(item, quantity)
	if err != nil {
		exec.mark(outcomeError, statusInvalidInput)
		exec.with(
			observability.F("item_type", fmt.Sprintf("%T", item)),
			observability.F("quantity_type", fmt.Sprintf("%T", quantity)),
		)
		s.say(msgInvalidInput)
		s.end(ctx, exec, err)
		return dominv.StockAdded{}, err
	}

	exec.span.SetAttributes(
		attribute.String("inventory.item", name),
		attribute.Int("inventory.quantity", n),
	)
	added := s.add(exec, name, n)
	s.end(ctx, exec, nil)
	return added, nil
}

func (s *Store) add(exec *execution, item string, quantity int) dominv.StockAdded {
	stock := s.inv.Add(item, quantity)
	added := dominv.NewStockAdded(s.ids.NewID(), item, quantity, s.now())

	exec.with(
		observability.F("item", item),
		observability.F("quantity", quantity),
		observability.F("stock", stock),
		observability.F("entry_id", added.ID),
		observability.F("entry", added.String()),
	)
	s.recordLevels()
	return added
}

// Remove decreases item's stock and deletes the item once it reaches zero or
// below. Removing an absent item prints a diagnostic and returns an error
// wrapping ErrItemNotFound.
func (s *Store) Remove(ctx context.Context, item string, quantity int) (err error) {
	ctx, exec := s.begin(ctx, useCaseRemove, "RemoveStock",
		attribute.String("inventory.item", item),
		attribute.Int("inventory.quantity", quantity),
	)
	defer func() { s.end(ctx, exec, err) }()

	remaining, rerr := s.inv.Remove(item, quantity)
	if rerr != nil {
		exec.mark(outcomeError, statusItemNotFound)
		exec.with(observability.F("item", item))
		s.say(fmt.Sprintf(msgItemNotFound, item))
		return fmt.Errorf("inventory: remove %q: %w", item, rerr)
	}

	exec.with(
		observability.F("item", item),
		observability.F("quantity", quantity),
		observability.F("remaining", remaining),
		observability.F("deleted", !s.inv.Has(item)),
	)
	s.recordLevels()
	return nil
}

// QuantityOf returns item's stock, 0 when absent.
func (s *Store) QuantityOf(item string) int {
	return s.inv.Quantity(item)
}

// LowStock lists, in insertion order, the items whose stock is below threshold.
func (s *Store) LowStock(threshold int) []string {
	return s.inv.LowStock(threshold)
}

// Snapshot returns the current entries in insertion order.
func (s *Store) Snapshot() []dominv.Entry {
	return s.inv.Entries()
}

// Load replaces the in-memory inventory with the repository's snapshot.
// A missing snapshot resets the store to empty and is not an error.
func (s *Store) Load(ctx context.Context) (err error) {
	ctx, exec := s.begin(ctx, useCaseLoad, "LoadInventory")
	defer func() { s.end(ctx, exec, err) }()

	inv, lerr := s.repo.Load(ctx)
	switch {
	case errors.Is(lerr, dominv.ErrSnapshotNotFound):
		exec.mark(outcomeSuccess, statusSnapshotNotFound)
		s.say(msgFileNotFound)
		s.inv = dominv.New()
	case lerr != nil:
		exec.mark(outcomeError, statusLoadFailed)
		return fmt.Errorf("inventory: load: %w", lerr)
	default:
		s.inv = inv
	}

	exec.with(
		observability.F("items", s.inv.Len()),
		observability.F("units", s.inv.Units()),
	)
	s.recordLevels()
	return nil
}

// Save writes the current inventory to the repository.
func (s *Store) Save(ctx context.Context) (err error) {
	ctx, exec := s.begin(ctx, useCaseSave, "SaveInventory",
		attribute.Int("inventory.items", s.inv.Len()),
	)
	defer func() { s.end(ctx, exec, err) }()

	if serr := s.repo.Save(ctx, s.inv); serr != nil {
		exec.mark(outcomeError, statusSaveFailed)
		return fmt.Errorf("inventory: save: %w", serr)
	}
	exec.with(observability.F("items", s.inv.Len()))
	return nil
}

// Report writes a header followed by one "<item> -> <quantity>" line per entry.
func (s *Store) Report() error {
	var b strings.Builder
	b.WriteString(reportHeader)
	for _, e := range s.inv.Entries() {
		fmt.Fprintf(&b, reportLineFormat, e.Item, e.Quantity)
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

// Apply runs AddValue for every addition in order. Rejected additions are
// skipped; their errors are joined and returned alongside the accepted entries.
func (s *Store) Apply(ctx context.Context, additions []Addition) ([]dominv.StockAdded, error) {
	ctx, exec := s.begin(ctx, useCaseApply, "ApplyAdditions",
		attribute.Int("batch.size", len(additions)),
	)

	added := make([]dominv.StockAdded, 0, len(additions))
	var errs []error
	for i, a := range additions {
		entry, err := s.AddValue(ctx, a.Item, a.Quantity)
		if err != nil {
			errs = append(errs, fmt.Errorf("addition %d: %w", i, err))
			continue
		}
		added = append(added, entry)
	}

	err := errors.Join(errs...)
	if err != nil {
		exec.mark(outcomeError, statusPartiallyApplied)
	}
	exec.with(
		observability.F("accepted", len(added)),
		observability.F("rejected", len(errs)),
	)
	s.end(ctx, exec, err)
	return added, err
}

func (s *Store) say(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Store) recordLevels() {
	s.itemsGauge.Set(float64(s.inv.Len()))
	s.unitsGauge.Set(float64(s.inv.Units()))
}
