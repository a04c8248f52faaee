package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	appinv "github.com/Zhima-Mochi/stockledger/internal/application/inventory"
	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the fixed demonstration sequence",
		Long: `Adds apple and banana, rejects a malformed addition, removes apple
and a missing orange, prints the apple stock and the low items, then saves,
reloads and prints the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context())
		},
	}
}

func (a *app) runDemo(ctx context.Context) error {
	s, out := a.rt.store, a.rt.out

	s.Add(ctx, "apple", 10)
	s.Add(ctx, "banana", -2)
	if _, err := s.AddValue(ctx, 123, "ten"); err != nil && !errors.Is(err, dominv.ErrInvalidInput) {
		return err
	}
	if err := s.Remove(ctx, "apple", 3); err != nil {
		return err
	}
	if err := s.Remove(ctx, "orange", 1); err != nil && !errors.Is(err, dominv.ErrItemNotFound) {
		return err
	}

	fmt.Fprintf(out, "Apple stock: %d\n", s.QuantityOf("apple"))
	fmt.Fprintf(out, "Low items: %v\n", s.LowStock(a.rt.cfg.Inventory.LowStockThreshold))

	if err := s.Save(ctx); err != nil {
		return err
	}
	if err := s.Load(ctx); err != nil {
		return err
	}
	return s.Report()
}

func newAddCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [flags] ITEM QUANTITY",
		Short: "Add QUANTITY (may be negative) to ITEM and save",
		Long: `Add QUANTITY to ITEM and save. Flags must come before ITEM so that a
negative QUANTITY such as -2 is read as a number.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.rt.store
			if err := s.Load(ctx); err != nil {
				return err
			}

			var quantity any = args[1]
			if n, err := strconv.Atoi(args[1]); err == nil {
				quantity = n
			}
			added, err := s.AddValue(ctx, args[0], quantity)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.rt.out, added.String())
			return s.Save(ctx)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [flags] ITEM QUANTITY",
		Short: "Remove QUANTITY of ITEM and save; the item is dropped at zero",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not an integer", args[1])
			}
			ctx := cmd.Context()
			s := a.rt.store
			if err := s.Load(ctx); err != nil {
				return err
			}
			if err := s.Remove(ctx, args[0], quantity); err != nil {
				return err
			}
			return s.Save(ctx)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newQtyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "qty ITEM",
		Short: "Print the stock of ITEM (0 when absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.rt.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.rt.out, "%s stock: %d\n", args[0], s.QuantityOf(args[0]))
			return nil
		},
	}
}

func newLowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "List items below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.rt.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.rt.out, "Low items: %v\n", s.LowStock(a.rt.cfg.Inventory.LowStockThreshold))
			return nil
		},
	}
}

func newReportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print every item and its quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.rt.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			return s.Report()
		},
	}
}

func newApplyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: `Apply a JSON array of {"item": ..., "quantity": ...} additions and save`,
		Long: `Apply reads FILE as a JSON array of additions. Entries whose item is not
a string or whose quantity is not an integer are reported and skipped; the
rest are applied in order and the inventory is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			additions, err := readAdditions(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s := a.rt.store
			if err := s.Load(ctx); err != nil {
				return err
			}
			added, err := s.Apply(ctx, additions)
			if err != nil && !errors.Is(err, dominv.ErrInvalidInput) {
				return err
			}
			for _, e := range added {
				fmt.Fprintln(a.rt.out, e.String())
			}
			fmt.Fprintf(a.rt.out, "Applied %d of %d additions.\n", len(added), len(additions))
			return s.Save(ctx)
		},
	}
}

func readAdditions(path string) ([]appinv.Addition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read additions: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var additions []appinv.Addition
	if err := dec.Decode(&additions); err != nil {
		return nil, fmt.Errorf("decode additions %s: %w", path, err)
	}
	return additions, nil
}
