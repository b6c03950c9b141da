package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angoly-ara/inventory"
	"github.com/angoly-ara/inventory/catalog"
	"github.com/angoly-ara/inventory/menu"
)

const allKinds = "all"

// kinds are the names of the catalogs on the command line, in menu order.
func kinds() []string {
	return []string{"clients", "warehouses", "products"}
}

// catalogAction is something a command does with one catalog, whatever its entity.
type catalogAction interface {
	clients(ctx context.Context, c *catalog.Catalog[catalog.Client]) error
	warehouses(ctx context.Context, c *catalog.Catalog[catalog.Warehouse]) error
	products(ctx context.Context, c *catalog.Catalog[catalog.Product]) error
}

func forKind(ctx context.Context, dc *inventory.Container, kind string, a catalogAction) error {
	switch strings.ToLower(kind) {
	case "clients":
		return a.clients(ctx, dc.Clients)
	case "warehouses":
		return a.warehouses(ctx, dc.Warehouses)
	case "products":
		return a.products(ctx, dc.Products)
	default:
		return fmt.Errorf("unknown kind %q, use one of: %s", kind, strings.Join(kinds(), ", ")) //nolint:err113 // dynamic error
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:                   "list <clients|warehouses|products>",
		Short:                 "Print all records of a kind",
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             kinds(),
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withContainer(cmd, func(ctx context.Context, dc *inventory.Container) error {
				return forKind(ctx, dc, args[0], lister{w: cmd.OutOrStdout(), warn: cmd.ErrOrStderr()})
			})
		},
	}
}

type lister struct {
	w    io.Writer
	warn io.Writer
}

func (l lister) clients(ctx context.Context, c *catalog.Catalog[catalog.Client]) error {
	return list(ctx, l, c)
}

func (l lister) warehouses(ctx context.Context, c *catalog.Catalog[catalog.Warehouse]) error {
	return list(ctx, l, c)
}

func (l lister) products(ctx context.Context, c *catalog.Catalog[catalog.Product]) error {
	return list(ctx, l, c)
}

func list[E any](ctx context.Context, l lister, c *catalog.Catalog[E]) error {
	if err := load(ctx, l.warn, c); err != nil {
		return err
	}

	records := c.List(ctx)
	if len(records) == 0 {
		fmt.Fprintf(l.w, "no %s registered\n", strings.ToLower(c.Kind().Plural))

		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, c.Kind().Values(r))
	}

	menu.RenderTable(l.w, c.Kind().Headers(), c.Kind().Widths, rows)

	return nil
}

// load reads the records of c. A missing file is reported to warn and the catalog stays empty.
func load[E any](ctx context.Context, warn io.Writer, c *catalog.Catalog[E]) error {
	name := strings.ToLower(c.Kind().Plural)

	err := c.Load(ctx)
	if errors.Is(err, catalog.ErrNoData) {
		fmt.Fprintf(warn, "warning: could not open the %s file %s: %v\n", name, c.Kind().File, err)

		return nil
	}

	if err != nil {
		return fmt.Errorf("could not load %s: %w", name, err)
	}

	return nil
}
