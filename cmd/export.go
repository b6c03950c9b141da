package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/angoly-ara/inventory"
	"github.com/angoly-ara/inventory/catalog"
	"github.com/angoly-ara/inventory/repository"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <clients|warehouses|products|all>",
		Short: "Write the records of a kind as JSON or YAML",
		Long: `Loads the records of a kind and writes them into a human readable file.
The file is named after the kind, e.g. clients.json.`,
		Args:         cobra.ExactArgs(1),
		ValidArgs:    append(kinds(), allKinds),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withContainer(cmd, func(ctx context.Context, dc *inventory.Container) error {
				store, err := exportStore(c, dc, format, output)
				if err != nil {
					return err
				}

				e := exporter{store: store, format: format, warn: cmd.ErrOrStderr()}

				if args[0] != allKinds {
					if err := forKind(ctx, dc, args[0], e); err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], output)

					return nil
				}

				g, ctx := errgroup.WithContext(ctx)
				for _, kind := range kinds() {
					g.Go(func() error {
						return forKind(ctx, dc, kind, e)
					})
				}

				if err := g.Wait(); err != nil {
					return err //nolint:wrapcheck // errors of forKind are wrapped
				}

				fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", strings.Join(kinds(), ", "), output)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "format of the export: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "export", "folder to write the files to")

	return cmd
}

func exportStore(c *cli, dc *inventory.Container, format string, output string) (repository.Store, error) { //nolint:ireturn,lll // format decides the implementation
	if !filepath.IsAbs(output) {
		output = dc.Config.Path(output)
	}

	switch inventory.Format(format) {
	case inventory.JSONFormat:
		return repository.NewJSONStore(output, repository.WithFs(c.fs)), nil
	case inventory.YAMLFormat:
		return repository.NewYAMLStore(output, repository.WithFs(c.fs)), nil
	default:
		return nil, fmt.Errorf("unknown export format %q, use json or yaml", format) //nolint:err113 // dynamic error
	}
}

type exporter struct {
	store  repository.Store
	format string
	warn   io.Writer
}

func (e exporter) clients(ctx context.Context, c *catalog.Catalog[catalog.Client]) error {
	return export(ctx, e, c)
}

func (e exporter) warehouses(ctx context.Context, c *catalog.Catalog[catalog.Warehouse]) error {
	return export(ctx, e, c)
}

func (e exporter) products(ctx context.Context, c *catalog.Catalog[catalog.Product]) error {
	return export(ctx, e, c)
}

func export[E any](ctx context.Context, e exporter, c *catalog.Catalog[E]) error {
	name := strings.ToLower(c.Kind().Plural)

	if err := load(ctx, e.warn, c); err != nil {
		return err
	}

	if err := e.store.Store(name+"."+e.format, c.List(ctx)); err != nil {
		return fmt.Errorf("could not export %s: %w", name, err)
	}

	return nil
}
