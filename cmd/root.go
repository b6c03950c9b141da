// Package cmd contains the cobra commands of the inventory cli.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/angoly-ara/inventory"
	"github.com/angoly-ara/inventory/alog"
	ctx2 "github.com/angoly-ara/inventory/ctx"
)

// cli holds what all commands share: the file system and the persistent flags.
type cli struct {
	fs afero.Fs

	configFile string
	dataDir    string
	user       string
}

// NewInventoryCLI initialises the complete cli with its commands and returns the root command.
// All files are accessed via fs.
func NewInventoryCLI(fs afero.Fs) *cobra.Command {
	c := &cli{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage the clients, warehouses and products of your business.",
		Long: `inventory keeps clients, warehouses and products in binary files
and records every change in an audit log.
Without a command it starts the interactive menu.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withContainer(cmd, func(ctx context.Context, dc *inventory.Container) error {
				return dc.MainMenu(cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx) //nolint:wrapcheck // already wrapped
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ./inventory.yaml or $HOME/.config/inventory/inventory.yaml)")
	flags.StringVar(&c.dataDir, "data-dir", "", "folder of the data files")
	flags.StringVar(&c.user, "user", "", "name recorded in the audit log")

	rootCmd.AddCommand(
		Version("inventory"),
		newListCmd(c),
		newExportCmd(c),
		newAuditCmd(c),
	)

	return rootCmd
}

// Execute runs the inventory cli on the OS file system.
func Execute() {
	if err := NewInventoryCLI(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

// config loads the configuration from defaults, config file, environment and flags.
func (c *cli) config() (*inventory.Config, error) {
	vip := inventory.DefaultViper()
	vip.SetFs(c.fs)

	if c.configFile != "" {
		vip.SetConfigFile(c.configFile)
	}

	if err := vip.ReadInConfig(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped
	}

	if c.dataDir != "" {
		vip.Set("data_dir", c.dataDir)
	}

	if c.user != "" {
		vip.Set("user", c.user)
	}

	conf := &inventory.Config{}
	if err := vip.Unmarshal(conf); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped
	}

	return conf, nil
}

// withContainer initialises all dependencies, calls f and shuts them down again.
func (c *cli) withContainer(cmd *cobra.Command, f func(ctx context.Context, dc *inventory.Container) error) error {
	conf, err := c.config()
	if err != nil {
		return err
	}

	ctx := ctx2.WithUser(cmd.Context(), conf.User)
	ctx = alog.AddAttr(ctx, slog.String("user", conf.User))

	dc, err := inventory.InitialiseDefaultDependencies(ctx, conf, c.fs)
	if err != nil {
		return fmt.Errorf("could not start: %w", err)
	}

	return errors.Join(f(ctx, dc), dc.Shutdown(ctx))
}
