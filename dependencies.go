package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/catalog"
	"github.com/angoly-ara/inventory/codec"
	"github.com/angoly-ara/inventory/menu"
	"github.com/angoly-ara/inventory/repository"
)

var ErrMissingDependency = errors.New("missing dependency")

// Container holds all dependencies of the application, initialised from a Config.
type Container struct {
	Config    *Config
	Logger    *slog.Logger
	Fs        afero.Fs
	SessionID string

	Store repository.Store
	Audit audit.Log

	Clients    *catalog.Catalog[catalog.Client]
	Warehouses *catalog.Catalog[catalog.Warehouse]
	Products   *catalog.Catalog[catalog.Product]

	closers []io.Closer
}

// EnsureAllDependenciesPresent returns an error, if the Container was not fully initialised.
func (c *Container) EnsureAllDependenciesPresent() error {
	if c.Config == nil || c.Logger == nil || c.Fs == nil || c.Store == nil || c.Audit == nil ||
		c.Clients == nil || c.Warehouses == nil || c.Products == nil {
		return ErrMissingDependency
	}

	return nil
}

// InitialiseDefaultDependencies builds a Container from conf.
// All files are accessed via fs, which defaults to the OS file system.
func InitialiseDefaultDependencies(ctx context.Context, conf *Config, fs afero.Fs) (*Container, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: config", ErrMissingDependency)
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}

	dc := &Container{
		Config:    conf,
		Fs:        fs,
		SessionID: uuid.NewString(),
		closers:   []io.Closer{},
	}

	logger, err := dc.newLogger()
	if err != nil {
		return nil, err
	}

	dc.Logger = logger.With(slog.String("session", dc.SessionID))

	dc.Store, err = NewStore(conf, fs)
	if err != nil {
		return nil, err
	}

	dc.Audit = audit.NewFileLog(fs, conf.Path(conf.Audit.File), dc.Logger)

	opts := []catalog.Option{
		catalog.WithLogger(dc.Logger),
		catalog.WithAudit(dc.Audit),
	}
	if conf.Menu.KeepOnEmpty {
		opts = append(opts, catalog.WithKeepOnEmpty())
	}

	dc.Clients = catalog.New(kind(catalog.ClientKind, conf.Clients, conf.Store.Format), dc.Store, opts...)
	dc.Warehouses = catalog.New(kind(catalog.WarehouseKind, conf.Warehouses, conf.Store.Format), dc.Store, opts...)
	dc.Products = catalog.New(kind(catalog.ProductKind, conf.Products, conf.Store.Format), dc.Store, opts...)

	dc.Logger.DebugContext(ctx, "dependencies initialised",
		slog.String("data_dir", conf.DataDir),
		slog.String("format", string(conf.Store.Format)),
		slog.String("user", conf.User),
	)

	return dc, nil
}

// Actor is the user recorded in the audit log for all changes.
func (c *Container) Actor() audit.Actor { //nolint:ireturn // audit works with the interface
	return audit.User(c.Config.User)
}

// MainMenu returns the interactive menu, reading from in and writing to out.
func (c *Container) MainMenu(in io.Reader, out io.Writer) *menu.MainMenu {
	console := menu.NewConsole(in, out)
	actor := c.Actor()

	return menu.NewMainMenu(console, actor, c.Logger,
		menu.NewRecordMenu(console, c.Clients, actor, c.Logger),
		menu.NewRecordMenu(console, c.Warehouses, actor, c.Logger),
		menu.NewRecordMenu(console, c.Products, actor, c.Logger),
	)
}

// Shutdown closes all files opened by the Container.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.DebugContext(ctx, "shutting down")

	var err error
	for _, closer := range c.closers {
		err = errors.Join(err, closer.Close())
	}

	c.closers = nil

	return err
}

func (c *Container) newLogger() (*slog.Logger, error) {
	path := c.Config.Path(c.Config.Log.File)
	if path == "" {
		if c.Config.Environment == LocalEnv {
			return alog.NewDevelopment(), nil
		}

		return alog.NewNoop(), nil
	}

	if err := c.Fs.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	f, err := c.Fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gomnd // file permission
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	c.closers = append(c.closers, f)

	return alog.NewFile(f, c.Config.Log.Level), nil
}

// NewStore returns the Store for the configured format, writing to the data folder on fs.
func NewStore(conf *Config, fs afero.Fs) (repository.Store, error) { //nolint:ireturn // the format decides the implementation
	switch conf.Store.Format {
	case JSONFormat:
		return repository.NewJSONStore(conf.DataDir, repository.WithFs(fs)), nil
	case YAMLFormat:
		return repository.NewYAMLStore(conf.DataDir, repository.WithFs(fs)), nil
	case BinaryFormat, "":
		opts := []codec.Option{codec.WithByteOrder(conf.Store.ByteOrder.Binary())}

		cm, err := conf.Store.Charmap()
		if err != nil {
			return nil, err
		}

		if cm != nil {
			opts = append(opts, codec.WithCharmap(cm))
		}

		if conf.Store.Lenient {
			opts = append(opts, codec.Lenient())
		}

		return repository.NewBinaryStore(conf.DataDir, repository.WithFs(fs)).WithCodecOptions(opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown store format %q", errConfigLoadFailed, conf.Store.Format)
	}
}

// kind applies the configured file and id range to k.
// Files of the text formats get the matching extension.
func kind[E any](k catalog.Kind[E], records Records, format Format) catalog.Kind[E] {
	k = k.WithRange(records.Range())

	if records.File != "" {
		k.File = records.File
	}

	if format == JSONFormat || format == YAMLFormat {
		k.File = strings.TrimSuffix(k.File, filepath.Ext(k.File)) + "." + string(format)
	}

	return k
}
