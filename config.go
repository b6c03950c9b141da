package inventory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/repository"
)

// Config is a structure used for the application configuration.
// It is intended to be mapped by viper.
type Config struct {
	ApplicationName string      `mapstructure:"application_name"`
	Environment     Environment `mapstructure:"environment"`

	// DataDir is the folder all data files are stored in.
	DataDir string `mapstructure:"data_dir" validate:"required"`
	// User is the name recorded in the audit log.
	User string `mapstructure:"user" validate:"required"`

	Log   Log   `mapstructure:"log"`
	Store Store `mapstructure:"store"`
	Audit Audit `mapstructure:"audit"`
	Menu  Menu  `mapstructure:"menu"`

	Clients    Records `mapstructure:"clients"`
	Warehouses Records `mapstructure:"warehouses"`
	Products   Records `mapstructure:"products"`
}

const (
	LocalEnv      Environment = "local"
	TestEnv       Environment = "test"
	ProductionEnv Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, ProductionEnv}
}

type Environment string

// Store formats.
const (
	BinaryFormat Format = "binary"
	JSONFormat   Format = "json"
	YAMLFormat   Format = "yaml"
)

func Formats() []Format {
	return []Format{BinaryFormat, JSONFormat, YAMLFormat}
}

type Format string

// Byte orders of the length prefix in the binary format.
const (
	NativeOrder ByteOrder = "native"
	LittleOrder ByteOrder = "little"
	BigOrder    ByteOrder = "big"
)

func ByteOrders() []ByteOrder {
	return []ByteOrder{NativeOrder, LittleOrder, BigOrder}
}

type ByteOrder string

// Binary returns the binary.ByteOrder o stands for.
func (o ByteOrder) Binary() binary.ByteOrder { //nolint:ireturn // encoding/binary works with the interface
	switch o {
	case LittleOrder:
		return binary.LittleEndian
	case BigOrder:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}

type (
	Log struct {
		Level slog.Level `mapstructure:"level"`
		// File is relative to DataDir, if it is not absolute. Empty disables logging.
		File string `mapstructure:"file"`
	}

	Store struct {
		Format    Format    `mapstructure:"format"`
		ByteOrder ByteOrder `mapstructure:"byte_order"`
		// Charset of text in binary files, e.g. windows-1252. Empty is UTF-8.
		Charset string `mapstructure:"charset"`
		// Lenient ignores a damaged last record when loading.
		Lenient bool `mapstructure:"lenient"`
	}

	Audit struct {
		File string `mapstructure:"file" validate:"required"`
	}

	Menu struct {
		KeepOnEmpty bool `mapstructure:"keep_on_empty"`
	}

	// Records configures where one kind of record is stored and which ids it uses.
	Records struct {
		File   string `mapstructure:"file"    validate:"required"`
		IDLow  int    `mapstructure:"id_low"  validate:"gte=0"`
		IDHigh int    `mapstructure:"id_high" validate:"gtefield=IDLow"`
	}
)

// Range returns the id range of the records.
func (r Records) Range() repository.IDRange {
	return repository.NewIDRange(r.IDLow, r.IDHigh)
}

// Path returns the absolute or DataDir relative path of file.
func (c *Config) Path(file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}

	return filepath.Join(c.DataDir, file)
}

// Charmap returns the charset of the binary files. It is nil for UTF-8.
func (s Store) Charmap() (*charmap.Charmap, error) {
	name := strings.TrimSpace(s.Charset)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil //nolint:nilnil // nil is UTF-8
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown charset %q: %v", errConfigLoadFailed, name, err)
	}

	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w: charset %q is not a single byte charset", errConfigLoadFailed, name)
	}

	return cm, nil
}

// DefaultViper returns a new viper instance with all default values
// from Config set.
// Environment variables with the prefix INVENTORY_ overwrite all values,
// e.g. INVENTORY_STORE_FORMAT=json.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetConfigName("inventory")
	vip.SetConfigType("yaml")
	vip.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		vip.AddConfigPath(filepath.Join(home, ".config", "inventory"))
	}

	vip.SetEnvPrefix("INVENTORY")
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("application_name", "inventory")
	vip.SetDefault("environment", "local")
	vip.SetDefault("data_dir", "data")
	vip.SetDefault("user", defaultUser())

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.file", "inventory.log")

	vip.SetDefault("store.format", "binary")
	vip.SetDefault("store.byte_order", "native")
	vip.SetDefault("store.charset", "")
	vip.SetDefault("store.lenient", false)

	vip.SetDefault("audit.file", "bitacora.log")

	vip.SetDefault("menu.keep_on_empty", false)

	vip.SetDefault("clients.file", "clientes.bin")
	vip.SetDefault("clients.id_low", 3107)
	vip.SetDefault("clients.id_high", 3157)

	vip.SetDefault("warehouses.file", "bodegas.bin")
	vip.SetDefault("warehouses.id_low", 3158)
	vip.SetDefault("warehouses.id_high", 3208)

	vip.SetDefault("products.file", "productos.bin")
	vip.SetDefault("products.id_low", 3209)
	vip.SetDefault("products.id_high", 3259)

	return &Viper{Viper: vip}
}

func defaultUser() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}

	return "unknown"
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// It overwrites Unmarshal, so that the custom types of Config are decoded
// and the result is validated.
type Viper struct {
	*viper.Viper
}

// ReadInConfig reads the config file, if there is one.
// Not having a config file is fine, the defaults are used.
func (vip *Viper) ReadInConfig() error {
	err := vip.Viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", errConfigLoadFailed, err)
	}

	return nil
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append([]viper.DecoderConfigOption{viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedValuesHookFunc(Environments()),
		allowedValuesHookFunc(Formats()),
		allowedValuesHookFunc(ByteOrders()),
		logLevelHookFunc(),
	))}, opts...)

	if err := vip.Viper.Unmarshal(rawVal, opts...); err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err)
	}

	if config, ok := rawVal.(*Config); ok {
		if err := validator.New().Struct(config); err != nil {
			return fmt.Errorf("%w: %w", errConfigLoadFailed, err)
		}

		if _, err := config.Store.Charmap(); err != nil {
			return err
		}
	}

	return nil
}

// allowedValuesHookFunc rejects values of type T that are not in allowed.
func allowedValuesHookFunc[T ~string](allowed []T) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(T("")) {
			return data, nil
		}

		s, _ := data.(string)
		if slices.Contains(allowed, T(s)) {
			return data, nil
		}

		values := make([]string, 0, len(allowed))
		for _, v := range allowed {
			values = append(values, string(v))
		}

		return data, fmt.Errorf("value %q is not allowed, use one of: %s", s, strings.Join(values, ", ")) //nolint:err113,lll // accept dynamic error
	}
}

func logLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(slog.Level(0)) || f.Kind() != reflect.String {
			return data, nil
		}

		return alog.ParseLevel(reflect.ValueOf(data).String())
	}
}
