// Package config loads the application configuration, the catalog layouts
// and the margin table from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/kikipneus/pricelist-go/internal/logging"
)

// Environment variables overriding the file configuration.
const (
	EnvWorkbookDir = "PRICELIST_WORKBOOK_DIR"
	EnvDBPath      = "PRICELIST_DB_PATH"
	EnvLogLevel    = "PRICELIST_LOG_LEVEL"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Data    DataConfig     `toml:"data"`
	Store   StoreConfig    `toml:"store"`
	Import  ImportConfig   `toml:"import"`
	Pricing PricingConfig  `toml:"pricing"`
	Logging logging.Config `toml:"logging"`
}

// DataConfig locates the workbooks and the reference data files.
type DataConfig struct {
	WorkbookDir  string `toml:"workbook_dir" validate:"required"`
	CatalogsFile string `toml:"catalogs_file" validate:"required"`
	MarginsFile  string `toml:"margins_file" validate:"required"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `toml:"path" validate:"required"`
}

// ImportConfig tunes batch runs.
type ImportConfig struct {
	Workers int  `toml:"workers" validate:"gte=0"`
	DryRun  bool `toml:"dry_run"`
}

// PricingConfig holds margin table settings.
type PricingConfig struct {
	// MaxPrice is the terminal bucket sentinel of the margin table.
	MaxPrice int64 `toml:"max_price" validate:"gt=0"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			WorkbookDir:  "data/pricelists",
			CatalogsFile: "configs/catalogs.toml",
			MarginsFile:  "configs/margins.toml",
		},
		Store: StoreConfig{
			Path: "data/pricelist.db",
		},
		Import: ImportConfig{
			Workers: 4,
		},
		Pricing: PricingConfig{
			MaxPrice: 99999,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads the configuration at path over the defaults, then applies
// environment overrides. An empty path or a missing file yields the
// defaults. Relative paths in the file are resolved against its directory.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.resolvePaths(filepath.Dir(path))
		}
	}

	cfg.applyEnv()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", flattenValidation(err, "config"))
	}
	return cfg, nil
}

func (c *AppConfig) resolvePaths(base string) {
	for _, p := range []*string{&c.Data.WorkbookDir, &c.Data.CatalogsFile, &c.Data.MarginsFile, &c.Store.Path, &c.Logging.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv(EnvWorkbookDir); v != "" {
		c.Data.WorkbookDir = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// flattenValidation turns validator errors into one error per field.
func flattenValidation(err error, subject string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: %s fails %q (value %q)", subject, fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return errors.Join(errs...)
}
