package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/parser"
)

type catalogFile struct {
	Catalogs []models.CatalogSpec `toml:"catalog"`
}

// LoadCatalogs reads the [[catalog]] tables of path and validates them.
// Unknown keys are rejected so that a misspelled column is not silently
// dropped.
func LoadCatalogs(path string) ([]models.CatalogSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogs: %w", err)
	}
	defer f.Close()

	var file catalogFile
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, fmt.Errorf("parse catalogs %s: %w", path, err)
	}
	if err := ValidateCatalogs(file.Catalogs); err != nil {
		return nil, err
	}
	return file.Catalogs, nil
}

// ValidateCatalogs checks every catalog layout and returns all problems
// found, joined.
func ValidateCatalogs(specs []models.CatalogSpec) error {
	v := newCatalogValidator()
	seen := make(map[string]int, len(specs))

	var errs []error
	for i, spec := range specs {
		subject := fmt.Sprintf("catalog %d (%q)", i, spec.Name)

		if err := v.Struct(spec); err != nil {
			errs = append(errs, flattenValidation(err, subject))
		}
		if prev, ok := seen[spec.Name]; ok && spec.Name != "" {
			errs = append(errs, fmt.Errorf("%s: duplicate name, first defined at catalog %d", subject, prev))
		} else {
			seen[spec.Name] = i
		}
		for _, missing := range missingSizeColumns(spec) {
			errs = append(errs, fmt.Errorf("%s: size format %s requires %s", subject, spec.SizeFormat, missing))
		}
	}
	return errors.Join(errs...)
}

// missingSizeColumns lists the size columns the catalog's format needs but
// does not define.
func missingSizeColumns(spec models.CatalogSpec) []string {
	var required map[string]string
	switch spec.SizeFormat {
	case models.SizeFormatCombined:
		required = map[string]string{"dimension_column": spec.DimensionColumn}
	case models.SizeFormatSplitNoWidth:
		required = map[string]string{"diameter_column": spec.DiameterColumn}
	case models.SizeFormatSplitFull:
		required = map[string]string{"width_column": spec.WidthColumn, "diameter_column": spec.DiameterColumn}
	}

	var missing []string
	for _, name := range []string{"dimension_column", "width_column", "diameter_column"} {
		if ref, ok := required[name]; ok && strings.TrimSpace(ref) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func newCatalogValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("column_ref", func(fl validator.FieldLevel) bool {
		_, err := parser.ParseColumnRef(fl.Field().String())
		return err == nil
	})
	// "x" takes the brand from the catalog name; the column X is ambiguous with it
	v.RegisterValidation("brand_column", func(fl validator.FieldLevel) bool {
		ref := strings.TrimSpace(fl.Field().String())
		if ref == models.BrandFromCatalog {
			return true
		}
		if ref == "X" {
			return false
		}
		_, err := parser.ParseColumnRef(ref)
		return err == nil
	})
	v.RegisterValidation("size_format", func(fl validator.FieldLevel) bool {
		return models.SizeFormat(fl.Field().String()).Valid()
	})
	return v
}
