package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/pricing"
)

// ruleEntry is one [[rule]] table. Amounts may be written as integers,
// floats or strings.
type ruleEntry struct {
	Size         int `toml:"size"`
	FromPrice    any `toml:"from_price"`
	ToPrice      any `toml:"to_price"`
	MarginGarage any `toml:"margin_garage"`
	Margin       any `toml:"margin"`
}

type rulesFile struct {
	Rules []ruleEntry `toml:"rule"`
}

// LoadRules reads the [[rule]] tables of path.
func LoadRules(path string) ([]models.DiscountRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open margins: %w", err)
	}
	defer f.Close()

	var file rulesFile
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, fmt.Errorf("parse margins %s: %w", path, err)
	}

	rules := make([]models.DiscountRule, 0, len(file.Rules))
	var errs []error
	for i, e := range file.Rules {
		rule, err := e.toRule()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		rules = append(rules, rule)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return rules, nil
}

func (e ruleEntry) toRule() (models.DiscountRule, error) {
	if e.Size <= 0 {
		return models.DiscountRule{}, fmt.Errorf("size must be positive, got %d", e.Size)
	}
	rule := models.DiscountRule{Size: e.Size}
	for _, f := range []struct {
		name string
		raw  any
		dst  *decimal.Decimal
	}{
		{"from_price", e.FromPrice, &rule.FromPrice},
		{"to_price", e.ToPrice, &rule.ToPrice},
		{"margin_garage", e.MarginGarage, &rule.MarginGarage},
		{"margin", e.Margin, &rule.Margin},
	} {
		d, err := toDecimal(f.raw)
		if err != nil {
			return rule, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = d
	}
	return rule, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		return decimal.NewFromString(x)
	case nil:
		return decimal.Zero, errors.New("missing value")
	default:
		return decimal.Zero, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

// BuildMarginTable loads the rules at path and builds a coherent margin table.
func BuildMarginTable(path string, maxPrice int64) (*pricing.MarginTable, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return pricing.NewMarginTable(rules, pricing.WithMaxPrice(decimal.NewFromInt(maxPrice)))
}
