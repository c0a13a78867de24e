package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Limits enforced on loaded configurations
const (
	MaxTotalYears = 50
	MaxStrategies = 10
)

var (
	one                 = decimal.NewFromInt(1)
	maxSurcharge        = decimal.RequireFromString("0.1")
	minInflation        = decimal.RequireFromString("-0.1")
	maxInflation        = decimal.RequireFromString("0.2")
	supportedCurrencies = map[string]bool{"GBP": true, "EUR": true, "USD": true, "CHF": true}
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is required")
	}
	if err := ip.validateHousehold(config.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}
	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.ValidateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name: %s", scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

func (ip *InputParser) validateHousehold(household *domain.Household) error {
	if household == nil {
		return fmt.Errorf("household is required")
	}
	for i, p := range household.Pensions {
		if p.AnnualAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("pension %d (%s): annual amount cannot be negative", i, p.Name)
		}
	}
	if household.StartingCapital.LessThan(decimal.Zero) {
		return fmt.Errorf("starting capital cannot be negative")
	}
	return nil
}

// ValidateScenario checks a single scenario's horizon and strategies.
// Transforms call it after modifying a scenario.
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if scenario.RegimeYears < 0 || scenario.RegimeYears > domain.MaxRegimeYears {
		return fmt.Errorf("regime years must be between 0 and %d", domain.MaxRegimeYears)
	}
	if scenario.PostRegimeYears < 0 {
		return fmt.Errorf("post-regime years cannot be negative")
	}
	if total := scenario.TotalYears(); total < 1 || total > MaxTotalYears {
		return fmt.Errorf("total years must be between 1 and %d", MaxTotalYears)
	}

	if len(scenario.Strategies) == 0 {
		return fmt.Errorf("at least one strategy is required")
	}
	if len(scenario.Strategies) > MaxStrategies {
		return fmt.Errorf("at most %d strategies are supported", MaxStrategies)
	}
	names := make(map[string]bool, len(scenario.Strategies))
	for i, s := range scenario.Strategies {
		if err := validateStrategy(&s); err != nil {
			return fmt.Errorf("strategy %d (%s) validation failed: %w", i, s.Name, err)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate strategy name: %s", s.Name)
		}
		names[s.Name] = true
	}
	return nil
}

func validateStrategy(s *domain.Strategy) error {
	if s.Name == "" {
		return fmt.Errorf("strategy name is required")
	}
	if !inRange(s.Allocation, decimal.Zero, one) {
		return fmt.Errorf("allocation must be between 0 and 1")
	}
	if !inRange(s.GrossYield, decimal.Zero, one) {
		return fmt.Errorf("gross yield must be between 0 and 1")
	}
	if !inRange(s.Fee, decimal.Zero, one) {
		return fmt.Errorf("fee must be between 0 and 1")
	}
	if !inRange(s.Growth, one.Neg(), one) {
		return fmt.Errorf("growth must be between -1 and 1")
	}
	return nil
}

// validateGlobalAssumptions validates global assumptions
func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if assumptions.Currency != "" && !supportedCurrencies[assumptions.Currency] {
		return fmt.Errorf("unsupported currency %q", assumptions.Currency)
	}
	if assumptions.FXRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("FX rate must be positive")
	}
	if !inRange(assumptions.InflationRate, minInflation, maxInflation) {
		return fmt.Errorf("inflation rate must be between -10%% and 20%%")
	}
	if err := ValidateTaxRules(&assumptions.TaxRules); err != nil {
		return fmt.Errorf("tax rules validation failed: %w", err)
	}
	return nil
}

// ValidateTaxRules checks bracket ordering and surcharge ranges.
// An empty bracket list is allowed and means the built-in IRPEF schedule.
func ValidateTaxRules(rules *domain.TaxRules) error {
	if !inRange(rules.RegionalSurcharge, decimal.Zero, maxSurcharge) {
		return fmt.Errorf("regional surcharge must be between 0 and 0.1")
	}
	if !inRange(rules.MunicipalSurcharge, decimal.Zero, maxSurcharge) {
		return fmt.Errorf("municipal surcharge must be between 0 and 0.1")
	}

	prev := decimal.Zero
	for i, b := range rules.Brackets {
		if !inRange(b.Rate, decimal.Zero, one) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1", i)
		}
		last := i == len(rules.Brackets)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: the last bracket must be unbounded (omit up_to)", i)
		}
		if b.UpTo.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d: bounds must be strictly increasing", i)
		}
		prev = *b.UpTo
	}
	return nil
}

func inRange(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}
