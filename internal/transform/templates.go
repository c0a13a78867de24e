package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if
// questions for a regime household. Strategy names match DefaultStrategies
// in the config package.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Sourcing
	registry.Register(Template{
		Name:        "rental_foreign",
		Description: "Treat rental income as foreign-source (eligible for the 7% rate)",
		Transforms: []ScenarioTransform{
			&SetStrategySource{Strategy: "Rental", Foreign: true},
		},
	})

	registry.Register(Template{
		Name:        "rental_domestic",
		Description: "Treat rental income as Italian-source (progressive tax)",
		Transforms: []ScenarioTransform{
			&SetStrategySource{Strategy: "Rental", Foreign: false},
		},
	})

	// Horizon
	registry.Register(Template{
		Name:        "short_regime",
		Description: "Leave the flat-tax regime after 5 years over the same horizon",
		Transforms: []ScenarioTransform{
			&SetRegimeYears{Years: 5, KeepHorizon: true},
		},
	})

	registry.Register(Template{
		Name:        "extended_horizon",
		Description: "Project 20 years after the regime ends",
		Transforms: []ScenarioTransform{
			&SetPostRegimeYears{Years: 20},
		},
	})

	// Markets
	registry.Register(Template{
		Name:        "yields_down_1pct",
		Description: "Every strategy yields one percentage point less",
		Transforms: []ScenarioTransform{
			&AdjustYield{Delta: decimal.RequireFromString("-0.01")},
		},
	})

	registry.Register(Template{
		Name:        "yields_up_1pct",
		Description: "Every strategy yields one percentage point more",
		Transforms: []ScenarioTransform{
			&AdjustYield{Delta: decimal.RequireFromString("0.01")},
		},
	})

	// Allocation
	registry.Register(Template{
		Name:        "all_cash",
		Description: "Hold all capital in cash",
		Transforms: []ScenarioTransform{
			&SetAllocation{Strategy: "Cash", Allocation: decimal.NewFromInt(1), Rebalance: true},
		},
	})

	registry.Register(Template{
		Name:        "growth_tilt",
		Description: "Move to 40% equities, rebalancing the other strategies",
		Transforms: []ScenarioTransform{
			&SetAllocation{Strategy: "Equity", Allocation: decimal.RequireFromString("0.4"), Rebalance: true},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Income Source":    {},
		"Regime Horizon":   {},
		"Market Yields":    {},
		"Capital Strategy": {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "rental_"):
			categories["Income Source"] = append(categories["Income Source"], template)
		case strings.HasSuffix(name, "_regime") || strings.HasSuffix(name, "_horizon"):
			categories["Regime Horizon"] = append(categories["Regime Horizon"], template)
		case strings.HasPrefix(name, "yields_"):
			categories["Market Yields"] = append(categories["Market Yields"], template)
		default:
			categories["Capital Strategy"] = append(categories["Capital Strategy"], template)
		}
	}

	for _, category := range []string{"Income Source", "Regime Horizon", "Market Yields", "Capital Strategy"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  regime7 compare config.yaml --with rental_foreign,short_regime\n")
	sb.WriteString("  regime7 compare config.yaml --base Base --with yields_down_1pct,all_cash\n")

	return sb.String()
}
