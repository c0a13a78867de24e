package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	Validator         *config.InputParser
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
		Validator:         config.NewInputParser(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; empty means the first scenario
	Templates        []string // List of template names to apply
	Transforms       []string // Ad-hoc transform specs, each run as its own alternative
}

// Compare runs the base scenario plus one alternative per template or transform spec
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, err := findBase(cfg, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}

	baseTable, err := ce.CalcEngine.RunScenario(ctx, cfg, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseTable, baseScenario)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modifiedScenario.Name = baseScenario.Name + "_" + templateName

		altResult, err := ce.runAlternative(ctx, cfg, modifiedScenario, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, altResult)
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modifiedScenario, err := transform.ApplyTransforms(baseScenario, []transform.ScenarioTransform{tr})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", tr.Name(), err)
		}
		modifiedScenario.Name = baseScenario.Name + "_" + tr.Name()

		altResult, err := ce.runAlternative(ctx, cfg, modifiedScenario, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", tr.Name(), err)
		}
		altResult.Description = tr.Description()
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios from the configuration (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	cfg *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, err := findBase(cfg, baseScenarioName)
	if err != nil {
		return nil, err
	}

	baseTable, err := ce.CalcEngine.RunScenario(ctx, cfg, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseTable, baseScenario)

	if len(alternativeScenarioNames) == 0 {
		for _, s := range cfg.Scenarios {
			if s.Name != baseScenario.Name {
				alternativeScenarioNames = append(alternativeScenarioNames, s.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		altScenario, ok := cfg.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altResult, err := ce.runAlternative(ctx, cfg, altScenario, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runAlternative(ctx context.Context, cfg *domain.Configuration, scenario *domain.Scenario, base ComparisonResult) (ComparisonResult, error) {
	if err := ce.Validator.ValidateScenario(scenario); err != nil {
		return ComparisonResult{}, fmt.Errorf("modified scenario is invalid: %w", err)
	}
	table, err := ce.CalcEngine.RunScenario(ctx, cfg, scenario)
	if err != nil {
		return ComparisonResult{}, err
	}
	result := ce.MetricsCalculator.CalculateMetrics(table, scenario)
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}

func findBase(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if cfg == nil || len(cfg.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}
	if name == "" {
		return &cfg.Scenarios[0], nil
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", name)
	}
	return scenario, nil
}
