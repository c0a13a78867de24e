package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_regime_years", createSetRegimeYears)
	registry.Register("set_post_regime_years", createSetPostRegimeYears)
	registry.Register("set_strategy_source", createSetStrategySource)
	registry.Register("adjust_yield", createAdjustYield)
	registry.Register("set_allocation", createSetAllocation)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_yield:strategy=Bonds,delta=-0.005"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func parseBool(s string) bool {
	return s == "true" || s == "yes" || s == "1"
}

// Factory functions for each transform

func createSetRegimeYears(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_regime_years requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &SetRegimeYears{Years: years, KeepHorizon: parseBool(params["keep_horizon"])}, nil
}

func createSetPostRegimeYears(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_post_regime_years requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &SetPostRegimeYears{Years: years}, nil
}

func createSetStrategySource(params map[string]string) (ScenarioTransform, error) {
	strategy, ok := params["strategy"]
	if !ok {
		return nil, fmt.Errorf("set_strategy_source requires 'strategy' parameter")
	}

	foreignStr, ok := params["foreign"]
	if !ok {
		return nil, fmt.Errorf("set_strategy_source requires 'foreign' parameter")
	}

	return &SetStrategySource{
		Strategy: strategy,
		Foreign:  parseBool(foreignStr),
	}, nil
}

func createAdjustYield(params map[string]string) (ScenarioTransform, error) {
	deltaStr, ok := params["delta"]
	if !ok {
		return nil, fmt.Errorf("adjust_yield requires 'delta' parameter")
	}

	delta, err := decimal.NewFromString(deltaStr)
	if err != nil {
		return nil, fmt.Errorf("invalid delta value: %w", err)
	}

	return &AdjustYield{
		Strategy: params["strategy"],
		Delta:    delta,
	}, nil
}

func createSetAllocation(params map[string]string) (ScenarioTransform, error) {
	strategy, ok := params["strategy"]
	if !ok {
		return nil, fmt.Errorf("set_allocation requires 'strategy' parameter")
	}

	allocStr, ok := params["allocation"]
	if !ok {
		return nil, fmt.Errorf("set_allocation requires 'allocation' parameter")
	}

	allocation, err := decimal.NewFromString(allocStr)
	if err != nil {
		return nil, fmt.Errorf("invalid allocation value: %w", err)
	}

	return &SetAllocation{
		Strategy:   strategy,
		Allocation: allocation,
		Rebalance:  parseBool(params["rebalance"]),
	}, nil
}
