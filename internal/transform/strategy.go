package transform

import (
	"fmt"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

func requireStrategy(name string, base *domain.Scenario, strategy string) (int, error) {
	if base == nil {
		return -1, NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	if strategy == "" {
		return -1, NewTransformError(name, "validate", "strategy name cannot be empty", nil)
	}
	idx := base.StrategyIndex(strategy)
	if idx < 0 {
		return -1, NewTransformError(name, "validate", fmt.Sprintf("strategy %s not found in scenario", strategy), nil)
	}
	return idx, nil
}

// SetStrategySource marks a strategy's income as foreign or domestic source.
// Only foreign-source income qualifies for the flat rate.
type SetStrategySource struct {
	Strategy string
	Foreign  bool
}

func (ss *SetStrategySource) Name() string {
	return "set_strategy_source"
}

func (ss *SetStrategySource) Description() string {
	source := "domestic"
	if ss.Foreign {
		source = "foreign"
	}
	return fmt.Sprintf("Treat %s income as %s-source", ss.Strategy, source)
}

func (ss *SetStrategySource) Validate(base *domain.Scenario) error {
	_, err := requireStrategy(ss.Name(), base, ss.Strategy)
	return err
}

func (ss *SetStrategySource) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	idx := modified.StrategyIndex(ss.Strategy)
	if idx < 0 {
		return nil, NewTransformError(ss.Name(), "apply", fmt.Sprintf("strategy %s not found in scenario", ss.Strategy), nil)
	}
	modified.Strategies[idx].ForeignSource = ss.Foreign
	return modified, nil
}

// AdjustYield shifts the gross yield of one strategy, or of all strategies
// when Strategy is empty. Resulting yields are floored at zero.
type AdjustYield struct {
	Strategy string
	Delta    decimal.Decimal // e.g. -0.01 for one percentage point lower
}

func (ay *AdjustYield) Name() string {
	return "adjust_yield"
}

func (ay *AdjustYield) Description() string {
	target := "all strategies"
	if ay.Strategy != "" {
		target = ay.Strategy
	}
	points := ay.Delta.Mul(decimal.NewFromInt(100))
	sign := ""
	if points.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Adjust yield of %s by %s%s pts", target, sign, points.StringFixed(2))
}

func (ay *AdjustYield) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(ay.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if ay.Delta.Abs().GreaterThan(one) {
		return NewTransformError(ay.Name(), "validate", fmt.Sprintf("delta must be between -1 and 1, got %s", ay.Delta.String()), nil)
	}
	if ay.Strategy == "" {
		for _, s := range base.Strategies {
			if s.GrossYield.Add(ay.Delta).GreaterThan(one) {
				return NewTransformError(ay.Name(), "validate", fmt.Sprintf("yield of %s would exceed 100%%", s.Name), nil)
			}
		}
		return nil
	}
	idx, err := requireStrategy(ay.Name(), base, ay.Strategy)
	if err != nil {
		return err
	}
	if base.Strategies[idx].GrossYield.Add(ay.Delta).GreaterThan(one) {
		return NewTransformError(ay.Name(), "validate", fmt.Sprintf("yield of %s would exceed 100%%", ay.Strategy), nil)
	}
	return nil
}

func (ay *AdjustYield) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	for i := range modified.Strategies {
		s := &modified.Strategies[i]
		if ay.Strategy != "" && s.Name != ay.Strategy {
			continue
		}
		s.GrossYield = decimal.Max(s.GrossYield.Add(ay.Delta), decimal.Zero)
	}
	return modified, nil
}

// SetAllocation sets the allocation fraction of one strategy. With Rebalance
// the other strategies are scaled so the total allocation is unchanged.
type SetAllocation struct {
	Strategy   string
	Allocation decimal.Decimal
	Rebalance  bool
}

func (sa *SetAllocation) Name() string {
	return "set_allocation"
}

func (sa *SetAllocation) Description() string {
	desc := fmt.Sprintf("Allocate %s%% to %s", sa.Allocation.Mul(decimal.NewFromInt(100)).StringFixed(1), sa.Strategy)
	if sa.Rebalance {
		desc += " and rebalance the rest"
	}
	return desc
}

func (sa *SetAllocation) Validate(base *domain.Scenario) error {
	if sa.Allocation.LessThan(decimal.Zero) || sa.Allocation.GreaterThan(one) {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("allocation must be between 0 and 1, got %s", sa.Allocation.String()), nil)
	}
	_, err := requireStrategy(sa.Name(), base, sa.Strategy)
	return err
}

func (sa *SetAllocation) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	idx := modified.StrategyIndex(sa.Strategy)
	if idx < 0 {
		return nil, NewTransformError(sa.Name(), "apply", fmt.Sprintf("strategy %s not found in scenario", sa.Strategy), nil)
	}

	if sa.Rebalance {
		total := decimal.Zero
		for _, s := range modified.Strategies {
			total = total.Add(s.Allocation)
		}
		others := total.Sub(modified.Strategies[idx].Allocation)
		remaining := decimal.Max(total.Sub(sa.Allocation), decimal.Zero)
		for i := range modified.Strategies {
			if i == idx {
				continue
			}
			if others.IsZero() {
				modified.Strategies[i].Allocation = decimal.Zero
				continue
			}
			modified.Strategies[i].Allocation = modified.Strategies[i].Allocation.Mul(remaining).Div(others)
		}
	}

	modified.Strategies[idx].Allocation = sa.Allocation
	return modified, nil
}
