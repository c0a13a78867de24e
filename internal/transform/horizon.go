package transform

import (
	"fmt"

	"github.com/rgehrsitz/regime7/internal/domain"
)

// SetRegimeYears changes how many leading years are taxed at the flat rate.
// With KeepHorizon the total horizon is unchanged: years leaving the regime
// move into the post-regime period and vice versa.
type SetRegimeYears struct {
	Years       int
	KeepHorizon bool
}

func (sr *SetRegimeYears) Name() string {
	return "set_regime_years"
}

func (sr *SetRegimeYears) Description() string {
	if sr.KeepHorizon {
		return fmt.Sprintf("Set the flat-tax regime to %d years, keeping the horizon", sr.Years)
	}
	return fmt.Sprintf("Set the flat-tax regime to %d years", sr.Years)
}

// postYears returns the post-regime length after the transform
func (sr *SetRegimeYears) postYears(base *domain.Scenario) int {
	if sr.KeepHorizon {
		return base.TotalYears() - sr.Years
	}
	return base.PostRegimeYears
}

func (sr *SetRegimeYears) Validate(base *domain.Scenario) error {
	if sr.Years < 0 || sr.Years > domain.MaxRegimeYears {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("years must be between 0 and %d, got %d", domain.MaxRegimeYears, sr.Years), nil)
	}
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base scenario cannot be nil", nil)
	}
	post := sr.postYears(base)
	if post < 0 {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("%d regime years exceed the %d-year horizon", sr.Years, base.TotalYears()), nil)
	}
	if sr.Years+post <= 0 {
		return NewTransformError(sr.Name(), "validate", "scenario would have no projection years", nil)
	}
	return nil
}

func (sr *SetRegimeYears) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.PostRegimeYears = sr.postYears(base)
	modified.RegimeYears = sr.Years
	return modified, nil
}

// SetPostRegimeYears changes the length of the progressive-tax tail
type SetPostRegimeYears struct {
	Years int
}

func (sp *SetPostRegimeYears) Name() string {
	return "set_post_regime_years"
}

func (sp *SetPostRegimeYears) Description() string {
	return fmt.Sprintf("Project %d years after the regime ends", sp.Years)
}

func (sp *SetPostRegimeYears) Validate(base *domain.Scenario) error {
	if sp.Years < 0 {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", sp.Years), nil)
	}
	if base == nil {
		return NewTransformError(sp.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if base.RegimeYears+sp.Years <= 0 {
		return NewTransformError(sp.Name(), "validate", "scenario would have no projection years", nil)
	}
	return nil
}

func (sp *SetPostRegimeYears) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.PostRegimeYears = sp.Years
	return modified, nil
}
