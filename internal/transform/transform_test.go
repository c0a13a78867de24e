package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Helper function to create a basic test scenario
func createTestScenario() *domain.Scenario {
	return &domain.Scenario{
		Name:            "Test Scenario",
		RegimeYears:     10,
		PostRegimeYears: 10,
		Strategies: []domain.Strategy{
			{Name: "Cash", Allocation: dec("0.4"), GrossYield: dec("0.035"), Fee: dec("0.001"), ForeignSource: true},
			{Name: "Bonds", Allocation: dec("0.3"), GrossYield: dec("0.038"), Fee: dec("0.002"), ForeignSource: true},
			{Name: "Equity", Allocation: dec("0.2"), GrossYield: dec("0.02"), Fee: dec("0.004"), Growth: dec("0.05"), ForeignSource: true},
			{Name: "Rental", Allocation: dec("0.1"), GrossYield: dec("0.04"), Fee: dec("0.005"), Growth: dec("0.02"), ForeignSource: false},
		},
	}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	transforms := []ScenarioTransform{
		&SetRegimeYears{Years: 5},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil scenario, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got the base scenario itself")
	}
	if result.Name != base.Name || len(result.Strategies) != len(base.Strategies) {
		t.Error("Expected copy to match base")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{nil})
	if err == nil {
		t.Error("Expected error for nil transform")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestScenario()
	transforms := []ScenarioTransform{
		&SetRegimeYears{Years: 3},
		&SetPostRegimeYears{Years: 25},
		&SetStrategySource{Strategy: "Rental", Foreign: true},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.RegimeYears != 3 || result.PostRegimeYears != 25 {
		t.Errorf("Expected 3 + 25 years, got %d + %d", result.RegimeYears, result.PostRegimeYears)
	}
	if !result.Strategies[3].ForeignSource {
		t.Error("Expected rental to be foreign-source")
	}

	// Base scenario is untouched
	if base.RegimeYears != 10 || base.PostRegimeYears != 10 || base.Strategies[3].ForeignSource {
		t.Error("Base scenario was modified")
	}
}

func TestApplyTransforms_ValidationErrorIsTyped(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{
		&SetStrategySource{Strategy: "Gold", Foreign: true},
	})
	if err == nil {
		t.Fatal("Expected error for unknown strategy")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if te.TransformName != "set_strategy_source" || te.Operation != "validate" {
		t.Errorf("Unexpected error fields: %+v", te)
	}
}

func TestSetRegimeYears_Validate(t *testing.T) {
	base := createTestScenario()
	tests := []struct {
		years   int
		wantErr bool
	}{
		{0, false},
		{5, false},
		{10, false},
		{-1, true},
		{11, true},
	}

	for _, tt := range tests {
		err := (&SetRegimeYears{Years: tt.years}).Validate(base)
		if (err != nil) != tt.wantErr {
			t.Errorf("years=%d: wantErr=%v, got %v", tt.years, tt.wantErr, err)
		}
	}

	noPost := createTestScenario()
	noPost.PostRegimeYears = 0
	if err := (&SetRegimeYears{Years: 0}).Validate(noPost); err == nil {
		t.Error("Expected error when horizon would be empty")
	}
}

func TestSetRegimeYears_KeepHorizon(t *testing.T) {
	base := createTestScenario()
	tests := []struct {
		years    int
		wantPost int
	}{
		{5, 15},
		{0, 20},
		{10, 10},
	}

	for _, tt := range tests {
		result, err := ApplyTransforms(base, []ScenarioTransform{&SetRegimeYears{Years: tt.years, KeepHorizon: true}})
		if err != nil {
			t.Fatalf("years=%d: unexpected error: %v", tt.years, err)
		}
		if result.RegimeYears != tt.years || result.PostRegimeYears != tt.wantPost {
			t.Errorf("years=%d: expected %d + %d, got %d + %d", tt.years, tt.years, tt.wantPost, result.RegimeYears, result.PostRegimeYears)
		}
	}

	short := createTestScenario()
	short.RegimeYears = 2
	short.PostRegimeYears = 3
	if err := (&SetRegimeYears{Years: 8, KeepHorizon: true}).Validate(short); err == nil {
		t.Error("Expected error when the regime would exceed the horizon")
	}

	// Without the option the post-regime tail is unchanged
	result, err := (&SetRegimeYears{Years: 5}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PostRegimeYears != 10 {
		t.Errorf("Expected 10 post-regime years, got %d", result.PostRegimeYears)
	}
}

func TestSetPostRegimeYears(t *testing.T) {
	base := createTestScenario()

	if err := (&SetPostRegimeYears{Years: -2}).Validate(base); err == nil {
		t.Error("Expected error for negative years")
	}

	result, err := (&SetPostRegimeYears{Years: 0}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.TotalYears() != 10 {
		t.Errorf("Expected 10 total years, got %d", result.TotalYears())
	}
}

func TestAdjustYield_AllStrategies(t *testing.T) {
	base := createTestScenario()
	tr := &AdjustYield{Delta: dec("-0.03")}

	if err := tr.Validate(base); err != nil {
		t.Fatalf("Unexpected validation error: %v", err)
	}
	result, err := tr.Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"0.005", "0.008", "0", "0.01"}
	for i, want := range expected {
		if !result.Strategies[i].GrossYield.Equal(dec(want)) {
			t.Errorf("%s: expected yield %s, got %s", result.Strategies[i].Name, want, result.Strategies[i].GrossYield)
		}
	}
}

func TestAdjustYield_SingleStrategy(t *testing.T) {
	base := createTestScenario()
	tr := &AdjustYield{Strategy: "Bonds", Delta: dec("0.005")}

	result, err := ApplyTransforms(base, []ScenarioTransform{tr})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Strategies[1].GrossYield.Equal(dec("0.043")) {
		t.Errorf("Expected 0.043, got %s", result.Strategies[1].GrossYield)
	}
	if !result.Strategies[0].GrossYield.Equal(dec("0.035")) {
		t.Error("Other strategies should be unchanged")
	}
	if tr.Description() != "Adjust yield of Bonds by +0.50 pts" {
		t.Errorf("Unexpected description: %s", tr.Description())
	}

	if err := (&AdjustYield{Strategy: "Bonds", Delta: dec("0.99")}).Validate(base); err == nil {
		t.Error("Expected error when yield would exceed 100%")
	}
	if err := (&AdjustYield{Delta: dec("2")}).Validate(base); err == nil {
		t.Error("Expected error for delta outside -1..1")
	}
}

func TestSetAllocation(t *testing.T) {
	base := createTestScenario()

	result, err := (&SetAllocation{Strategy: "Cash", Allocation: dec("0.5")}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Strategies[0].Allocation.Equal(dec("0.5")) {
		t.Errorf("Expected 0.5, got %s", result.Strategies[0].Allocation)
	}
	if !result.Strategies[1].Allocation.Equal(dec("0.3")) {
		t.Error("Without rebalance other allocations are unchanged")
	}
}

func TestSetAllocation_Rebalance(t *testing.T) {
	base := createTestScenario()

	result, err := (&SetAllocation{Strategy: "Equity", Allocation: dec("0.4"), Rebalance: true}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"0.3", "0.225", "0.4", "0.075"}
	sum := decimal.Zero
	for i, want := range expected {
		got := result.Strategies[i].Allocation
		sum = sum.Add(got)
		if !got.Equal(dec(want)) {
			t.Errorf("%s: expected %s, got %s", result.Strategies[i].Name, want, got)
		}
	}
	if !sum.Equal(dec("1")) {
		t.Errorf("Expected allocations to sum to 1, got %s", sum)
	}
}

func TestSetAllocation_Validate(t *testing.T) {
	base := createTestScenario()

	if err := (&SetAllocation{Strategy: "Cash", Allocation: dec("1.1")}).Validate(base); err == nil {
		t.Error("Expected error for allocation above 1")
	}
	if err := (&SetAllocation{Strategy: "", Allocation: dec("0.1")}).Validate(base); err == nil {
		t.Error("Expected error for empty strategy")
	}
	if err := (&SetAllocation{Strategy: "Gold", Allocation: dec("0.1")}).Validate(base); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
		wantErr  bool
	}{
		{"set_regime_years:years=5", "set_regime_years", false},
		{"set_regime_years:years=5,keep_horizon=true", "set_regime_years", false},
		{"set_post_regime_years:years=20", "set_post_regime_years", false},
		{"set_strategy_source:strategy=Rental,foreign=true", "set_strategy_source", false},
		{"adjust_yield:delta=-0.01", "adjust_yield", false},
		{"set_allocation:strategy=Cash,allocation=0.5,rebalance=yes", "set_allocation", false},
		{"set_regime_years", "", true},
		{"set_regime_years:years=abc", "", true},
		{"set_regime_years:years", "", true},
		{"adjust_yield:strategy=Cash", "", true},
		{"unknown:x=1", "", true},
	}

	for _, tt := range tests {
		tr, err := registry.ParseTransformSpec(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.spec, err)
			continue
		}
		if tr.Name() != tt.wantName {
			t.Errorf("%s: expected %s, got %s", tt.spec, tt.wantName, tr.Name())
		}
	}

	tr, _ := registry.ParseTransformSpec("set_allocation:strategy=Cash,allocation=0.5,rebalance=yes")
	if sa, ok := tr.(*SetAllocation); !ok || !sa.Rebalance || !sa.Allocation.Equal(dec("0.5")) {
		t.Errorf("Unexpected parsed transform: %+v", tr)
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	expected := []string{"adjust_yield", "set_allocation", "set_post_regime_years", "set_regime_years", "set_strategy_source"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d transforms, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, names[i])
		}
	}
}
