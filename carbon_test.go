package main

import (
	"math/rand"
	"testing"
)

func TestCalculateLifetimeReductionPositive(t *testing.T) {
	t.Parallel()
	p := validPanel("panel-1")
	result := CalculateLifetimeReduction(p)
	if result.AnnualEnergyKWh <= 0 {
		t.Fatal("expected positive annual energy")
	}
	if result.LifetimeReduction <= 0 {
		t.Fatal("expected positive lifetime reduction")
	}
	if result.CarbonIntensity < 0 {
		t.Fatal("carbon intensity should not be negative")
	}
}

func TestCalculateBlockCarbonReductionSkipsUnknownPanel(t *testing.T) {
	t.Parallel()
	registry := NewPanelRegistry()
	grid := DefaultGridFactorTable()
	rules := DefaultLocationRules()

	s := validSample()
	s.PanelID = "does-not-exist"

	total, details := CalculateBlockCarbonReduction([]*InverterSample{s}, registry, grid, rules)
	if total != 0 {
		t.Fatalf("expected zero total for unregistered panel, got %v", total)
	}
	if len(details) != 1 || details[0].Credited {
		t.Fatalf("expected one uncredited detail, got %+v", details)
	}
}

func TestCalculateBlockCarbonReductionCreditsKnownPanel(t *testing.T) {
	t.Parallel()
	registry := NewPanelRegistry()
	p := validPanel("panel-1")
	if err := registry.Register(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	s := validSample()
	s.PanelID = p.PanelID
	s.LocationTag = "上海市"

	total, details := CalculateBlockCarbonReduction([]*InverterSample{s}, registry, DefaultGridFactorTable(), DefaultLocationRules())
	if total == 0 {
		t.Fatal("expected nonzero credited reduction")
	}
	if len(details) != 1 || !details[0].Credited {
		t.Fatalf("expected credited detail, got %+v", details)
	}
}

// TestCalculateBlockCarbonReductionOrderInvariant verifies that the sum over
// a fixed multiset of samples does not depend on their order.
func TestCalculateBlockCarbonReductionOrderInvariant(t *testing.T) {
	t.Parallel()
	registry := NewPanelRegistry()
	p := validPanel("panel-1")
	registry.Register(p)

	samples := make([]*InverterSample, 0, 5)
	for i := 0; i < 5; i++ {
		s := validSample()
		s.PanelID = p.PanelID
		s.EnergyGeneratedKWh = float64(i + 1)
		samples = append(samples, s)
	}

	total1, _ := CalculateBlockCarbonReduction(samples, registry, DefaultGridFactorTable(), DefaultLocationRules())

	shuffled := make([]*InverterSample, len(samples))
	copy(shuffled, samples)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	total2, _ := CalculateBlockCarbonReduction(shuffled, registry, DefaultGridFactorTable(), DefaultLocationRules())

	if total1 != total2 {
		t.Fatalf("expected order-invariant total, got %v vs %v", total1, total2)
	}
}

func TestPrimaryRegionTieBreaksFirstSeen(t *testing.T) {
	t.Parallel()
	details := []CreditableSample{
		{RegionCode: "CN-EC"},
		{RegionCode: "CN-HB"},
		{RegionCode: "CN-EC"},
		{RegionCode: "CN-HB"},
	}
	if got := PrimaryRegion(details); got != "CN-EC" {
		t.Fatalf("expected CN-EC (first-seen tie), got %q", got)
	}
}
