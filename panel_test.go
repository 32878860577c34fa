package main

import (
	"errors"
	"testing"
	"time"
)

func validPanel(id string) *PanelRecord {
	return &PanelRecord{
		PanelID:                     id,
		ProductionDate:              time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
		NominalEfficiencyPct:        22.5,
		SizeM2:                      1.8,
		Manufacturer:                "Oxford PV",
		ManufacturingFootprintKgCO2: 45,
		LifetimeYears:               25,
		CarbonReductionFactor:       0.65,
		Owner:                       "alice",
	}
}

func TestPanelRecordValidate(t *testing.T) {
	t.Parallel()
	p := validPanel("panel-1")
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid panel, got %v", err)
	}

	bad := validPanel("panel-2")
	bad.NominalEfficiencyPct = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction, got %v", err)
	}
}

func TestPanelRegistryRegisterRejectsDuplicate(t *testing.T) {
	t.Parallel()
	r := NewPanelRegistry()
	p := validPanel("panel-1")
	if err := r.Register(p); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(p); !errors.Is(err, ErrPanelAlreadyRegistered) {
		t.Fatalf("expected ErrPanelAlreadyRegistered, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 registered panel, got %d", r.Len())
	}
}

func TestPanelRegistryAllReturnsCopies(t *testing.T) {
	t.Parallel()
	r := NewPanelRegistry()
	p := validPanel("panel-1")
	if err := r.Register(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	snapshot := r.All()
	snapshot["panel-1"].Owner = "mutated"

	got, ok := r.Get("panel-1")
	if !ok {
		t.Fatal("expected panel to still exist")
	}
	if got.Owner != "alice" {
		t.Fatalf("mutation of snapshot leaked into registry: owner = %q", got.Owner)
	}
}
