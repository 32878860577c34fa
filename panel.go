package main

import (
	"fmt"
	"time"
)

// PanelRecord describes a registered photovoltaic panel. Immutable after
// registration; owned by the panel registry.
type PanelRecord struct {
	PanelID                     string    `json:"panelId"`
	ProductionDate              time.Time `json:"productionDate"`
	NominalEfficiencyPct        float64   `json:"nominalEfficiencyPct"`
	SizeM2                      float64   `json:"sizeM2"`
	Manufacturer                string    `json:"manufacturer"`
	ManufacturingFootprintKgCO2 float64   `json:"manufacturingFootprintKgco2"`
	LifetimeYears               float64   `json:"lifetimeYears"`
	CarbonReductionFactor       float64   `json:"carbonReductionFactor"`
	Owner                       string    `json:"owner"`
}

// Validate checks the field-level invariants on a panel record.
func (p *PanelRecord) Validate() error {
	if p.PanelID == "" {
		return fmt.Errorf("%w: panel id is required", ErrInvalidTransaction)
	}
	if p.NominalEfficiencyPct <= 0 || p.NominalEfficiencyPct > 100 {
		return fmt.Errorf("%w: efficiency must be in (0, 100]", ErrInvalidTransaction)
	}
	if p.SizeM2 <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidTransaction)
	}
	if p.ManufacturingFootprintKgCO2 < 0 {
		return fmt.Errorf("%w: manufacturing footprint cannot be negative", ErrInvalidTransaction)
	}
	if p.LifetimeYears < 1 {
		return fmt.Errorf("%w: lifetime must be at least 1 year", ErrInvalidTransaction)
	}
	if p.CarbonReductionFactor < 0 {
		return fmt.Errorf("%w: carbon reduction factor cannot be negative", ErrInvalidTransaction)
	}
	if p.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidTransaction)
	}
	return nil
}

// PanelRegistry holds panels keyed by panel id. Not concurrency-safe on its
// own; callers (the ledger) guard access with their own lock.
type PanelRegistry struct {
	panels map[string]*PanelRecord
}

// NewPanelRegistry returns an empty registry.
func NewPanelRegistry() *PanelRegistry {
	return &PanelRegistry{panels: make(map[string]*PanelRecord)}
}

// Register adds a panel, failing if the panel id already exists.
func (r *PanelRegistry) Register(p *PanelRecord) error {
	if _, exists := r.panels[p.PanelID]; exists {
		return fmt.Errorf("%w: %s", ErrPanelAlreadyRegistered, p.PanelID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	r.panels[p.PanelID] = p
	return nil
}

// Get looks up a panel by id.
func (r *PanelRegistry) Get(panelID string) (*PanelRecord, bool) {
	p, ok := r.panels[panelID]
	return p, ok
}

// Len returns the number of registered panels.
func (r *PanelRegistry) Len() int {
	return len(r.panels)
}

// All returns a snapshot copy of all registered panels, keyed by panel id.
func (r *PanelRegistry) All() map[string]*PanelRecord {
	out := make(map[string]*PanelRecord, len(r.panels))
	for k, v := range r.panels {
		cp := *v
		out[k] = &cp
	}
	return out
}
