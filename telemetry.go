package main

import (
	"fmt"
	"time"
)

// InverterSample is a single telemetry reading submitted by an inverter.
// Owned by the pending pool until it is mined into a block.
type InverterSample struct {
	InverterID         string    `json:"inverterId"`
	PanelID            string    `json:"panelId"`
	Timestamp          time.Time `json:"timestamp"`
	PowerOutputKW      float64   `json:"powerOutputKw"`
	IrradianceWPerM2   float64   `json:"irradianceWPerM2"`
	ModuleTemperatureC float64   `json:"moduleTemperatureC"`
	EnergyGeneratedKWh float64   `json:"energyGeneratedKwh"`
	LocationTag        string    `json:"locationTag"`
	SignatureBytes     string    `json:"signatureBytes"`
}

// Validate checks the field-level invariants, excluding
// the panel-registry lookup which the ledger performs at credit time.
func (s *InverterSample) Validate() error {
	if s.InverterID == "" {
		return fmt.Errorf("%w: inverter id is required", ErrInvalidTransaction)
	}
	if s.PanelID == "" {
		return fmt.Errorf("%w: panel id is required", ErrInvalidTransaction)
	}
	if s.EnergyGeneratedKWh < 0 {
		return fmt.Errorf("%w: energy generated cannot be negative", ErrInvalidTransaction)
	}
	if !IsValidInverterSignature(s.SignatureBytes) {
		return fmt.Errorf("%w: invalid inverter signature", ErrInvalidTransaction)
	}
	return nil
}
