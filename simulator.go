package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// baseIrradiance approximates midday clear-sky W/m2 by region type, used as
// the simulator's noise-free starting point.
var baseIrradiance = map[RegionType]float64{
	RegionTypeI:   950,
	RegionTypeII:  800,
	RegionTypeIII: 600,
}

// Simulator generates plausible InverterSample telemetry for a registered
// panel, standing in for real inverter hardware during development and
// demos. It is boundary tooling only: nothing in
// the core imports it.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator seeds a simulator from the given source, so callers control
// determinism explicitly: boundary tooling like this is exempt from the
// core's ban on hidden nondeterminism, but tests still want repeatable output.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces one telemetry reading for panel, tagged with
// locationTag, signed by kp so the sample passes the core's opaque
// signature-length predicate.
func (sim *Simulator) Generate(panel *PanelRecord, locationTag string, kp *KeyPair) *InverterSample {
	region := ResolveRegionCode(DefaultLocationRules(), locationTag)
	regionType := ResolveRegionType(region)

	irradiance := baseIrradiance[regionType] * (0.85 + 0.3*sim.rng.Float64())
	moduleTemp := 25 + irradiance/40 + sim.rng.NormFloat64()*2

	efficiency := panel.NominalEfficiencyPct / 100
	// Efficiency degrades roughly linearly with module temperature above
	// 25C, at ~0.4%/C, a standard crystalline/perovskite PV rule of thumb.
	tempDerate := 1 - math.Max(0, moduleTemp-25)*0.004
	powerKW := (irradiance / 1000) * panel.SizeM2 * efficiency * tempDerate

	energyKWh := powerKW * (5.0 / 60.0) // assume a 5-minute sampling interval

	s := &InverterSample{
		InverterID:         fmt.Sprintf("inv-%s", panel.PanelID),
		PanelID:            panel.PanelID,
		Timestamp:          time.Now().UTC(),
		PowerOutputKW:      powerKW,
		IrradianceWPerM2:   irradiance,
		ModuleTemperatureC: moduleTemp,
		EnergyGeneratedKWh: energyKWh,
		LocationTag:        locationTag,
	}

	if kp != nil {
		sig := kp.Sign([]byte(s.InverterID+s.PanelID+s.Timestamp.String()), InverterSignatureHexLen)
		s.SignatureBytes = sig
	}

	return s
}
