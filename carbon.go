package main

import "sort"

// DefaultSolarIrradianceKWhPerM2Year is the default annual irradiance used
// in lifetime reduction calculations.
const DefaultSolarIrradianceKWhPerM2Year = 1500.0

// temperatureCoefficient is the module temperature derating coefficient
// applied per degree above 25C.
const temperatureCoefficient = -0.0045

// LifetimeReductionResult holds the per-panel figures computed at
// registration time.
type LifetimeReductionResult struct {
	AnnualEnergyKWh    float64
	LifetimeEnergyKWh  float64
	LifetimeReduction  float64 // kgCO2
	CarbonIntensity    float64 // kgCO2/kWh, panel-side
}

// CalculateLifetimeReduction implements the lifetime-reduction formulas,
// used at panel registration for issuance.
func CalculateLifetimeReduction(p *PanelRecord) LifetimeReductionResult {
	annualEnergy := (p.NominalEfficiencyPct / 100) * p.SizeM2 * DefaultSolarIrradianceKWhPerM2Year
	lifetimeEnergy := annualEnergy * p.LifetimeYears
	lifetimeReduction := annualEnergy * p.CarbonReductionFactor * p.LifetimeYears

	var carbonIntensity float64
	if lifetimeEnergy > 0 {
		carbonIntensity = p.ManufacturingFootprintKgCO2 / lifetimeEnergy
	}

	return LifetimeReductionResult{
		AnnualEnergyKWh:   annualEnergy,
		LifetimeEnergyKWh: lifetimeEnergy,
		LifetimeReduction: lifetimeReduction,
		CarbonIntensity:   carbonIntensity,
	}
}

// RealTimeReductionResult holds the per-sample figures computed when an
// inverter sample is credited.
type RealTimeReductionResult struct {
	TemperatureAdjustment float64
	TheoreticalKW         float64 // informational only, not credited
	GridEmissionKgCO2     float64
	PanelEmissionKgCO2    float64
	RawReductionKgCO2     float64
	EffectiveReductionKgCO2 float64
	RegionType            RegionType
}

// CalculateRealTimeReduction implements the real-time reduction and region
// compensation formulas for a single inverter sample.
func CalculateRealTimeReduction(sample *InverterSample, panel *PanelRecord, gridFactor float64, regionCode string) RealTimeReductionResult {
	lifetime := CalculateLifetimeReduction(panel)

	tempAdjust := 1 + temperatureCoefficient*(sample.ModuleTemperatureC-25)
	theoreticalKW := (panel.NominalEfficiencyPct / 100) * panel.SizeM2 * (sample.IrradianceWPerM2 / 1000) * tempAdjust

	gridEmission := sample.EnergyGeneratedKWh * gridFactor
	panelEmission := sample.EnergyGeneratedKWh * lifetime.CarbonIntensity
	rawReduction := gridEmission - panelEmission

	regionType := ResolveRegionType(regionCode)
	effective := rawReduction * RegionCompensation(regionType)

	return RealTimeReductionResult{
		TemperatureAdjustment:   tempAdjust,
		TheoreticalKW:           theoreticalKW,
		GridEmissionKgCO2:       gridEmission,
		PanelEmissionKgCO2:      panelEmission,
		RawReductionKgCO2:       rawReduction,
		EffectiveReductionKgCO2: effective,
		RegionType:              regionType,
	}
}

// CreditableSample pairs a sample with its resolved region code, for block
// total-reduction and primary-region calculations.
type CreditableSample struct {
	Sample     *InverterSample
	RegionCode string
	Effective  float64 // 0 if the sample failed a lookup and was skipped for crediting
	Credited   bool
}

// CalculateBlockCarbonReduction sums effective_reduction over all pending
// samples whose panel is registered and whose region has a known grid
// factor. Samples that fail either lookup are skipped for crediting but
// the caller still includes them in the block payload. The result is
// invariant under reordering of the input slice: the credited values are
// summed in ascending order, so the float total depends only on the
// multiset of samples.
func CalculateBlockCarbonReduction(samples []*InverterSample, registry *PanelRegistry, grid GridFactorTable, rules []locationRule) (total float64, details []CreditableSample) {
	details = make([]CreditableSample, 0, len(samples))
	credited := make([]float64, 0, len(samples))
	for _, s := range samples {
		regionCode := ResolveRegionCode(rules, s.LocationTag)
		cs := CreditableSample{Sample: s, RegionCode: regionCode}

		panel, ok := registry.Get(s.PanelID)
		if !ok {
			details = append(details, cs)
			continue
		}
		factor, ok := grid[regionCode]
		if !ok {
			details = append(details, cs)
			continue
		}

		result := CalculateRealTimeReduction(s, panel, factor, regionCode)
		cs.Effective = result.EffectiveReductionKgCO2
		cs.Credited = true
		credited = append(credited, result.EffectiveReductionKgCO2)
		details = append(details, cs)
	}
	sort.Float64s(credited)
	for _, v := range credited {
		total += v
	}
	return total, details
}

// PrimaryRegion returns the region code appearing in the most pending
// samples, ties broken by first-seen order.
func PrimaryRegion(details []CreditableSample) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, d := range details {
		if _, seen := counts[d.RegionCode]; !seen {
			order = append(order, d.RegionCode)
		}
		counts[d.RegionCode]++
	}

	best := ""
	bestCount := -1
	for _, region := range order {
		if counts[region] > bestCount {
			best = region
			bestCount = counts[region]
		}
	}
	return best
}
