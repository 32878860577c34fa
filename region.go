package main

import "strings"

// RegionType is the irradiance tier used for PoW compensation.
type RegionType int

const (
	RegionTypeI RegionType = iota
	RegionTypeII
	RegionTypeIII
)

// Region compensation multipliers.
const (
	RegionCompensationI   = 0.9
	RegionCompensationII  = 1.0
	RegionCompensationIII = 1.2
)

// typeIRegions and typeIIRegions classify province-level region codes.
// Any region code not in either set is TypeIII.
var typeIRegions = map[string]bool{
	"CN-XZ": true,
	"CN-QH": true,
}

var typeIIRegions = map[string]bool{
	"CN-XJ": true,
	"CN-GS": true,
	"CN-NM": true,
}

// ResolveRegionType classifies a region code into its solar region type.
func ResolveRegionType(regionCode string) RegionType {
	if typeIRegions[regionCode] {
		return RegionTypeI
	}
	if typeIIRegions[regionCode] {
		return RegionTypeII
	}
	return RegionTypeIII
}

// RegionCompensation returns the difficulty compensation multiplier for a region type.
func RegionCompensation(t RegionType) float64 {
	switch t {
	case RegionTypeI:
		return RegionCompensationI
	case RegionTypeII:
		return RegionCompensationII
	default:
		return RegionCompensationIII
	}
}

// DefaultRegionCode is used when location resolution has no match.
const DefaultRegionCode = "CN-EC"

// GridFactorTable maps region code to grid emission factor (kgCO2/kWh).
// Values may be overridden by the YAML config overlay (see config.go).
type GridFactorTable map[string]float64

// DefaultGridFactorTable returns the hardcoded region -> grid factor table.
func DefaultGridFactorTable() GridFactorTable {
	return GridFactorTable{
		"CN-HB": 0.920, // 华北
		"CN-NE": 0.776, // 东北
		"CN-EC": 0.681, // 华东
		"CN-SC": 0.587, // 华南
		"CN-NW": 0.724, // 西北
		"CN-SW": 0.628, // 西南
	}
}

// locationRule is one entry of the substring -> region-code resolution table.
type locationRule struct {
	substrings []string
	region     string
}

// DefaultLocationRules is the fixed, first-match-wins substring table.
// CN-XZ and CN-QH are not in GridFactorTable by default, which is
// intentional: samples resolving to them are TypeI region but have no
// known grid factor, so they are skipped for crediting (though still
// included in the block payload).
func DefaultLocationRules() []locationRule {
	return []locationRule{
		{[]string{"北京", "天津", "河北", "山西", "山东", "内蒙古"}, "CN-HB"},
		{[]string{"上海", "江苏", "浙江", "安徽"}, "CN-EC"},
		{[]string{"广东", "广西", "福建", "海南"}, "CN-SC"},
		{[]string{"西藏", "青海"}, "CN-XZ"},
	}
}

// ResolveRegionCode resolves a free-form location tag to a region code using
// first-match-wins substring rules, defaulting to CN-EC.
func ResolveRegionCode(rules []locationRule, locationTag string) string {
	for _, rule := range rules {
		for _, sub := range rule.substrings {
			if strings.Contains(locationTag, sub) {
				return rule.region
			}
		}
	}
	return DefaultRegionCode
}
