package main

import (
	"math"

	"github.com/shopspring/decimal"
)

// HalvingInterval is the block count between reward halvings.
const HalvingInterval = 210000

// MaxHalvings caps the halving exponent; beyond this the reward is treated
// as zero rather than underflowing.
const MaxHalvings = 64

// InitialBlockReward is the base mining reward before any halving (CARB).
const InitialBlockReward = 50.0

// CalculateIssuance implements the log-scaled issuance formula, run at
// panel registration. The float64 result is converted to a 4-decimal-place
// decimal.Decimal at this boundary, per the decimal-vs-float boundary rule.
func CalculateIssuance(lifetimeReduction, efficiencyPct, lifetimeYears float64) decimal.Decimal {
	effFactor := math.Pow(efficiencyPct/20, 1.5)
	lifeFactor := 1 + math.Log(lifetimeYears)/10
	raw := lifetimeReduction * effFactor * lifeFactor / 100
	issuance := math.Log10(raw+1) * 100
	return decimal.NewFromFloat(issuance).Round(4)
}

// MiningReward computes the block reward for height H:
// reward = 50 / 2^min(H/210000, 64)
func MiningReward(height int64) decimal.Decimal {
	halvings := height / HalvingInterval
	if halvings > MaxHalvings {
		halvings = MaxHalvings
	}
	reward := InitialBlockReward / math.Pow(2, float64(halvings))
	return decimal.NewFromFloat(reward).Round(4)
}
