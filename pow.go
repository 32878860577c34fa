package main

import (
	"context"
	"math"
)

// Dynamic PoW parameters.
const (
	powBase        = 4.0
	powSensitivity = 0.8
	powMinDifficulty = 2
	powMaxDifficulty = 8
)

// InitialReferenceReduction is the ledger's starting R0.
const InitialReferenceReduction = 1000.0

// ReferenceUpdateInterval is the block-index multiple at which R0 is
// re-smoothed.
const ReferenceUpdateInterval = 10

// CalculateDifficulty implements the dynamic difficulty formula:
//
//	reduction_factor = ln(R/R0 + 1)
//	region_factor    = compensation(region_type)
//	adjustment       = BASE * (1 - SENSITIVITY * reduction_factor * region_factor)
//	difficulty       = clamp(round(adjustment), MIN_D, MAX_D)
func CalculateDifficulty(totalReduction, referenceReduction float64, regionType RegionType) int {
	reductionFactor := math.Log(totalReduction/referenceReduction + 1)
	regionFactor := RegionCompensation(regionType)
	adjustment := powBase * (1 - powSensitivity*reductionFactor*regionFactor)

	d := int(math.Round(adjustment))
	if d < powMinDifficulty {
		d = powMinDifficulty
	}
	if d > powMaxDifficulty {
		d = powMaxDifficulty
	}
	return d
}

// UpdateReferenceReduction applies the low-pass filter:
// R0 <- 0.7*R0 + 0.3*mean(last up to 10 blocks' total_reduction).
func UpdateReferenceReduction(current float64, recentTotals []float64) float64 {
	if len(recentTotals) == 0 {
		return current
	}
	var sum float64
	for _, v := range recentTotals {
		sum += v
	}
	mean := sum / float64(len(recentTotals))
	return 0.7*current + 0.3*mean
}

// cancelPollInterval is how often the nonce loop polls for cancellation so
// a caller-cancelled mine attempt returns promptly.
const cancelPollInterval = 1 << 16

// MineNonce searches for the first nonce (starting at 1) whose resulting
// block hash has at least `difficulty` leading zero hex characters. The
// block's Hash and Nonce fields are mutated in place on success. Returns
// false if ctx is cancelled before a solution is found; cancelled
// searches never mutate chain state, since the caller discards the block.
func MineNonce(ctx context.Context, b *Block, difficulty int) bool {
	for nonce := int64(1); ; nonce++ {
		if nonce%cancelPollInterval == 0 {
			select {
			case <-ctx.Done():
				return false
			default:
			}
		}

		b.Nonce = nonce
		hash := b.CalculateHash()
		if MeetsDifficulty(hash, difficulty) {
			b.Hash = hash
			return true
		}
	}
}
