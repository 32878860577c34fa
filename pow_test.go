package main

import (
	"context"
	"testing"
	"time"
)

func TestCalculateDifficultyClampedToBounds(t *testing.T) {
	t.Parallel()
	// A very large reduction should drive difficulty to the floor.
	low := CalculateDifficulty(1_000_000, InitialReferenceReduction, RegionTypeIII)
	if low < powMinDifficulty {
		t.Fatalf("difficulty %d below floor %d", low, powMinDifficulty)
	}

	// Zero reduction should sit at or below the base difficulty.
	high := CalculateDifficulty(0, InitialReferenceReduction, RegionTypeI)
	if high > powMaxDifficulty {
		t.Fatalf("difficulty %d above ceiling %d", high, powMaxDifficulty)
	}
}

func TestCalculateDifficultyInverseWithReduction(t *testing.T) {
	t.Parallel()
	small := CalculateDifficulty(10, InitialReferenceReduction, RegionTypeII)
	large := CalculateDifficulty(10000, InitialReferenceReduction, RegionTypeII)
	if large > small {
		t.Fatalf("expected difficulty to decrease as reduction grows: small=%d large=%d", small, large)
	}
}

func TestUpdateReferenceReductionSmooths(t *testing.T) {
	t.Parallel()
	next := UpdateReferenceReduction(1000, []float64{2000, 2000, 2000})
	if next <= 1000 || next >= 2000 {
		t.Fatalf("expected smoothed value between old and new mean, got %v", next)
	}
}

func TestMineNonceFindsSolutionAtLowDifficulty(t *testing.T) {
	t.Parallel()
	b := &Block{Index: 1, PreviousHash: "0", Timestamp: time.Now().UTC()}
	ok := MineNonce(context.Background(), b, 1)
	if !ok {
		t.Fatal("expected to find a nonce at difficulty 1")
	}
	if !MeetsDifficulty(b.Hash, 1) {
		t.Fatalf("resulting hash %s does not meet difficulty 1", b.Hash)
	}
}

func TestMineNonceRespectsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Block{Index: 1, PreviousHash: "0", Timestamp: time.Now().UTC()}
	// Difficulty high enough that cancellation is observed before a match
	// is found within the first poll interval in practice; the loop itself
	// checks ctx before doing any additional work past the first interval.
	ok := MineNonce(ctx, b, powMaxDifficulty)
	if ok {
		t.Skip("solution found before first cancellation poll; nondeterministic on fast hardware")
	}
}
