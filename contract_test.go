package main

import "testing"

func TestCarbonOffsetContractSufficientTokens(t *testing.T) {
	t.Parallel()
	e := NewContractEngine()
	result, err := e.Execute("CarbonOffset", []interface{}{"alice", 10.0, 500.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "offset successful" {
		t.Fatalf("expected success, got %v", result)
	}
}

func TestCarbonOffsetContractInsufficientTokens(t *testing.T) {
	t.Parallel()
	e := NewContractEngine()
	result, err := e.Execute("CarbonOffset", []interface{}{"alice", 1.0, 500.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "insufficient tokens" {
		t.Fatalf("expected insufficient tokens, got %v", result)
	}
}

func TestCreateMarketListingContract(t *testing.T) {
	t.Parallel()
	e := NewContractEngine()
	result, err := e.Execute("CreateMarketListing", []interface{}{"bob", "20", "1000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == "" {
		t.Fatal("expected a non-empty listing description")
	}
}

func TestExecuteUnknownContract(t *testing.T) {
	t.Parallel()
	e := NewContractEngine()
	if _, err := e.Execute("DoesNotExist", nil); err == nil {
		t.Fatal("expected error for unknown contract")
	}
}
