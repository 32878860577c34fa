package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTxIDIsUniqueHexSHA256(t *testing.T) {
	t.Parallel()
	a := NewTxID()
	b := NewTxID()
	if a == b {
		t.Fatal("expected distinct txids across calls")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars (sha256), got %d", len(a))
	}
}

func TestNewSystemTransactionIsExemptFromSignature(t *testing.T) {
	t.Parallel()
	tx := NewSystemTransaction("alice", decimal.NewFromInt(10), "panel-1")
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected system transaction to validate without signature, got %v", err)
	}
	if !tx.AlreadyCredited {
		t.Fatal("expected system transaction to be marked AlreadyCredited")
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Parallel()
	tx := &Transaction{
		Sender:    "alice",
		Receiver:  "bob",
		Amount:    decimal.NewFromInt(5),
		Signature: strings.Repeat("a", TransactionSignatureHexLen),
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected valid transaction, got %v", err)
	}

	zeroAmount := *tx
	zeroAmount.Amount = decimal.Zero
	if err := zeroAmount.Validate(); !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction for zero amount, got %v", err)
	}

	badSig := *tx
	badSig.Signature = "short"
	if err := badSig.Validate(); !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction for bad signature, got %v", err)
	}
}
