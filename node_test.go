package main

import (
	"context"
	"testing"
)

func TestNodeStatusReportsPendingCounts(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	n := NewNode(l, nil)

	p := validPanel("panel-1")
	if _, err := l.RegisterPanel(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	status := n.Status()
	if status.Height != 1 {
		t.Fatalf("expected height 1 (genesis only), got %d", status.Height)
	}
	if status.PendingTransactions != 1 {
		t.Fatalf("expected 1 pending issuance transaction, got %d", status.PendingTransactions)
	}
}

func TestNodeMineAdvancesLedger(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	n := NewNode(l, nil)

	p := validPanel("panel-1")
	if _, err := l.RegisterPanel(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := n.Mine(context.Background(), "miner-1"); err != nil {
		t.Fatalf("mine failed: %v", err)
	}
	if n.Status().Height != 2 {
		t.Fatalf("expected height 2 after mining, got %d", n.Status().Height)
	}
}

func TestNodePersistWithoutStoreIsNoop(t *testing.T) {
	t.Parallel()
	n := NewNode(NewLedgerState(), nil)
	if err := n.Persist(); err != nil {
		t.Fatalf("expected nil error with no store configured, got %v", err)
	}
}
