package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// SnapshotStore persists ledger state to disk as JSON documents: chain,
// registry, and balances, plus pending.json so a restarted node resumes
// mid-accumulation instead of losing unmined telemetry and transfers.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dataDir.
func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrIO, err)
	}
	return &SnapshotStore{dir: dataDir}, nil
}

func (s *SnapshotStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

type pendingSnapshot struct {
	Samples            []*InverterSample `json:"samples"`
	Transactions       []*Transaction    `json:"transactions"`
	ReferenceReduction float64           `json:"referenceReduction"`
}

// Save writes the chain, registry, balances, and pending pool as four
// independent, atomically-replaceable JSON documents.
func (s *SnapshotStore) Save(l *LedgerState) error {
	l.mu.RLock()
	chain := l.Chain
	registry := l.Registry.All()
	balances := l.Balances
	pending := pendingSnapshot{
		Samples:            l.PendingSamples,
		Transactions:       l.PendingTransactions,
		ReferenceReduction: l.ReferenceReduction,
	}
	l.mu.RUnlock()

	if err := s.writeJSON("chain.json", chain); err != nil {
		return err
	}
	if err := s.writeJSON("registry.json", registry); err != nil {
		return err
	}
	if err := s.writeJSON("balances.json", balances); err != nil {
		return err
	}
	if err := s.writeJSON("pending.json", pending); err != nil {
		return err
	}
	return nil
}

// writeJSON marshals v and atomically replaces the target file via a
// write-then-rename, so a crash mid-write never leaves a truncated snapshot.
func (s *SnapshotStore) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrIO, name, err)
	}

	target := s.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrIO, name, err)
	}
	return nil
}

// Load rebuilds ledger state from the four snapshot documents without
// replaying proof-of-work (it trusts the snapshot). A missing chain.json
// (fresh data directory) returns (nil, nil): the caller starts a new
// ledger via NewLedgerState instead. Once a snapshot exists, a validation
// failure is rejected outright rather than silently falling back, since
// discarding a corrupt snapshot could erase real balances.
func (s *SnapshotStore) Load() (*LedgerState, error) {
	var chain []*Block
	if err := s.readJSON("chain.json", &chain); err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, nil
	}

	var registryEntries map[string]*PanelRecord
	if err := s.readJSON("registry.json", &registryEntries); err != nil {
		return nil, err
	}

	var balances map[string]decimal.Decimal
	if err := s.readJSON("balances.json", &balances); err != nil {
		return nil, err
	}

	var pending pendingSnapshot
	if err := s.readJSON("pending.json", &pending); err != nil {
		return nil, err
	}

	registry := NewPanelRegistry()
	for _, p := range registryEntries {
		registry.panels[p.PanelID] = p
	}

	l := &LedgerState{
		Chain:               chain,
		PendingSamples:      pending.Samples,
		PendingTransactions: pending.Transactions,
		Balances:            balances,
		Registry:            registry,
		GridFactors:         DefaultGridFactorTable(),
		LocationRules:       DefaultLocationRules(),
		ReferenceReduction:  pending.ReferenceReduction,
	}
	if l.ReferenceReduction == 0 {
		l.ReferenceReduction = InitialReferenceReduction
	}
	if l.Balances == nil {
		l.Balances = make(map[string]decimal.Decimal)
	}
	l.pendingState = PendingEmpty
	if len(l.PendingSamples) > 0 || len(l.PendingTransactions) > 0 {
		l.pendingState = PendingAccumulating
	}
	l.log = defaultLogger()

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}

	return l, nil
}

func (s *SnapshotStore) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", ErrIO, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrSnapshotCorrupt, name, err)
	}
	return nil
}
