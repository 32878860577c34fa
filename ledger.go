package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PendingState models the per-cycle pending pool lifecycle:
// Empty -> Accumulating -> Mining, then back to Empty once a block is
// committed (or to Accumulating if items remain or the tip moved).
// PendingSealed is defined but the ledger never enters it.
type PendingState int

const (
	PendingEmpty PendingState = iota
	PendingAccumulating
	PendingMining
	PendingSealed
)

func (s PendingState) String() string {
	switch s {
	case PendingAccumulating:
		return "accumulating"
	case PendingMining:
		return "mining"
	case PendingSealed:
		return "sealed"
	default:
		return "empty"
	}
}

// LedgerState is the single-writer authority over the chain, pending pool,
// balances, and panel registry.
type LedgerState struct {
	mu sync.RWMutex

	Chain               []*Block
	PendingSamples      []*InverterSample
	PendingTransactions []*Transaction
	Balances            map[string]decimal.Decimal
	Registry            *PanelRegistry
	GridFactors         GridFactorTable
	LocationRules       []locationRule
	ReferenceReduction  float64

	pendingState PendingState
	log          *logrus.Entry
}

// NewLedgerState creates a ledger seeded with the genesis block.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Chain:              []*Block{NewGenesisBlock()},
		Balances:           make(map[string]decimal.Decimal),
		Registry:           NewPanelRegistry(),
		GridFactors:        DefaultGridFactorTable(),
		LocationRules:      DefaultLocationRules(),
		ReferenceReduction: InitialReferenceReduction,
		pendingState:       PendingEmpty,
		log:                defaultLogger(),
	}
}

// RegisterPanel registers a panel and credits its owner with issuance,
// atomically. Issuance is credited exactly once, here at registration (see
// DESIGN.md); mine() never re-credits an issuance transaction.
func (l *LedgerState) RegisterPanel(p *PanelRecord) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.Registry.Register(p); err != nil {
		return decimal.Zero, err
	}

	lifetime := CalculateLifetimeReduction(p)
	issuance := CalculateIssuance(lifetime.LifetimeReduction, p.NominalEfficiencyPct, p.LifetimeYears)

	tx := NewSystemTransaction(p.Owner, issuance, p.PanelID)
	l.PendingTransactions = append(l.PendingTransactions, tx)
	l.Balances[p.Owner] = l.Balances[p.Owner].Add(issuance)
	l.advancePendingState()

	l.log.WithFields(logrus.Fields{
		"panel_id":  p.PanelID,
		"owner":     p.Owner,
		"issuance":  issuance.String(),
	}).Info("panel registered")

	return issuance, nil
}

// AddSample enqueues a telemetry sample into the pending pool.
// Crediting eligibility is decided at mine time.
func (l *LedgerState) AddSample(s *InverterSample) error {
	if err := s.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.PendingSamples = append(l.PendingSamples, s)
	l.advancePendingState()
	return nil
}

// AddTransaction validates and enqueues a transaction into the pending pool.
func (l *LedgerState) AddTransaction(tx *Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Sender != SystemSender {
		// Transfers from this sender still waiting in the pending pool are
		// reserved against the balance, so queued transfers cannot together
		// overdraw it when the block is committed.
		available := l.Balances[tx.Sender]
		for _, pending := range l.PendingTransactions {
			if pending.Sender == tx.Sender {
				available = available.Sub(pending.Amount)
			}
		}
		if available.LessThan(tx.Amount) {
			return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, tx.Sender, available.String(), tx.Amount.String())
		}
	}

	l.PendingTransactions = append(l.PendingTransactions, tx)
	l.advancePendingState()
	return nil
}

// advancePendingState must be called with the write lock held.
func (l *LedgerState) advancePendingState() {
	if l.pendingState == PendingEmpty {
		l.pendingState = PendingAccumulating
	}
}

// miningWorkspace is the snapshot copied out under the ledger lock so the
// CPU-bound nonce search never holds the ledger lock.
type miningWorkspace struct {
	previous            *Block
	samples             []*InverterSample
	transactions        []*Transaction
	totalReduction      float64
	difficulty          int
	referenceReduction  float64
}

// Mine runs one full mining cycle: snapshot pending state, derive difficulty,
// search for a nonce, then commit if the chain tip has not moved. ctx
// governs cancellation of the nonce search; cancelled searches never
// mutate chain state.
func (l *LedgerState) Mine(ctx context.Context, minerAddress string) (*Block, error) {
	ws, err := l.checkoutMiningWorkspace()
	if err != nil {
		return nil, err
	}

	block := &Block{
		Index:                ws.previous.Index + 1,
		PreviousHash:         ws.previous.Hash,
		Miner:                minerAddress,
		TotalCarbonReduction: ws.totalReduction,
		Difficulty:           ws.difficulty,
		Payload: BlockPayload{
			Samples:      ws.samples,
			Transactions: ws.transactions,
		},
	}
	if len(ws.samples) > 0 {
		block.Payload.Kind = PayloadSamples
	} else {
		block.Payload.Kind = PayloadTransactions
	}
	block.Timestamp = time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !MineNonce(gctx, block, ws.difficulty) {
			return fmt.Errorf("mining cancelled at block %d", block.Index)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return l.commitMinedBlock(block, minerAddress, ws)
}

// checkoutMiningWorkspace copies the pending pool and derives the mining
// parameters under the write lock, since it also moves the pending state to
// Mining.
func (l *LedgerState) checkoutMiningWorkspace() (*miningWorkspace, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.PendingSamples) == 0 && len(l.PendingTransactions) == 0 {
		return nil, ErrEmptyPending
	}

	l.pendingState = PendingMining

	samples := make([]*InverterSample, len(l.PendingSamples))
	copy(samples, l.PendingSamples)
	txs := make([]*Transaction, len(l.PendingTransactions))
	copy(txs, l.PendingTransactions)

	total, details := CalculateBlockCarbonReduction(samples, l.Registry, l.GridFactors, l.LocationRules)
	primaryRegion := PrimaryRegion(details)
	regionType := ResolveRegionType(primaryRegion)
	difficulty := CalculateDifficulty(total, l.ReferenceReduction, regionType)

	previous := l.Chain[len(l.Chain)-1]

	return &miningWorkspace{
		previous:           previous,
		samples:            samples,
		transactions:       txs,
		totalReduction:     total,
		difficulty:         difficulty,
		referenceReduction: l.ReferenceReduction,
	}, nil
}

// commitMinedBlock re-acquires the write lock, checks the tip has not moved,
// appends the block, applies transactions, clears pending, credits the
// mining reward, and periodically re-smooths the reference reduction.
func (l *LedgerState) commitMinedBlock(block *Block, minerAddress string, ws *miningWorkspace) (*Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	currentTip := l.Chain[len(l.Chain)-1]
	if block.PreviousHash != currentTip.Hash {
		l.pendingState = PendingAccumulating
		return nil, fmt.Errorf("%w: block %d", ErrStaleTip, block.Index)
	}

	for _, tx := range block.Payload.Transactions {
		// Issuance transactions were already credited at registration time
		// (RegisterPanel); replaying them here would double-credit the
		// owner. They still ride along in the block for audit history.
		if tx.AlreadyCredited {
			continue
		}
		if tx.Sender != SystemSender {
			l.Balances[tx.Sender] = l.Balances[tx.Sender].Sub(tx.Amount)
		}
		l.Balances[tx.Receiver] = l.Balances[tx.Receiver].Add(tx.Amount)
	}

	l.Chain = append(l.Chain, block)

	l.PendingSamples = l.PendingSamples[len(ws.samples):]
	l.PendingTransactions = l.PendingTransactions[len(ws.transactions):]
	if len(l.PendingSamples) == 0 && len(l.PendingTransactions) == 0 {
		l.pendingState = PendingEmpty
	} else {
		l.pendingState = PendingAccumulating
	}

	reward := MiningReward(block.Index)
	l.Balances[minerAddress] = l.Balances[minerAddress].Add(reward)

	if block.Index%ReferenceUpdateInterval == 0 {
		l.ReferenceReduction = UpdateReferenceReduction(l.ReferenceReduction, l.recentTotalsLocked(ReferenceUpdateInterval))
	}

	l.log.WithFields(logrus.Fields{
		"index":      block.Index,
		"miner":      minerAddress,
		"difficulty": block.Difficulty,
		"reward":     reward.String(),
	}).Info("block mined")

	return block, nil
}

// recentTotalsLocked returns up to n of the most recent blocks'
// total_carbon_reduction, excluding genesis. Must be called with the lock
// held.
func (l *LedgerState) recentTotalsLocked(n int) []float64 {
	start := len(l.Chain) - n
	if start < 1 {
		start = 1
	}
	totals := make([]float64, 0, len(l.Chain)-start)
	for i := start; i < len(l.Chain); i++ {
		totals = append(totals, l.Chain[i].TotalCarbonReduction)
	}
	return totals
}

// StatusSummary is what ShowChainInfo / GET /status report.
type StatusSummary struct {
	Height              int64
	PendingTransactions int
	PendingSamples      int
	ReferenceReduction  float64
}

// Status reports a snapshot summary of ledger state.
func (l *LedgerState) Status() StatusSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return StatusSummary{
		Height:              int64(len(l.Chain)),
		PendingTransactions: len(l.PendingTransactions),
		PendingSamples:      len(l.PendingSamples),
		ReferenceReduction:  l.ReferenceReduction,
	}
}

// Balance returns the current balance for an address (default zero).
func (l *LedgerState) Balance(address string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.Balances[address]
}

// Height returns the number of blocks in the chain, including genesis.
func (l *LedgerState) Height() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return int64(len(l.Chain))
}

// Validate replays the whole chain and checks every chain-validation
// invariant, returning on the first failure.
func (l *LedgerState) Validate() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return validateChain(l.Chain)
}

func validateChain(chain []*Block) error {
	for i := 1; i < len(chain); i++ {
		curr, prev := chain[i], chain[i-1]

		if curr.PreviousHash != prev.Hash {
			return &ChainInvalidError{Index: curr.Index, Cause: "previous hash mismatch"}
		}
		if curr.Hash != curr.CalculateHash() {
			return &ChainInvalidError{Index: curr.Index, Cause: "hash does not match recomputed value"}
		}
		if !MeetsDifficulty(curr.Hash, curr.Difficulty) {
			return &ChainInvalidError{Index: curr.Index, Cause: "hash does not satisfy declared difficulty"}
		}
		for _, tx := range curr.Payload.Transactions {
			if tx.Sender != SystemSender && !IsValidTransactionSignature(tx.Signature) {
				return &ChainInvalidError{Index: curr.Index, Cause: "invalid transaction signature"}
			}
		}
		for _, s := range curr.Payload.Samples {
			if !IsValidInverterSignature(s.SignatureBytes) {
				return &ChainInvalidError{Index: curr.Index, Cause: "invalid inverter signature"}
			}
		}
	}
	return nil
}
