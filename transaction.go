package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SystemSender is the sentinel sender denoting issuance/reward, not a real
// account.
const SystemSender = "system"

// Transaction is a transfer of CARB between accounts, or an issuance/reward
// credit when Sender == SystemSender. Owned by the pending pool, then by its
// block.
type Transaction struct {
	TxID      string          `json:"txId"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	PanelID   string          `json:"panelId,omitempty"`
	Signature string          `json:"signature"`

	// AlreadyCredited marks a transaction whose balance effect was applied
	// outside the normal mine-time settlement path (issuance at
	// registration). commitMinedBlock records such transactions in the
	// mined block for history/audit but must not apply their balance
	// effect a second time.
	AlreadyCredited bool `json:"alreadyCredited,omitempty"`
}

// NewTxID generates a txid as SHA-256 of a fresh UUID, hex-encoded.
func NewTxID() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}

// NewSystemTransaction builds an unsigned issuance/reward transaction.
// SYSTEM transactions are exempt from the signature predicate (section 4.5).
func NewSystemTransaction(receiver string, amount decimal.Decimal, panelID string) *Transaction {
	return &Transaction{
		TxID:            NewTxID(),
		Sender:          SystemSender,
		Receiver:        receiver,
		Amount:          amount,
		Timestamp:       time.Now().UTC(),
		PanelID:         panelID,
		AlreadyCredited: true,
	}
}

// Validate checks the field-level invariants,
// excluding the balance check which requires ledger state.
func (t *Transaction) Validate() error {
	if t.Sender == "" || t.Receiver == "" {
		return fmt.Errorf("%w: sender and receiver are required", ErrInvalidTransaction)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if t.Sender != SystemSender && !IsValidTransactionSignature(t.Signature) {
		return fmt.Errorf("%w: invalid signature", ErrInvalidTransaction)
	}
	return nil
}
