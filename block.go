package main

import (
	"strings"
	"time"
)

// PayloadKind tags which side of Block.Payload drove this block's mining.
// A mine cycle credits carbon reduction from pending samples and applies
// pending transactions to balances in the same atomic operation, so both
// slices can be populated; Kind records which one determined the block's
// difficulty derivation for external inspection.
type PayloadKind int

const (
	PayloadSamples PayloadKind = iota
	PayloadTransactions
)

func (k PayloadKind) String() string {
	if k == PayloadTransactions {
		return "transactions"
	}
	return "samples"
}

// BlockPayload carries the samples and/or transactions mined into this
// block.
type BlockPayload struct {
	Kind         PayloadKind       `json:"kind"`
	Samples      []*InverterSample `json:"samples,omitempty"`
	Transactions []*Transaction    `json:"transactions,omitempty"`
}

// Block is a single entry in the chain.
type Block struct {
	Index                int64        `json:"index"`
	Timestamp            time.Time    `json:"timestamp"`
	PreviousHash         string       `json:"previousHash"`
	Hash                 string       `json:"hash"`
	Nonce                int64        `json:"nonce"`
	Miner                string       `json:"miner"`
	TotalCarbonReduction float64      `json:"totalCarbonReduction"`
	Difficulty           int          `json:"difficulty"`
	Payload              BlockPayload `json:"payload"`
}

// payloadDigest concatenates per-item identifiers for hashing: txid for
// transactions, inverter_id||energy_generated for samples.
func (b *Block) payloadDigest() string {
	var sb strings.Builder
	for _, tx := range b.Payload.Transactions {
		sb.WriteString(tx.TxID)
	}
	for _, s := range b.Payload.Samples {
		sb.WriteString(s.InverterID)
		sb.WriteString(formatReduction(s.EnergyGeneratedKWh))
	}
	return sb.String()
}

// CalculateHash recomputes the block hash.
func (b *Block) CalculateHash() string {
	ts := b.Timestamp.UTC().Format(time.RFC3339)
	h := HashBlock(b.Index, ts, b.PreviousHash, b.Nonce, b.TotalCarbonReduction, b.payloadDigest())
	return strings.ToUpper(h)
}

// MeetsDifficulty reports whether hash has at least difficulty leading
// zero hex characters.
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if len(hash) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}

// GenesisTimestamp is the fixed genesis timestamp.
var GenesisTimestamp = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// GenesisDifficulty is the fixed genesis difficulty.
const GenesisDifficulty = 4

// NewGenesisBlock returns the genesis block, computing its hash rather than
// hardcoding it, since the payload digest and hash function are our own.
func NewGenesisBlock() *Block {
	b := &Block{
		Index:                0,
		Timestamp:            GenesisTimestamp,
		PreviousHash:         "0",
		Miner:                SystemSender,
		TotalCarbonReduction: 0,
		Difficulty:           GenesisDifficulty,
		Payload:              BlockPayload{Kind: PayloadSamples},
	}
	b.Hash = b.CalculateHash()
	return b
}
