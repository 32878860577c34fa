package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Node wires the ledger to the REST API and the (stubbed) P2P boundary. No
// gossip, peer discovery, or fork-choice is implemented here: this type
// exposes only the broadcast hooks a real network layer would plug into.
type Node struct {
	Ledger    *LedgerState
	Contracts *ContractEngine
	Server    *Server
	Store     *SnapshotStore

	mineGroup singleflight.Group
	log       *logrus.Entry
}

// NewNode creates a node around a fresh or restored ledger.
func NewNode(l *LedgerState, store *SnapshotStore) *Node {
	contracts := NewContractEngine()
	return &Node{
		Ledger:    l,
		Contracts: contracts,
		Server:    NewServer(l, contracts),
		Store:     store,
		log:       logrus.WithField("component", "node"),
	}
}

// Mine runs one mining cycle through singleflight, so concurrent Node.Mine
// calls for the same miner address share a single in-flight search. The
// REST handler for POST /mine calls LedgerState.Mine directly and does not
// go through this method.
func (n *Node) Mine(ctx context.Context, minerAddress string) (*Block, error) {
	v, err, _ := n.mineGroup.Do(minerAddress, func() (interface{}, error) {
		return n.Ledger.Mine(ctx, minerAddress)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Block), nil
}

// BroadcastBlock is a no-op hook where a real P2P layer would gossip a newly
// mined block.
func (n *Node) BroadcastBlock(b *Block) {
	n.log.WithField("index", b.Index).Debug("broadcast skipped: no p2p layer configured")
}

// BroadcastTransaction is the transaction-side counterpart of BroadcastBlock.
func (n *Node) BroadcastTransaction(tx *Transaction) {
	n.log.WithField("txId", tx.TxID).Debug("broadcast skipped: no p2p layer configured")
}

// Persist snapshots the ledger to disk, if a store is configured.
func (n *Node) Persist() error {
	if n.Store == nil {
		return nil
	}
	return n.Store.Save(n.Ledger)
}

// AdvertisePort attempts UPnP port forwarding for the node's P2P port.
// Failure is non-fatal: manual port forwarding remains an option.
func (n *Node) AdvertisePort(port string) {
	externalIP, err := SetupUPnP(port)
	if err != nil {
		n.log.WithError(err).Warn("upnp port forwarding unavailable")
		return
	}
	n.log.WithFields(logrus.Fields{"external_ip": externalIP, "port": port}).Info("upnp port forwarding configured")
}

// Status reports a snapshot summary of node/ledger state.
func (n *Node) Status() StatusSummary {
	return n.Ledger.Status()
}
