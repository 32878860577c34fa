package main

import "github.com/sirupsen/logrus"

// defaultLogger returns the ledger's structured logger. Centralized here so
// every construction path (NewLedgerState, SnapshotStore.Load) gets the same
// fields and formatter.
func defaultLogger() *logrus.Entry {
	return logrus.WithField("component", "ledger")
}
