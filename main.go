package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		apiAddr    = flag.String("api", "", "override API listen address")
		dataDir    = flag.String("data", "", "override data directory")
		regionFile = flag.String("region-file", "", "optional YAML region/grid overlay")
		enableUPnP = flag.Bool("upnp", false, "attempt UPnP port forwarding")
	)
	flag.Parse()

	log := logrus.WithField("component", "main")

	cfg, err := LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if *apiAddr != "" {
		cfg.APIAddr = *apiAddr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *regionFile != "" {
		cfg.RegionFile = *regionFile
	}
	if *enableUPnP {
		cfg.EnableUPnP = true
	}

	if err := cfg.EnsureDataDir(); err != nil {
		log.WithError(err).Fatal("failed to prepare data directory")
	}

	grid, rules, err := LoadRegionOverlay(cfg.RegionFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load region overlay")
	}

	store, err := NewSnapshotStore(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open snapshot store")
	}

	ledger, err := store.Load()
	if err != nil {
		log.WithError(err).Fatal("refusing to start on a corrupt snapshot")
	}
	if ledger == nil {
		log.Info("no snapshot found, starting fresh chain")
		ledger = NewLedgerState()
	}
	ledger.GridFactors = grid
	ledger.LocationRules = rules

	node := NewNode(ledger, store)

	if cfg.EnableUPnP {
		node.AdvertisePort(cfg.P2PPort)
	}

	srv := &nodeServer{node: node, addr: cfg.APIAddr, log: log}
	go srv.run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down, persisting ledger snapshot")
	if err := node.Persist(); err != nil {
		log.WithError(err).Error("failed to persist ledger on shutdown")
	}
}

// nodeServer wraps Server.ListenAndServe with logging around a fatal exit
// on unrecoverable startup failures rather than returning an error up an
// unused call chain.
type nodeServer struct {
	node *Node
	addr string
	log  *logrus.Entry
}

func (s *nodeServer) run() {
	if err := s.node.Server.ListenAndServe(s.addr); err != nil {
		s.log.WithError(err).Fatal("api server exited")
	}
}
