package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// APIResponse is the standard response envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Server exposes the REST adapter over a LedgerState and ContractEngine:
// GET /balance/{addr}, POST /panels, POST /transactions,
// POST /contracts/{name}, GET /chain, GET /status, POST /mine.
type Server struct {
	Ledger    *LedgerState
	Contracts *ContractEngine
	log       *logrus.Entry
}

// NewServer wires a Server around an existing ledger.
func NewServer(l *LedgerState, contracts *ContractEngine) *Server {
	return &Server{Ledger: l, Contracts: contracts, log: logrus.WithField("component", "api")}
}

// Handler returns the configured http.ServeMux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/balance/", s.handleBalance)
	mux.HandleFunc("/panels", s.handlePanels)
	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/contracts/", s.handleContract)
	mux.HandleFunc("/chain", s.handleChain)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/mine", s.handleMine)
	return mux
}

// ListenAndServe starts the HTTP API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("api listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "only GET allowed")
		return
	}
	addr := strings.TrimPrefix(r.URL.Path, "/balance/")
	if addr == "" {
		respondError(w, http.StatusBadRequest, "missing address")
		return
	}

	balance := s.Ledger.Balance(addr)
	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "balance retrieved",
		Data: map[string]interface{}{
			"address": addr,
			"balance": balance.StringFixed(4),
		},
	})
}

type registerPanelRequest struct {
	PanelID                     string  `json:"panelId"`
	ProductionDate              string  `json:"productionDate"`
	NominalEfficiencyPct        float64 `json:"nominalEfficiencyPct"`
	SizeM2                      float64 `json:"sizeM2"`
	Manufacturer                string  `json:"manufacturer"`
	ManufacturingFootprintKgCO2 float64 `json:"manufacturingFootprintKgco2"`
	LifetimeYears               float64 `json:"lifetimeYears"`
	CarbonReductionFactor       float64 `json:"carbonReductionFactor"`
	Owner                       string  `json:"owner"`
}

func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "only POST allowed")
		return
	}

	var req registerPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productionDate, err := time.Parse("2006-01-02", req.ProductionDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "productionDate must be yyyy-MM-dd")
		return
	}

	panel := &PanelRecord{
		PanelID:                     req.PanelID,
		ProductionDate:              productionDate,
		NominalEfficiencyPct:        req.NominalEfficiencyPct,
		SizeM2:                      req.SizeM2,
		Manufacturer:                req.Manufacturer,
		ManufacturingFootprintKgCO2: req.ManufacturingFootprintKgCO2,
		LifetimeYears:               req.LifetimeYears,
		CarbonReductionFactor:       req.CarbonReductionFactor,
		Owner:                       req.Owner,
	}

	issuance, err := s.Ledger.RegisterPanel(panel)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "panel registered",
		Data: map[string]interface{}{
			"panelId":  panel.PanelID,
			"issuance": issuance.StringFixed(4),
		},
	})
}

type createTransactionRequest struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    string `json:"amount"`
	PanelID   string `json:"panelId,omitempty"`
	Signature string `json:"signature"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "only POST allowed")
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "amount must be a decimal string")
		return
	}

	tx := &Transaction{
		TxID:      NewTxID(),
		Sender:    req.Sender,
		Receiver:  req.Receiver,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		PanelID:   req.PanelID,
		Signature: req.Signature,
	}

	if err := s.Ledger.AddTransaction(tx); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "transaction accepted",
		Data:    map[string]interface{}{"txId": tx.TxID},
	})
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "only POST allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/contracts/")
	if name == "" {
		respondError(w, http.StatusBadRequest, "missing contract name")
		return
	}

	var args []interface{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		respondError(w, http.StatusBadRequest, "body must be a JSON array of arguments")
		return
	}

	result, err := s.Contracts.Execute(name, args)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "contract executed",
		Data:    map[string]interface{}{"result": result},
	})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "only GET allowed")
		return
	}

	s.Ledger.mu.RLock()
	height := len(s.Ledger.Chain)
	chain := make([]*Block, height)
	copy(chain, s.Ledger.Chain)
	s.Ledger.mu.RUnlock()

	var txCount int
	var cumulativeReduction float64
	for _, block := range chain {
		txCount += len(block.Payload.Transactions)
		cumulativeReduction += block.TotalCarbonReduction
	}

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "chain retrieved",
		Data: map[string]interface{}{
			"height":              height,
			"blocks":              chain,
			"txCount":             txCount,
			"cumulativeReduction": cumulativeReduction,
		},
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "only GET allowed")
		return
	}

	status := s.Ledger.Status()

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "status retrieved",
		Data: map[string]interface{}{
			"height":              status.Height,
			"pendingTransactions": status.PendingTransactions,
			"pendingSamples":      status.PendingSamples,
			"referenceReduction":  status.ReferenceReduction,
		},
	})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "only POST allowed")
		return
	}

	miner := r.URL.Query().Get("miner")
	if miner == "" {
		respondError(w, http.StatusBadRequest, "missing miner query parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	block, err := s.Ledger.Mine(ctx, miner)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "block mined",
		Data: map[string]interface{}{
			"index":      block.Index,
			"hash":       block.Hash,
			"difficulty": block.Difficulty,
		},
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrPanelAlreadyRegistered), errors.Is(err, ErrPanelUnknown),
		errors.Is(err, ErrInvalidTransaction), errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrEmptyPending):
		return http.StatusBadRequest
	case errors.Is(err, ErrStaleTip):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, APIResponse{Success: false, Message: message})
}
