package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleBalanceReturnsZeroForUnknownAddress(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	srv := NewServer(l, NewContractEngine())

	req := httptest.NewRequest(http.MethodGet, "/balance/nobody", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	data := resp.Data.(map[string]interface{})
	if data["balance"] != "0.0000" {
		t.Fatalf("expected zero balance 0.0000, got %v", data["balance"])
	}
}

func TestHandlePanelsRejectsMalformedDate(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	srv := NewServer(l, NewContractEngine())

	body := `{"panelId":"p1","productionDate":"not-a-date","owner":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/panels", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMineReturnsBadRequestOnEmptyPending(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	srv := NewServer(l, NewContractEngine())

	req := httptest.NewRequest(http.MethodPost, "/mine?miner=alice", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty pending pool, got %d", rec.Code)
	}
}

func TestHandleChainReportsHeight(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	p := validPanel("panel-1")
	if _, err := l.RegisterPanel(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	s := validSample()
	s.PanelID = p.PanelID
	if err := l.AddSample(s); err != nil {
		t.Fatalf("add sample failed: %v", err)
	}
	if _, err := l.Mine(context.Background(), "miner-1"); err != nil {
		t.Fatalf("mine failed: %v", err)
	}

	srv := NewServer(l, NewContractEngine())
	req := httptest.NewRequest(http.MethodGet, "/chain", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	data := resp.Data.(map[string]interface{})
	if data["height"].(float64) != 2 {
		t.Fatalf("expected height 2 (genesis + 1 mined), got %v", data["height"])
	}
	if data["txCount"].(float64) != 1 {
		t.Fatalf("expected 1 transaction (the issuance from registration), got %v", data["txCount"])
	}
	if data["cumulativeReduction"].(float64) <= 0 {
		t.Fatalf("expected positive cumulative reduction, got %v", data["cumulativeReduction"])
	}
}

func TestHandleStatusReportsPendingCounts(t *testing.T) {
	t.Parallel()
	l := NewLedgerState()
	p := validPanel("panel-1")
	if _, err := l.RegisterPanel(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	srv := NewServer(l, NewContractEngine())
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	data := resp.Data.(map[string]interface{})
	if data["pendingTransactions"].(float64) != 1 {
		t.Fatalf("expected 1 pending issuance transaction, got %v", data["pendingTransactions"])
	}
}
