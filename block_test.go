package main

import "testing"

func TestNewGenesisBlockHashIsSelfConsistent(t *testing.T) {
	t.Parallel()
	g := NewGenesisBlock()
	if g.Hash != g.CalculateHash() {
		t.Fatal("genesis hash does not match its own recomputation")
	}
	if g.Index != 0 || g.PreviousHash != "0" {
		t.Fatalf("unexpected genesis fields: index=%d previousHash=%s", g.Index, g.PreviousHash)
	}
}

func TestMeetsDifficulty(t *testing.T) {
	t.Parallel()
	if !MeetsDifficulty("0000abcd", 4) {
		t.Fatal("expected 4 leading zeros to satisfy difficulty 4")
	}
	if MeetsDifficulty("000abcd", 4) {
		t.Fatal("did not expect 3 leading zeros to satisfy difficulty 4")
	}
	if !MeetsDifficulty("abcd", 0) {
		t.Fatal("difficulty 0 should always be satisfied")
	}
}

func TestPayloadDigestOrderSensitive(t *testing.T) {
	t.Parallel()
	b1 := &Block{Payload: BlockPayload{Transactions: []*Transaction{{TxID: "a"}, {TxID: "b"}}}}
	b2 := &Block{Payload: BlockPayload{Transactions: []*Transaction{{TxID: "b"}, {TxID: "a"}}}}
	if b1.payloadDigest() == b2.payloadDigest() {
		t.Fatal("expected different digests for different orderings")
	}
}
