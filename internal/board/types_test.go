package board

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSnapshotDecode(t *testing.T) {
	raw := `{
		"alice": [1000.5, "https://example.com/alice", [["AAPL", 10, "$2,000"], ["TSLA", "5", "$1,000"]]],
		"bob":   ["2500", "", []]
	}`
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	alice, ok := snap.User("alice")
	if !ok {
		t.Fatalf("expected alice in snapshot")
	}
	if alice.Balance != 1000.5 {
		t.Fatalf("alice balance got %v want 1000.5", alice.Balance)
	}
	if alice.ProfileLink != "https://example.com/alice" {
		t.Fatalf("alice profile link got %q", alice.ProfileLink)
	}
	if len(alice.Holdings) != 2 {
		t.Fatalf("alice holdings got %d want 2", len(alice.Holdings))
	}
	if alice.Holdings[0].Symbol != "AAPL" || alice.Holdings[0].Quantity != "10" {
		t.Fatalf("unexpected first holding: %+v", alice.Holdings[0])
	}
	if alice.Holdings[1].Quantity != "5" {
		t.Fatalf("string quantity got %q want 5", alice.Holdings[1].Quantity)
	}

	bob, ok := snap.User("bob")
	if !ok {
		t.Fatalf("expected bob in snapshot")
	}
	if bob.Balance != 2500 {
		t.Fatalf("bob balance got %v want 2500 (string balance)", bob.Balance)
	}
}

func TestSnapshotDecodeRejectsBadBalance(t *testing.T) {
	cases := []string{
		`{"alice": ["not-a-number", "", []]}`,
		`{"alice": [true, "", []]}`,
		`{"alice": [1000]}`,
		`{"alice": [1000, "", [["AAPL"]]]}`,
	}
	for _, raw := range cases {
		var snap Snapshot
		err := json.Unmarshal([]byte(raw), &snap)
		if err == nil {
			t.Fatalf("expected decode of %s to fail", raw)
		}
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %s, got %v", raw, err)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := Snapshot{
		"alice": {Balance: 1200, ProfileLink: "link", Holdings: []Holding{
			{Symbol: "AAPL", Quantity: "10", ValueLabel: "$2,000"},
		}},
		"bob": {Balance: 900.25, ProfileLink: ""},
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Snapshot
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["alice"].Balance != 1200 || back["bob"].Balance != 900.25 {
		t.Fatalf("balances lost in round trip: %+v", back)
	}
	if len(back["alice"].Holdings) != 1 || back["alice"].Holdings[0].Symbol != "AAPL" {
		t.Fatalf("holdings lost in round trip: %+v", back["alice"].Holdings)
	}
	if back["bob"].Holdings == nil || len(back["bob"].Holdings) != 0 {
		t.Fatalf("nil holdings should encode as an empty list, got %+v", back["bob"].Holdings)
	}
}
