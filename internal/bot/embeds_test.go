package bot

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"stonkbot/internal/board"
)

func TestFilterUsernames(t *testing.T) {
	usernames := []string{"Alice", "alicia", "Bob", "Carol", "malice"}

	if got := filterUsernames(usernames, "ali"); !reflect.DeepEqual(got, []string{"Alice", "alicia", "malice"}) {
		t.Fatalf("substring match got %v", got)
	}
	if got := filterUsernames(usernames, "BOB"); !reflect.DeepEqual(got, []string{"Bob"}) {
		t.Fatalf("case-insensitive match got %v", got)
	}
	if got := filterUsernames(usernames, ""); len(got) != len(usernames) {
		t.Fatalf("empty query should match everything, got %v", got)
	}
	if got := filterUsernames(usernames, "zzz"); got != nil {
		t.Fatalf("no-match got %v", got)
	}

	many := make([]string, 40)
	for i := range many {
		many[i] = "user" + string(rune('a'+i%26))
	}
	if got := len(filterUsernames(many, "user")); got != autocompleteLimit {
		t.Fatalf("choice cap got %d want %d", got, autocompleteLimit)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-4521.3, "-4,521.30"},
	}
	for _, tc := range tests {
		if got := formatMoney(tc.in); got != tc.want {
			t.Fatalf("formatMoney(%v) got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatHoldings(t *testing.T) {
	holdings := []board.Holding{
		{Symbol: "AAPL", Quantity: "10", ValueLabel: "$2,000"},
		{Symbol: "TSLA", Quantity: "5", ValueLabel: "$1,000"},
	}
	want := "AAPL: 10 ($2,000)\nTSLA: 5 ($1,000)"
	if got := formatHoldings(holdings); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := formatHoldings(nil); got != "(none)" {
		t.Fatalf("empty holdings got %q", got)
	}
}

func TestUserInfoEmbed(t *testing.T) {
	rec := board.UserRecord{Balance: 10500.25, Holdings: []board.Holding{{Symbol: "AAPL", Quantity: "10", ValueLabel: "x"}}}
	embed := userInfoEmbed("alice", rec, time.Now())
	if embed.Title != "Information for alice" {
		t.Fatalf("title got %q", embed.Title)
	}
	if embed.Color != colorBlue {
		t.Fatalf("color got %#x", embed.Color)
	}
	if !strings.Contains(embed.Description, "$10,500.25") {
		t.Fatalf("description missing balance: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "AAPL: 10 (x)") {
		t.Fatalf("description missing holdings: %q", embed.Description)
	}
	if embed.Timestamp == "" {
		t.Fatalf("missing timestamp")
	}
}

func TestLeaderboardEmbed(t *testing.T) {
	entries := []board.Entry{
		{Username: "alice", Record: board.UserRecord{Balance: 2000}},
		{Username: "bob", Record: board.UserRecord{Balance: 1000}},
	}
	embed := leaderboardEmbed(entries, time.Now())
	if embed.Title != "Current Leaderboard" {
		t.Fatalf("title got %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "**#1 - alice**") || !strings.Contains(embed.Description, "**#2 - bob**") {
		t.Fatalf("ranks missing: %q", embed.Description)
	}
}

func TestStockChangesEmbed(t *testing.T) {
	embed := stockChangesEmbed("alice", []string{"TSLA"}, []string{"MSFT"}, time.Now())
	if embed.Title != "Stock Changes for alice" {
		t.Fatalf("title got %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "+ Bought TSLA") {
		t.Fatalf("missing buy line: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "- Sold MSFT") {
		t.Fatalf("missing sell line: %q", embed.Description)
	}
}

func TestDailySummaryEmbed(t *testing.T) {
	summary := board.DailySummary{
		Performance: []board.PerformanceRecord{
			{Username: "alice", ChangeAmount: 200, ChangePercent: 20, TradeCount: 1},
			{Username: "bob", ChangeAmount: -50, ChangePercent: -5, TradeCount: 3},
		},
		TotalTrades: 4,
		BiggestGain: board.PerformanceRecord{Username: "alice", ChangeAmount: 200, ChangePercent: 20},
		BiggestLoss: board.PerformanceRecord{Username: "bob", ChangeAmount: -50, ChangePercent: -5},
		MostActive: []board.PerformanceRecord{
			{Username: "bob", TradeCount: 3},
			{Username: "alice", TradeCount: 1},
		},
	}
	embed := dailySummaryEmbed(summary, time.Date(2024, time.January, 8, 16, 0, 0, 0, time.UTC))
	if embed.Color != colorGold {
		t.Fatalf("color got %#x", embed.Color)
	}
	if !strings.Contains(embed.Description, "Monday, January 8, 2024") {
		t.Fatalf("description got %q", embed.Description)
	}

	names := make([]string, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	for _, want := range []string{"📈 Market Activity", "🏆 Top Performers", "📉 Needs Improvement", "🚀 Biggest Gain", "💥 Biggest Loss", "⚡ Most Active Traders"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing field %q in %v", want, names)
		}
	}
	if !strings.Contains(embed.Fields[0].Value, "Total Trades Today: 4") {
		t.Fatalf("market activity got %q", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[1].Value, "**alice**: +20.00% ($200.00) - 1 trades") {
		t.Fatalf("top performers got %q", embed.Fields[1].Value)
	}
}

func TestDailySummaryEmbedSentinels(t *testing.T) {
	summary := board.DailySummary{
		Performance: []board.PerformanceRecord{
			{Username: "alice", ChangeAmount: -10, ChangePercent: -1},
		},
		BiggestLoss: board.PerformanceRecord{Username: "alice", ChangeAmount: -10, ChangePercent: -1},
	}
	embed := dailySummaryEmbed(summary, time.Now())
	for _, f := range embed.Fields {
		if f.Name == "🚀 Biggest Gain" {
			t.Fatalf("sentinel gain should be omitted")
		}
	}
}
