package board

import (
	"fmt"
	"sort"
)

const mostActiveLimit = 3

type PerformanceRecord struct {
	Username      string  `json:"username"`
	ChangeAmount  float64 `json:"change_amount"`
	ChangePercent float64 `json:"change_percent"`
	TradeCount    int     `json:"trade_count"`
}

type DailySummary struct {
	Performance []PerformanceRecord `json:"performance"`
	TotalTrades int                 `json:"total_trades"`
	BiggestGain PerformanceRecord   `json:"biggest_gain"`
	BiggestLoss PerformanceRecord   `json:"biggest_loss"`
	MostActive  []PerformanceRecord `json:"most_active"`
}

// CompareDay diffs two leaderboard captures and rolls the result up into a
// DailySummary. Users present only in one capture are skipped: a brand-new
// entrant has no baseline to measure against.
//
// BiggestGain and BiggestLoss start from a zero sentinel. On a day where
// every change is negative, BiggestGain keeps its empty username and callers
// must render that as "no gain today" (and symmetrically for BiggestLoss).
//
// A zero baseline balance makes the percent change undefined; the whole
// comparison aborts with ErrZeroBaseline rather than letting an Inf leak
// into a summary. Iteration and both sorts are keyed so the same two
// captures always produce the same summary.
func CompareDay(baseline, current Snapshot) (DailySummary, error) {
	summary := DailySummary{Performance: []PerformanceRecord{}}

	usernames := make([]string, 0, len(current))
	for username := range current {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	for _, username := range usernames {
		prev, ok := baseline[username]
		if !ok {
			continue
		}
		curr := current[username]
		if prev.Balance == 0 {
			return DailySummary{}, fmt.Errorf("user %s: %w", username, ErrZeroBaseline)
		}

		changeAmount := curr.Balance - prev.Balance
		changePercent := changeAmount / prev.Balance * 100
		tradeCount := TradeCount(prev.Holdings, curr.Holdings)
		summary.TotalTrades += tradeCount

		rec := PerformanceRecord{
			Username:      username,
			ChangeAmount:  changeAmount,
			ChangePercent: changePercent,
			TradeCount:    tradeCount,
		}
		if changePercent > summary.BiggestGain.ChangePercent {
			summary.BiggestGain = rec
		}
		if changePercent < summary.BiggestLoss.ChangePercent {
			summary.BiggestLoss = rec
		}
		summary.Performance = append(summary.Performance, rec)
	}

	sort.SliceStable(summary.Performance, func(i, j int) bool {
		a, b := summary.Performance[i], summary.Performance[j]
		if a.ChangePercent != b.ChangePercent {
			return a.ChangePercent > b.ChangePercent
		}
		return a.Username < b.Username
	})

	active := make([]PerformanceRecord, len(summary.Performance))
	copy(active, summary.Performance)
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.TradeCount != b.TradeCount {
			return a.TradeCount > b.TradeCount
		}
		return a.Username < b.Username
	})
	if len(active) > mostActiveLimit {
		active = active[:mostActiveLimit]
	}
	summary.MostActive = active

	return summary, nil
}
