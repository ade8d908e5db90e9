package board

import "sort"

// HoldingChanges reports the symbols bought and sold between two holdings
// lists for one user. Quantity-only changes do not count; a symbol is a
// trade only when its presence differs. Both halves come back sorted so
// downstream formatting is stable.
func HoldingChanges(baseline, current []Holding) (added, removed []string) {
	prev := symbolSet(baseline)
	curr := symbolSet(current)

	for symbol := range curr {
		if _, ok := prev[symbol]; !ok {
			added = append(added, symbol)
		}
	}
	for symbol := range prev {
		if _, ok := curr[symbol]; !ok {
			removed = append(removed, symbol)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

// TradeCount is the size of the symmetric difference of the two symbol sets.
func TradeCount(baseline, current []Holding) int {
	added, removed := HoldingChanges(baseline, current)
	return len(added) + len(removed)
}

func symbolSet(holdings []Holding) map[string]struct{} {
	set := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		set[h.Symbol] = struct{}{}
	}
	return set
}
