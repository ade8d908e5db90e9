package board

import "sort"

// MaxTopN caps how many rows a leaderboard query may ask for.
const MaxTopN = 10

type Entry struct {
	Username string
	Record   UserRecord
}

// TopN returns the top count users by balance, highest first. The count is
// clamped to [1, MaxTopN] before selection, so asking for more rows than the
// snapshot holds simply returns everything.
func TopN(s Snapshot, count int) []Entry {
	if count < 1 {
		count = 1
	}
	if count > MaxTopN {
		count = MaxTopN
	}

	entries := make([]Entry, 0, len(s))
	for username, rec := range s {
		entries = append(entries, Entry{Username: username, Record: rec})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Record.Balance != b.Record.Balance {
			return a.Record.Balance > b.Record.Balance
		}
		return a.Username < b.Username
	})
	if len(entries) > count {
		entries = entries[:count]
	}
	return entries
}
