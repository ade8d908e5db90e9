package bot

import (
	"context"
	"errors"
	"sort"
	"time"

	"stonkbot/internal/board"
	"stonkbot/internal/store"
)

// LeaderboardUpdate is the minute tick during trading hours: push the top
// ranked user to the leaderboard channel, then report holdings changes
// against the rolling snapshot to the stocks channel. Failures are logged
// and swallowed so the next tick gets a clean shot.
func (b *Bot) LeaderboardUpdate(_ context.Context) {
	snap, err := b.store.ReadLatest()
	if err != nil {
		b.log.Error("leaderboard update: read latest", "err", err)
		return
	}

	top := board.TopN(snap, 1)
	if len(top) > 0 {
		if err := b.sendEmbed(b.cfg.LeaderboardChannelID, topRankedEmbed(top[0], time.Now())); err != nil {
			b.log.Error("leaderboard update: send", "err", err)
		}
	}

	if err := b.reportStockChanges(snap); err != nil {
		b.log.Error("stock changes", "err", err)
	}
}

// reportStockChanges diffs latest against the rolling snapshot, announces
// each user's buys and sells, then rolls the snapshot forward. On the very
// first run there is nothing to diff against; the snapshot is seeded and
// the diff skipped.
func (b *Bot) reportStockChanges(latest board.Snapshot) error {
	rolling, err := b.store.ReadRolling()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return b.store.WriteRolling(latest)
		}
		return err
	}

	usernames := make([]string, 0, len(latest))
	for username := range latest {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	for _, username := range usernames {
		prev, ok := rolling[username]
		if !ok {
			continue
		}
		added, removed := board.HoldingChanges(prev.Holdings, latest[username].Holdings)
		if len(added) == 0 && len(removed) == 0 {
			continue
		}
		if err := b.sendEmbed(b.cfg.StocksChannelID, stockChangesEmbed(username, added, removed, time.Now())); err != nil {
			b.log.Error("stock changes: send", "user", username, "err", err)
		}
	}

	return b.store.WriteRolling(latest)
}

// CaptureMorningBaseline freezes the latest capture as the day's baseline
// at market open. If the refresher has not produced a file yet this is a
// no-op; the summary will then skip the day.
func (b *Bot) CaptureMorningBaseline(_ context.Context) {
	snap, err := b.store.ReadLatest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			b.log.Warn("morning baseline: no latest capture yet")
			return
		}
		b.log.Error("morning baseline: read latest", "err", err)
		return
	}
	if err := b.store.WriteMorning(snap); err != nil {
		b.log.Error("morning baseline: write", "err", err)
		return
	}
	b.log.Info("morning baseline captured", "users", len(snap))
}

// SendDailySummary compares the morning baseline against the latest capture
// and posts the end-of-day rollup. A missing baseline (restart across the
// open, first day, holiday) is a logged no-op.
func (b *Bot) SendDailySummary(_ context.Context) {
	morning, err := b.store.ReadMorning()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			b.log.Warn("daily summary: no morning baseline, skipping")
			return
		}
		b.log.Error("daily summary: read morning baseline", "err", err)
		return
	}
	latest, err := b.store.ReadLatest()
	if errors.Is(err, store.ErrNotFound) {
		// The refresher can rotate leaderboard-latest out from under us;
		// the newest timestamped capture is the next best thing.
		latest, err = b.store.ReadLatestInTime()
	}
	if err != nil {
		b.log.Error("daily summary: read latest", "err", err)
		return
	}

	summary, err := board.CompareDay(morning, latest)
	if err != nil {
		b.log.Error("daily summary: compare", "err", err)
		return
	}
	if len(summary.Performance) == 0 {
		b.log.Info("daily summary: no comparable users, skipping")
		return
	}

	if err := b.sendEmbed(b.cfg.LeaderboardChannelID, dailySummaryEmbed(summary, time.Now())); err != nil {
		b.log.Error("daily summary: send", "err", err)
		return
	}
	b.log.Info("daily summary sent", "users", len(summary.Performance), "total_trades", summary.TotalTrades)
}
