package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"stonkbot/internal/board"

	"github.com/bwmarrin/discordgo"
)

const (
	colorBlue    = 0x3498DB
	colorGreen   = 0x2ECC71
	colorDarkRed = 0x992D22
	colorGold    = 0xF1C40F
)

const autocompleteLimit = 25

// Embed timestamps render in Pacific time, matching what the league is used
// to seeing; market gating stays on Eastern.
var displayTZ = mustLocation("America/Los_Angeles")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func embedTimestamp(now time.Time) string {
	return now.In(displayTZ).Format(time.RFC3339)
}

// filterUsernames is the autocomplete match: case-insensitive substring,
// capped at the Discord choice limit.
func filterUsernames(usernames []string, current string) []string {
	current = strings.ToLower(current)
	var out []string
	for _, name := range usernames {
		if strings.Contains(strings.ToLower(name), current) {
			out = append(out, name)
			if len(out) == autocompleteLimit {
				break
			}
		}
	}
	return out
}

func userInfoEmbed(username string, rec board.UserRecord, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorBlue,
		Title: fmt.Sprintf("Information for %s", username),
		Description: fmt.Sprintf("**Current Money:** $%s\n\n**Current Holdings:**\n%s",
			formatMoney(rec.Balance), formatHoldings(rec.Holdings)),
		Timestamp: embedTimestamp(now),
	}
}

func leaderboardEmbed(entries []board.Entry, now time.Time) *discordgo.MessageEmbed {
	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "**#%d - %s**\n", i+1, e.Username)
		fmt.Fprintf(&sb, "Money: $%s\n", formatMoney(e.Record.Balance))
		fmt.Fprintf(&sb, "Holdings:\n%s\n\n", formatHoldings(e.Record.Holdings))
	}
	return &discordgo.MessageEmbed{
		Color:       colorDarkRed,
		Title:       "Current Leaderboard",
		Description: sb.String(),
		Timestamp:   embedTimestamp(now),
	}
}

func topRankedEmbed(entry board.Entry, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorDarkRed,
		Title: "Leaderboard Update!",
		Description: fmt.Sprintf("**Top Ranked Person:** %s\n\n**Current Money:** $%s\n\n**Current Holdings:**\n%s",
			entry.Username, formatMoney(entry.Record.Balance), formatHoldings(entry.Record.Holdings)),
		Timestamp: embedTimestamp(now),
	}
}

func stockChangesEmbed(username string, added, removed []string, now time.Time) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, symbol := range added {
		fmt.Fprintf(&sb, "+ Bought %s\n", symbol)
	}
	for _, symbol := range removed {
		fmt.Fprintf(&sb, "- Sold %s\n", symbol)
	}
	return &discordgo.MessageEmbed{
		Color:       colorGreen,
		Title:       fmt.Sprintf("Stock Changes for %s", username),
		Description: sb.String(),
		Timestamp:   embedTimestamp(now),
	}
}

func dailySummaryEmbed(summary board.DailySummary, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:       colorGold,
		Title:       "📊 End of Day Trading Summary",
		Description: fmt.Sprintf("Market Close Summary for %s", now.Format("Monday, January 2, 2006")),
		Timestamp:   embedTimestamp(now),
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📈 Market Activity",
		Value: fmt.Sprintf("Total Trades Today: %d", summary.TotalTrades),
	})

	top := summary.Performance
	if len(top) > 3 {
		top = top[:3]
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🏆 Top Performers",
		Value: performanceLines(top),
	})

	bottom := summary.Performance
	if len(bottom) > 3 {
		bottom = bottom[len(bottom)-3:]
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📉 Needs Improvement",
		Value: performanceLines(bottom),
	})

	if summary.BiggestGain.Username != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🚀 Biggest Gain",
			Value: fmt.Sprintf("**%s**\n%+.2f%% ($%s)",
				summary.BiggestGain.Username, summary.BiggestGain.ChangePercent, formatMoney(summary.BiggestGain.ChangeAmount)),
			Inline: true,
		})
	}
	if summary.BiggestLoss.Username != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "💥 Biggest Loss",
			Value: fmt.Sprintf("**%s**\n%+.2f%% ($%s)",
				summary.BiggestLoss.Username, summary.BiggestLoss.ChangePercent, formatMoney(summary.BiggestLoss.ChangeAmount)),
			Inline: true,
		})
	}

	var active strings.Builder
	for _, rec := range summary.MostActive {
		fmt.Fprintf(&active, "**%s**: %d trades\n", rec.Username, rec.TradeCount)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "⚡ Most Active Traders",
		Value: strings.TrimRight(active.String(), "\n"),
	})

	return embed
}

func performanceLines(records []board.PerformanceRecord) string {
	var sb strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&sb, "**%s**: %+.2f%% ($%s) - %d trades\n",
			rec.Username, rec.ChangePercent, formatMoney(rec.ChangeAmount), rec.TradeCount)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatHoldings(holdings []board.Holding) string {
	if len(holdings) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(holdings))
	for _, h := range holdings {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", h.Symbol, h.Quantity, h.ValueLabel))
	}
	return strings.Join(lines, "\n")
}

// formatMoney renders 1234567.891 as "1,234,567.89"; the sign rides inside
// so callers can prefix a bare "$".
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	text := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(text, '.')
	whole, frac := text[:dot], text[dot:]

	var sb strings.Builder
	pre := len(whole) % 3
	if pre > 0 {
		sb.WriteString(whole[:pre])
		if len(whole) > pre {
			sb.WriteByte(',')
		}
	}
	for i := pre; i < len(whole); i += 3 {
		sb.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			sb.WriteByte(',')
		}
	}
	return sign + sb.String() + frac
}
