package main

import (
	"fmt"
	"strconv"
	"strings"

	"stonkbot/internal/board"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderTop(entries []board.Entry) {
	accent.Println("\n== LEADERBOARD ==")
	if len(entries) == 0 {
		printInfo("No users on the board.")
		return
	}
	fmt.Printf("%-6s %-20s %14s %8s\n", "RANK", "USER", "BALANCE", "STOCKS")
	for i, e := range entries {
		fmt.Printf("%-6d %-20s %14s %8d\n",
			i+1,
			truncate(e.Username, 20),
			"$"+formatMoney(e.Record.Balance),
			len(e.Record.Holdings),
		)
	}
	fmt.Println()
}

func renderUser(username string, rec board.UserRecord) {
	accent.Printf("\n== %s ==\n", username)
	fmt.Printf("Balance: $%s\n", formatMoney(rec.Balance))
	if rec.ProfileLink != "" {
		fmt.Printf("Profile: %s\n", rec.ProfileLink)
	}
	fmt.Println()
	accent.Println("Holdings")
	if len(rec.Holdings) == 0 {
		printInfo("No holdings.")
		fmt.Println()
		return
	}
	fmt.Printf("%-8s %12s %-16s\n", "SYMBOL", "QTY", "VALUE")
	for _, h := range rec.Holdings {
		fmt.Printf("%-8s %12s %-16s\n", h.Symbol, h.Quantity, h.ValueLabel)
	}
	fmt.Println()
}

func renderSummary(summary board.DailySummary) {
	accent.Println("\n== DAILY SUMMARY ==")
	fmt.Printf("Total trades: %d\n", summary.TotalTrades)
	if summary.BiggestGain.Username != "" {
		fmt.Printf("Biggest gain: %s %s\n", summary.BiggestGain.Username, colorizePercent(summary.BiggestGain.ChangePercent))
	}
	if summary.BiggestLoss.Username != "" {
		fmt.Printf("Biggest loss: %s %s\n", summary.BiggestLoss.Username, colorizePercent(summary.BiggestLoss.ChangePercent))
	}

	fmt.Println()
	accent.Println("Performance")
	if len(summary.Performance) == 0 {
		printInfo("No comparable users today.")
		fmt.Println()
		return
	}
	fmt.Printf("%-20s %10s %14s %8s\n", "USER", "CHANGE%", "CHANGE", "TRADES")
	for _, rec := range summary.Performance {
		fmt.Printf("%-20s %10s %14s %8d\n",
			truncate(rec.Username, 20),
			colorizePercent(rec.ChangePercent),
			colorizeMoney(rec.ChangeAmount),
			rec.TradeCount,
		)
	}

	fmt.Println()
	accent.Println("Most Active")
	for _, rec := range summary.MostActive {
		fmt.Printf("%-20s %8d trades\n", truncate(rec.Username, 20), rec.TradeCount)
	}
	fmt.Println()
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizeMoney(v float64) string {
	text := "$" + formatMoney(v)
	if v > 0 {
		text = "+" + text
	}
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

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

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
