package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/config"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// priceFormat picks the decimal precision by instrument class: FX pairs
// quote 4 places, everything else 2.
func priceFormat(symbol string) string {
	if strings.Contains(symbol, "/") {
		return "%.4f"
	}
	return "%.2f"
}

func rsiMarker(rsi float64) string {
	switch {
	case rsi > 70:
		return "🔴"
	case rsi < 30:
		return "🟢"
	default:
		return "⚪"
	}
}

func directionMarker(d model.Direction) string {
	if d == model.Bullish {
		return "🟢"
	}
	return "🔴"
}

// FormatAnalysis renders one analysis into a Telegram message.
func FormatAnalysis(asset config.Asset, a *model.Analysis, userName string) string {
	var b strings.Builder
	pf := priceFormat(asset.Symbol)

	b.WriteString(fmt.Sprintf("🎯 <b>%s Analysis</b>\n", asset.Name))
	b.WriteString(fmt.Sprintf("%s %s | 👤 %s\n\n", asset.Emoji, asset.Symbol, userName))

	b.WriteString(fmt.Sprintf("💰 Price: "+pf+"\n", a.CurrentPrice))
	b.WriteString(fmt.Sprintf("📈 RSI: %.1f %s\n", a.Latest.RSI, rsiMarker(a.Latest.RSI)))
	b.WriteString(fmt.Sprintf("📊 MACD: %.4f\n\n", a.Latest.MACD))

	if len(a.Report.Signals) > 0 {
		b.WriteString(fmt.Sprintf("📢 <b>Signals (%d%%):</b>\n", a.Report.Confidence))
		for _, s := range a.Report.Signals {
			b.WriteString(fmt.Sprintf("• %s %s\n", directionMarker(s.Direction), s.Label))
		}
		b.WriteString("\n")
	}

	action := "🔴 SELL"
	if a.Bias == model.BiasBuy {
		action = "🟢 BUY"
	}
	lv := a.Levels()
	b.WriteString(fmt.Sprintf("🎯 Recommendation: %s\n", action))
	b.WriteString(fmt.Sprintf("📍 Entry: %v\n", lv.Entry))
	b.WriteString(fmt.Sprintf("🛡️ Stop: %v\n", lv.StopLoss))
	b.WriteString("🎯 Targets:\n")
	for i, target := range lv.TakeProfit {
		b.WriteString(fmt.Sprintf("   %d. %v\n", i+1, target))
	}

	b.WriteString(fmt.Sprintf("\n⏰ %s\n", a.At.Format("15:04:05")))
	b.WriteString("⚠️ Analysis for guidance only")
	return b.String()
}

// FormatWelcome renders the /start reply for an authorized user.
func FormatWelcome(acct *model.UserAccount, assets []config.Asset) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 <b>Welcome back, %s!</b>\n\n", acct.Name))
	b.WriteString(fmt.Sprintf("✅ Active until: %s\n", acct.Expiry))
	b.WriteString(fmt.Sprintf("📊 Analyses used: %d\n\n", acct.UsageCount))
	b.WriteString("📈 Pick an asset with /analyze:\n")
	for _, a := range assets {
		b.WriteString(fmt.Sprintf("  %s /analyze %s\n", a.Emoji, a.Name))
	}
	return b.String()
}

// FormatLocked renders the /start reply for an unauthorized user.
func FormatLocked(userID, userName string) string {
	var b strings.Builder
	b.WriteString("🔒 <b>Premium Technical Analysis Bot</b>\n\n")
	b.WriteString(fmt.Sprintf("👋 Hello %s!\n\n", userName))
	b.WriteString(fmt.Sprintf("🆔 Your user ID: %s\n\n", userID))
	b.WriteString("❌ You are not subscribed.\n")
	b.WriteString("💡 Send your ID to support to get activated.\n")
	return b.String()
}

// FormatPrices renders the live prices board. quotes maps symbol to its
// latest price; a missing entry renders as unavailable.
func FormatPrices(assets []config.Asset, quotes map[string]float64) string {
	var b strings.Builder
	b.WriteString("💹 <b>Live Prices</b>\n\n")
	for _, a := range assets {
		if price, ok := quotes[a.Symbol]; ok {
			b.WriteString(fmt.Sprintf("%s %s: "+priceFormat(a.Symbol)+"\n", a.Emoji, a.Name, price))
		} else {
			b.WriteString(fmt.Sprintf("%s %s: ❌ unavailable\n", a.Emoji, a.Name))
		}
	}
	b.WriteString(fmt.Sprintf("\n🕒 %s", time.Now().Format("15:04:05")))
	return b.String()
}

// FormatAccounts renders the admin account listing.
func FormatAccounts(accounts []model.UserAccount, now time.Time) string {
	if len(accounts) == 0 {
		return "📭 No accounts provisioned"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👥 <b>Accounts (%d)</b>\n\n", len(accounts)))
	for _, acct := range accounts {
		status := "✅"
		if !acct.Active(now) {
			status = "⛔"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s) until %s, used %d\n",
			status, acct.Name, acct.ID, acct.Expiry, acct.UsageCount))
	}
	return b.String()
}

// FormatHelp renders the command reference.
func FormatHelp() string {
	return `🆘 <b>Commands</b>

/start - account status and asset list
/myid - show your user ID
/analyze &lt;asset&gt; - full technical analysis
/prices - live prices for all assets

⚠️ This bot assists with analysis; it does not guarantee profits.`
}
