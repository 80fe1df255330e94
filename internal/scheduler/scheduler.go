package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/analyzer"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/config"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/ledger"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/notifier"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/recorder"
)

// expiryNoticeDays is how far ahead the daily sweep warns about
// accounts running out.
const expiryNoticeDays = 3

// Scheduler manages the cron tasks and dispatches user commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
	Ledger   *ledger.Ledger
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Cfg      *config.Config
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *analyzer.Analyzer, ld *ledger.Ledger, tn *notifier.TelegramNotifier, rec recorder.Recorder, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Ledger:   ld,
		Notifier: tn,
		Recorder: rec,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// RegisterAll registers the digest and expiry-sweep tasks.
func (s *Scheduler) RegisterAll(digestCron, expiryCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	if _, err := s.Cron.AddFunc(expiryCron, s.expirySweep); err != nil {
		return fmt.Errorf("register expiry sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (for RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

// digestTask analyzes the whole asset catalog and broadcasts the
// results to the configured chat.
func (s *Scheduler) digestTask() {
	log.Println("[INFO] running market digest")
	for _, asset := range s.Cfg.Assets {
		a, err := s.Analyzer.Analyze(s.Ctx, asset.Symbol)
		if err != nil {
			log.Printf("[ERROR] digest analyze %s: %v", asset.Symbol, err)
			continue
		}
		s.trySend(notifier.FormatAnalysis(asset, a, "digest"))
		if err := s.Recorder.RecordAnalysis(recorder.FromAnalysis(a, "digest")); err != nil {
			log.Printf("[ERROR] record digest analysis: %v", err)
		}
	}
}

// expirySweep warns the admin about accounts close to running out.
func (s *Scheduler) expirySweep() {
	expiring := s.Ledger.ExpiringWithin(expiryNoticeDays)
	if len(expiring) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("⏳ <b>Accounts expiring soon</b>\n\n")
	for _, acct := range expiring {
		b.WriteString(fmt.Sprintf("• %s (%s) expires %s\n", acct.Name, acct.ID, acct.Expiry))
	}
	if err := s.Notifier.SendTo(s.Cfg.Telegram.AdminID, b.String()); err != nil {
		log.Printf("[ERROR] send expiry notice: %v", err)
	}
}

// HandleCommand processes one user command and returns the reply text.
func (s *Scheduler) HandleCommand(cmd notifier.Command) string {
	fields := strings.Fields(cmd.Text)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/start":
		return s.handleStart(cmd)
	case "/myid":
		return fmt.Sprintf("🆔 Your user ID: %s", cmd.UserID)
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze <asset>"
		}
		return s.handleAnalyze(cmd, strings.Join(fields[1:], " "))
	case "/prices":
		return s.handlePrices(cmd)
	case "/adduser":
		return s.handleAddUser(cmd, fields[1:])
	case "/users":
		if !s.isAdmin(cmd.UserID) {
			return "❌ Admin only"
		}
		return notifier.FormatAccounts(s.Ledger.Accounts(), time.Now())
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) handleStart(cmd notifier.Command) string {
	ok, acct := s.checkAccess(cmd.UserID)
	if !ok {
		return notifier.FormatLocked(cmd.UserID, cmd.UserName)
	}
	return notifier.FormatWelcome(acct, s.Cfg.Assets)
}

func (s *Scheduler) handleAnalyze(cmd notifier.Command, query string) string {
	ok, acct := s.checkAccess(cmd.UserID)
	if !ok {
		return "❌ You are not authorized to use this bot."
	}

	asset, found := s.Cfg.FindAsset(query)
	if !found {
		return fmt.Sprintf("❌ Unknown asset %q. Try /start for the catalog.", query)
	}

	a, err := s.Analyzer.Analyze(s.Ctx, asset.Symbol)
	if err != nil {
		log.Printf("[ERROR] analyze %s for %s: %v", asset.Symbol, cmd.UserID, err)
		switch {
		case errors.Is(err, model.ErrDataUnavailable):
			return fmt.Sprintf("❌ No market data available for %s right now.", asset.Name)
		case errors.Is(err, model.ErrInsufficientHistory):
			return fmt.Sprintf("❌ Not enough price history for %s.", asset.Name)
		default:
			return fmt.Sprintf("❌ Analysis of %s failed, please retry.", asset.Name)
		}
	}

	if err := s.Recorder.RecordAnalysis(recorder.FromAnalysis(a, cmd.UserID)); err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}
	return notifier.FormatAnalysis(asset, a, acct.Name)
}

func (s *Scheduler) handlePrices(cmd notifier.Command) string {
	if ok, _ := s.checkAccess(cmd.UserID); !ok {
		return "❌ You are not authorized to use this bot."
	}
	quotes := make(map[string]float64, len(s.Cfg.Assets))
	for _, asset := range s.Cfg.Assets {
		price, err := s.Analyzer.Fetcher.FetchPrice(s.Ctx, asset.Symbol)
		if err != nil {
			log.Printf("[WARN] quote %s: %v", asset.Symbol, err)
			continue
		}
		quotes[asset.Symbol] = price
	}
	return notifier.FormatPrices(s.Cfg.Assets, quotes)
}

func (s *Scheduler) handleAddUser(cmd notifier.Command, args []string) string {
	if !s.isAdmin(cmd.UserID) {
		return "❌ Admin only"
	}
	if len(args) < 2 {
		return "Usage: /adduser <user_id> <name> [days]"
	}
	id := args[0]
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "❌ user_id must be numeric"
	}
	days := 90
	name := strings.Join(args[1:], " ")
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 2 {
		days = n
		name = strings.Join(args[1:len(args)-1], " ")
	}

	acct, err := s.Ledger.Provision(id, name, days)
	if err != nil {
		log.Printf("[ERROR] provision %s: %v", id, err)
		return "❌ Failed to provision user"
	}
	if err := s.Recorder.RecordAuthEvent(&recorder.AuthEvent{
		UserID: id, EventType: "PROVISION", Authorized: true, UsageCount: acct.UsageCount,
	}); err != nil {
		log.Printf("[ERROR] record provision: %v", err)
	}
	return fmt.Sprintf("✅ User %s provisioned until %s", acct.Name, acct.Expiry)
}

// checkAccess is the single authorization gate; usage is counted
// exactly once per granted check.
func (s *Scheduler) checkAccess(userID string) (bool, *model.UserAccount) {
	ok, acct := s.Ledger.Check(userID)
	usage := 0
	if acct != nil {
		usage = acct.UsageCount
	}
	if err := s.Recorder.RecordAuthEvent(&recorder.AuthEvent{
		UserID: userID, EventType: "CHECK", Authorized: ok, UsageCount: usage,
	}); err != nil {
		log.Printf("[ERROR] record auth check: %v", err)
	}
	return ok, acct
}

func (s *Scheduler) isAdmin(userID string) bool {
	return userID == s.Cfg.Telegram.AdminID
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
