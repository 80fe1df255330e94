// Package ledger tracks time-bounded caller entitlements and their
// usage counts.
package ledger

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Ledger owns the in-memory account set and its backing store. All
// access is serialized by the mutex; the whole record set is rewritten
// on every mutation.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*model.UserAccount
	store    Store
	now      func() time.Time
}

// New loads the ledger from the store. A load failure falls back to an
// empty ledger rather than propagating, which deauthorizes every
// previously provisioned account until re-provisioned.
func New(store Store) *Ledger {
	accounts, err := store.Load()
	if err != nil {
		log.Printf("[WARN] load ledger failed, starting empty: %v", err)
		accounts = map[string]*model.UserAccount{}
	}
	return &Ledger{
		accounts: accounts,
		store:    store,
		now:      time.Now,
	}
}

// Provision creates or overwrites the account for id. Re-provisioning
// replaces the prior record entirely, usage count included.
func (l *Ledger) Provision(id, name string, durationDays int) (*model.UserAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := model.DateOf(l.now())
	acct := &model.UserAccount{
		ID:         id,
		Name:       name,
		Expiry:     today.AddDays(durationDays),
		JoinDate:   today,
		UsageCount: 0,
	}
	l.accounts[id] = acct
	if err := l.store.SaveAll(l.accounts); err != nil {
		return nil, err
	}
	out := *acct
	return &out, nil
}

// Check looks up the caller's entitlement. An active account has its
// usage count incremented by exactly one and persisted; an absent or
// expired account is returned as unauthorized and left unmodified.
func (l *Ledger) Check(id string) (bool, *model.UserAccount) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[id]
	if !ok || !acct.Active(l.now()) {
		return false, nil
	}
	acct.UsageCount++
	if err := l.store.SaveAll(l.accounts); err != nil {
		log.Printf("[ERROR] persist ledger after check: %v", err)
	}
	out := *acct
	return true, &out
}

// Accounts returns a snapshot of all records sorted by id.
func (l *Ledger) Accounts() []model.UserAccount {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.UserAccount, 0, len(l.accounts))
	for _, acct := range l.accounts {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExpiringWithin returns the accounts still active now but expiring in
// at most d days, for the scheduler's expiry sweep.
func (l *Ledger) ExpiringWithin(days int) []model.UserAccount {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := model.DateOf(now).AddDays(days)
	var out []model.UserAccount
	for _, acct := range l.accounts {
		if acct.Active(now) && !acct.Expiry.After(cutoff.Time) {
			out = append(out, *acct)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Expiry.Before(out[j].Expiry.Time) })
	return out
}
