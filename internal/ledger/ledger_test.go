package ledger

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return New(NewFileStore(path)), path
}

func TestProvisionAndCheck(t *testing.T) {
	ld, _ := newTestLedger(t)

	acct, err := ld.Provision("42", "Test", 90)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if acct.UsageCount != 0 {
		t.Errorf("fresh account usage: expected 0, got %d", acct.UsageCount)
	}
	wantExpiry := time.Now().UTC().AddDate(0, 0, 90).Format("2006-01-02")
	if acct.Expiry.String() != wantExpiry {
		t.Errorf("expiry: expected %s, got %s", wantExpiry, acct.Expiry)
	}

	ok, checked := ld.Check("42")
	if !ok || checked == nil {
		t.Fatal("expected authorized check")
	}
	if checked.UsageCount != 1 {
		t.Errorf("usage after first check: expected 1, got %d", checked.UsageCount)
	}
}

func TestCheck_UnknownUser(t *testing.T) {
	ld, _ := newTestLedger(t)
	if ok, acct := ld.Check("999"); ok || acct != nil {
		t.Error("expected (false, nil) for unknown id")
	}
}

func TestCheck_ExpiredAccount(t *testing.T) {
	ld, _ := newTestLedger(t)
	if _, err := ld.Provision("7", "Late", 1); err != nil {
		t.Fatalf("provision: %v", err)
	}

	// Warp the clock past the expiry date.
	ld.now = func() time.Time { return time.Now().AddDate(0, 0, 2) }

	ok, acct := ld.Check("7")
	if ok || acct != nil {
		t.Error("expected (false, nil) for expired account")
	}
	// Usage must be untouched by the failed check.
	accounts := ld.Accounts()
	if len(accounts) != 1 {
		t.Fatalf("expired account must not be deleted, got %d records", len(accounts))
	}
	if accounts[0].UsageCount != 0 {
		t.Errorf("usage after failed check: expected 0, got %d", accounts[0].UsageCount)
	}
}

func TestCheck_ExpiryIsMidnight(t *testing.T) {
	ld, _ := newTestLedger(t)
	// Zero-day entitlement expires at today's midnight, so any check
	// later today already fails.
	if _, err := ld.Provision("8", "Gone", 0); err != nil {
		t.Fatalf("provision: %v", err)
	}
	ld.now = func() time.Time { return time.Now().Add(time.Minute) }
	if ok, _ := ld.Check("8"); ok {
		t.Error("zero-day account must not authorize")
	}
}

func TestProvision_ReplacesPriorRecord(t *testing.T) {
	ld, _ := newTestLedger(t)
	if _, err := ld.Provision("42", "First", 30); err != nil {
		t.Fatalf("provision: %v", err)
	}
	ld.Check("42")
	ld.Check("42")

	acct, err := ld.Provision("42", "Second", 60)
	if err != nil {
		t.Fatalf("re-provision: %v", err)
	}
	if acct.UsageCount != 0 {
		t.Errorf("usage after re-provision: expected 0, got %d", acct.UsageCount)
	}
	if acct.Name != "Second" {
		t.Errorf("name after re-provision: expected Second, got %s", acct.Name)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	ld, path := newTestLedger(t)
	if _, err := ld.Provision("1", "Alpha", 30); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := ld.Provision("2", "Beta", 90); err != nil {
		t.Fatalf("provision: %v", err)
	}
	ld.Check("1")

	reloaded := New(NewFileStore(path))
	if !reflect.DeepEqual(ld.Accounts(), reloaded.Accounts()) {
		t.Errorf("round trip mismatch:\n before %+v\n after  %+v", ld.Accounts(), reloaded.Accounts())
	}
}

func TestNew_CorruptStoreFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	ld := New(NewFileStore(path))
	if got := len(ld.Accounts()); got != 0 {
		t.Errorf("corrupt store must fall back to empty ledger, got %d records", got)
	}
	if ok, _ := ld.Check("42"); ok {
		t.Error("no account may authorize after fail-open")
	}
}

func TestNew_MissingFileIsEmpty(t *testing.T) {
	ld, _ := newTestLedger(t)
	if got := len(ld.Accounts()); got != 0 {
		t.Errorf("expected empty ledger, got %d records", got)
	}
}

func TestExpiringWithin(t *testing.T) {
	ld, _ := newTestLedger(t)
	if _, err := ld.Provision("1", "Soon", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := ld.Provision("2", "Later", 30); err != nil {
		t.Fatal(err)
	}

	expiring := ld.ExpiringWithin(3)
	if len(expiring) != 1 || expiring[0].ID != "1" {
		t.Errorf("expected only the 2-day account, got %+v", expiring)
	}
}
