package model

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as "YYYY-MM-DD" in the ledger file.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar day. Dates are kept in UTC so a
// stored and reloaded ledger compares equal.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// UserAccount is one caller's entitlement record. Accounts are never
// deleted; an expired account simply fails authorization checks.
type UserAccount struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Expiry     Date   `json:"expiry"`
	JoinDate   Date   `json:"join_date"`
	UsageCount int    `json:"usage_count"`
}

// Active reports whether the account is entitled at the given instant.
// The transition to expired is purely a function of wall-clock time.
func (u *UserAccount) Active(now time.Time) bool {
	return now.Before(u.Expiry.Time)
}
