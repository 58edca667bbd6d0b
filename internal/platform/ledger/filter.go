package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Filter is an optional set of criteria narrowing a user's transactions.
// A nil field imposes no constraint. The user scope itself is not part of
// the filter: results are always restricted to wallets owned by the acting
// user, and no filter can widen that.
type Filter struct {
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *Type
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Validate checks filter field consistency
func (f Filter) Validate() error {
	if f.Type != nil && !f.Type.IsValid() {
		return ErrInvalidType
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return ErrInvalidDateRange
	}

	return nil
}

// IsEmpty reports whether the filter imposes no constraints
func (f Filter) IsEmpty() bool {
	return f.WalletID == nil && f.CategoryID == nil && f.Type == nil &&
		f.DateFrom == nil && f.DateTo == nil
}

// DateToBound returns the inclusive upper bound for created_at. DateTo
// covers its entire calendar day, so the bound is the day's last nanosecond
// rather than midnight.
func (f Filter) DateToBound() *time.Time {
	if f.DateTo == nil {
		return nil
	}

	d := *f.DateTo
	bound := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), d.Location())
	return &bound
}

// Matches reports whether a transaction satisfies the filter. The SQL
// push-down in the repository applies exactly these predicates, so summaries
// computed over an in-memory set and over a filtered query agree.
func (f Filter) Matches(t *Transaction) bool {
	if f.WalletID != nil && t.WalletID != *f.WalletID {
		return false
	}

	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}

	if f.Type != nil && t.Type != *f.Type {
		return false
	}

	if f.DateFrom != nil && t.CreatedAt.Before(*f.DateFrom) {
		return false
	}

	if bound := f.DateToBound(); bound != nil && t.CreatedAt.After(*bound) {
		return false
	}

	return true
}

// Apply returns the transactions matching the filter
func (f Filter) Apply(transactions []*Transaction) []*Transaction {
	if f.IsEmpty() {
		return transactions
	}

	var matched []*Transaction
	for _, t := range transactions {
		if f.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
