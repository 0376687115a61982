package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single normalized statement entry. Parsers construct one
// per data row; every later transformation (anonymisation, restoration,
// category enrichment) works on a copy and leaves the original untouched.
type Transaction struct {
	// Date is the transaction's effective date, at midnight UTC.
	Date time.Time `json:"date"`

	// Description is the cleaned, presentable counterparty name. It is the
	// only field the anonymiser rewrites.
	Description string `json:"description"`

	// OriginalDescription is the raw concatenated text from the source row.
	// Written once at parse time, never modified afterwards.
	OriginalDescription string `json:"originalDescription"`

	// Amount is signed and rounded to cents: negative for money leaving the
	// account, positive for money entering it.
	Amount decimal.Decimal `json:"amount"`

	// TransactionCode is the resolved, human-readable classification
	// description (never the short source code).
	TransactionCode string `json:"transactionCode"`

	// Notes holds a scrubbed user memo when the source row carried one.
	Notes string `json:"notes"`

	// Category is assigned by the classifier after parsing; empty until then.
	Category string `json:"category,omitempty"`

	// OriginalPII maps a placeholder description back to the real name it
	// replaced. Empty unless the record is in a masked state. Must never be
	// included in any payload sent outside the process.
	OriginalPII map[string]string `json:"originalPII,omitempty"`
}

// Clone returns a copy with its own OriginalPII map, so transformations can
// never mutate the record they were handed.
func (t Transaction) Clone() Transaction {
	out := t
	if t.OriginalPII != nil {
		out.OriginalPII = make(map[string]string, len(t.OriginalPII))
		for k, v := range t.OriginalPII {
			out.OriginalPII[k] = v
		}
	}
	return out
}

// IsDebit reports whether money left the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// BankType identifies a supported statement source format.
type BankType string

const (
	// BankDBS covers DBS/POSB consolidated account CSV exports.
	BankDBS BankType = "dbs"
)
