// Package anonymiser masks personal names in transfer transactions before
// records leave the process for classification, and restores them afterwards
// with no information loss.
//
// None of its operations return errors: leaking an unmasked name is a worse
// outcome than over-masking, so every fault degrades toward "mask anyway" or
// "leave unchanged".
package anonymiser

import (
	"strings"

	"github.com/ledgerlift/statement-categoriser/internal/codes"
	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// eligibleCodes are the two resolved transfer descriptions whose records may
// carry a personal name as the payee. Everything else (card payments,
// point-of-sale, GIRO, ...) passes through untouched: merchant names must
// reach the classifier unmasked.
//
// The comparison is against the full resolved description, never a short
// code: the parser only ever stores the resolved form.
var eligibleCodes = map[string]bool{
	codes.FASTReceipt:   true,
	codes.FundsTransfer: true,
}

// businessKeywords exempt commercial payees that happen to travel on a
// transfer rail. Matched case-insensitively as substrings.
var businessKeywords = []string{
	"PTE LTD", "PTE. LTD", "PRIVATE LIMITED", "LLP", "LLC", "LTD",
	"HOLDINGS", "ENTERPRISE", "TRADING", "BANK", "CAFE", "RESTAURANT",
	"MINIMART", "STORE", "SERVICES", "AGENCY", "CORP",
}

// Anonymise returns masked copies of the given records. Eligible records
// with a personal-name description get a placeholder from the mock pool;
// the same original name (case-insensitively) always receives the same
// placeholder within one call. Records that are ineligible, business-named,
// whitelisted, or empty come back as value copies with nothing changed.
//
// whitelist holds upper-cased names the user has marked "never mask"; nil
// means no whitelist. Input records are never mutated.
func Anonymise(records []models.Transaction, whitelist map[string]bool) []models.Transaction {
	assignments := make(map[string]string)
	next := 0

	// First pass: assign placeholders to unique names in encounter order.
	for _, rec := range records {
		if !shouldMask(rec, whitelist) {
			continue
		}
		key := strings.ToUpper(rec.Description)
		if _, seen := assignments[key]; seen {
			continue
		}
		assignments[key] = mockNamePool[next%len(mockNamePool)]
		next++
	}

	// Second pass: apply them.
	out := make([]models.Transaction, len(records))
	for i, rec := range records {
		masked := rec.Clone()
		if shouldMask(rec, whitelist) {
			placeholder := assignments[strings.ToUpper(rec.Description)]
			if masked.OriginalPII == nil {
				masked.OriginalPII = make(map[string]string, 1)
			}
			// Merge, never overwrite: on a repeated pass the current
			// description is itself a placeholder, and clobbering its entry
			// would orphan the real name forever.
			if _, exists := masked.OriginalPII[placeholder]; !exists {
				masked.OriginalPII[placeholder] = rec.Description
			}
			masked.Description = placeholder
		}
		out[i] = masked
	}
	return out
}

// Restore returns copies with masked descriptions swapped back to their
// originals. A description that is not a key of the record's OriginalPII
// map (user edited it, or the record was already restored) is left alone.
func Restore(records []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(records))
	for i, rec := range records {
		restored := rec.Clone()
		if len(restored.OriginalPII) > 0 {
			if original, ok := restored.OriginalPII[restored.Description]; ok {
				restored.Description = original
			}
		}
		out[i] = restored
	}
	return out
}

func shouldMask(rec models.Transaction, whitelist map[string]bool) bool {
	if !eligibleCodes[rec.TransactionCode] {
		return false
	}
	if rec.Description == "" {
		return false
	}
	if isBusiness(rec.Description) {
		return false
	}
	if whitelist[strings.ToUpper(rec.Description)] {
		return false
	}
	return true
}

// isBusiness reports whether the payee looks like a commercial entity.
func isBusiness(description string) bool {
	upper := strings.ToUpper(description)
	for _, kw := range businessKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
