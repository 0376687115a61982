package parser

import (
	"strings"
)

// Fixed payee labels for rows whose reference fields carry no usable
// counterparty (or where emitting them would leak PII).
const (
	bankTransferLabel     = "DBS Bank"
	incomingTransferLabel = "Incoming Bank Transfer"
	walletLabel           = "PayLah!"
)

// defaultTransferMemo is the placeholder text the bank inserts in the memo
// field when the sender typed nothing. It is noise, not a user note.
const defaultTransferMemo = "PayNow transfer"

// rowRefs carries the segmented reference columns of one data row, plus the
// resolved direction. Cleaners receive these, never the bank's concatenated
// Description column.
type rowRefs struct {
	Ref1  string
	Ref2  string
	Ref3  string
	Debit bool
}

// cleanerFunc extracts the payee and note text for one transaction type.
type cleanerFunc func(rowRefs) (payee, notes string)

// cleaners maps short transaction codes to their extraction rules. Codes
// without an entry fall back to cleanGeneric.
var cleaners = map[string]cleanerFunc{
	"POS": cleanPointOfSale,
	"MST": cleanDebitCard,
	"ICT": cleanInterbank,
	"ITR": cleanIntrabank,
	"PPD": cleanWallet,
}

func cleanerFor(code string) cleanerFunc {
	if c, ok := cleaners[code]; ok {
		return c
	}
	return cleanGeneric
}

// cleanPointOfSale handles NETS point-of-sale rows. The merchant sits in the
// second reference field behind a "TO:" marker.
func cleanPointOfSale(r rowRefs) (string, string) {
	return titleCase(stripMarker(collapseSpaces(r.Ref2), "TO")), ""
}

// cleanDebitCard handles card payment rows. The merchant is in the first
// reference field, followed by an optional terminal reference and an
// acquirer suffix like "SI SGP 14FEB".
//
// The suffix must be removed before the trailing numeric token: stripping
// numbers first would eat the day digits out of the suffix, and stripping a
// numeric token that is not in trailing position would corrupt merchants
// whose names end in digits.
func cleanDebitCard(r rowRefs) (string, string) {
	s := collapseSpaces(r.Ref1)
	s = cardSuffixPattern.ReplaceAllString(s, "")
	s = trailingNumericPattern.ReplaceAllString(s, "")
	return titleCase(s), ""
}

// cleanInterbank handles FAST and PayNow rows, which come in three shapes:
//
//   - peer transfers: "To: NAME" / "From: NAME" in the second reference
//     field, user memo behind an "OTHR" marker in the third
//   - outgoing transfers to another bank: "BANK: account: channel" in the
//     first reference field, memo verbatim in the second, a pure numeric
//     reference in the third (discarded)
//   - incoming transfers from another bank: unstructured noise in every
//     reference field, so a fixed label is all we can offer
func cleanInterbank(r rowRefs) (string, string) {
	ref2 := collapseSpaces(r.Ref2)

	switch {
	case hasMarker(ref2, "TO"):
		return titleCase(stripMarker(ref2, "TO")), cleanPeerMemo(r.Ref3)
	case hasMarker(ref2, "FROM"):
		return titleCase(stripMarker(ref2, "FROM")), cleanPeerMemo(r.Ref3)
	case isBankRoute(r.Ref1):
		return titleCase(routeBankName(r.Ref1)), ref2
	default:
		return incomingTransferLabel, ""
	}
}

// cleanIntrabank handles transfers between DBS accounts, including PayLah!
// wallet movements flagged by a wallet marker in the first reference field.
func cleanIntrabank(r rowRefs) (string, string) {
	if strings.Contains(strings.ToUpper(r.Ref1), "PAYLAH") {
		return cleanWallet(r)
	}

	if r.Debit {
		notes := stripMarker(collapseSpaces(r.Ref3), "OTHR")
		notes = trailingNumericPattern.ReplaceAllString(notes, "")
		return bankTransferLabel, notes
	}
	return bankTransferLabel, ""
}

// cleanWallet handles PayLah! wallet movements, whether they arrive under
// the dedicated wallet code or as a marked intrabank transfer. Only the
// fixed label and the direction are emitted: the reference fields carry the
// linked phone number, which must never reach the output.
func cleanWallet(r rowRefs) (string, string) {
	if r.Debit {
		return walletLabel, "Top-Up"
	}
	return walletLabel, "Received"
}

// cleanGeneric is the fallback for unrecognized codes: title-case whatever
// the reference fields hold and claim no note.
func cleanGeneric(r rowRefs) (string, string) {
	joined := collapseSpaces(strings.Join([]string{r.Ref1, r.Ref2, r.Ref3}, " "))
	return titleCase(joined), ""
}

// cleanPeerMemo turns the third reference field of a peer transfer into a
// note. The "OTHR" marker and the bank's default placeholder are dropped,
// and a lone machine-generated reference token (15+ chars) is discarded.
// Anything shorter survives: short codes are the one place real user memos
// live.
func cleanPeerMemo(ref3 string) string {
	s := stripMarker(collapseSpaces(ref3), "OTHR")
	if strings.EqualFold(s, defaultTransferMemo) {
		return ""
	}
	if isOpaqueReference(s) {
		return ""
	}
	return s
}

// isBankRoute reports whether the first reference field follows the
// "BANK: account: channel" shape used by outgoing interbank transfers.
func isBankRoute(ref1 string) bool {
	parts := strings.Split(ref1, ":")
	if len(parts) < 3 {
		return false
	}
	return strings.TrimSpace(parts[0]) != ""
}

// routeBankName extracts the receiving bank's short name from a bank route.
func routeBankName(ref1 string) string {
	return collapseSpaces(strings.SplitN(ref1, ":", 2)[0])
}
