package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// Card numbers as they appear in DBS reference fields: four groups of
	// four digits, dash- or space-separated, or one unbroken 16-digit run.
	cardNumberPattern = regexp.MustCompile(`\b\d{4}[- ]\d{4}[- ]\d{4}[- ]\d{4}\b|\b\d{16}\b`)

	// Opaque reference IDs: a single token of 15+ letters/digits/hyphens.
	// 14-character tokens are deliberately kept — short codes tend to be
	// meaningful to the account holder, long ones never are.
	opaqueRefPattern = regexp.MustCompile(`^[A-Za-z0-9-]{15,}$`)

	// Acquirer suffix on debit card rows, e.g. "SI SGP 14FEB":
	// acquirer code, country code, then a 2-digit day + 3-letter month.
	cardSuffixPattern = regexp.MustCompile(`(?i)\s+[a-z]{2}\s+[a-z]{2,3}\s+\d{2}[a-z]{3}\s*$`)

	trailingNumericPattern = regexp.MustCompile(`\s+\d+$`)
)

// months maps the statement's three-letter month abbreviations. Dates are
// assembled by component lookup rather than a locale-aware parser, so a
// host timezone can never shift a transaction to the previous day.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseStatementDate parses the bank's textual date format, e.g. "14 Feb 2024".
func parseStatementDate(s string) (time.Time, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q: want \"DD Mon YYYY\"", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("malformed date %q: bad day %q", s, parts[0])
	}

	month, ok := months[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("malformed date %q: unknown month %q", s, parts[1])
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("malformed date %q: bad year %q", s, parts[2])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// parseSignedAmount converts the separate debit/credit columns into one
// signed amount rounded to cents. Exactly one of the two must be populated.
func parseSignedAmount(debit, credit string) (decimal.Decimal, error) {
	debit = strings.TrimSpace(debit)
	credit = strings.TrimSpace(credit)

	switch {
	case debit != "":
		d, err := decimal.NewFromString(strings.ReplaceAll(debit, ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad debit amount %q: %w", debit, err)
		}
		return d.Round(2).Neg(), nil
	case credit != "":
		d, err := decimal.NewFromString(strings.ReplaceAll(credit, ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad credit amount %q: %w", credit, err)
		}
		return d.Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("row has neither debit nor credit amount")
	}
}

// collapseSpaces trims and squeezes runs of whitespace down to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase produces a readable payee name from the bank's all-caps text.
// Each space-separated word is cased independently; segments around "/" and
// "-" are cased on their own ("BUS/MRT" -> "Bus/Mrt"), and a word opening
// with "(" is cased from the character after it.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	if strings.ContainsRune(w, '/') {
		return titleCaseJoin(w, "/")
	}
	if strings.ContainsRune(w, '-') {
		return titleCaseJoin(w, "-")
	}
	if strings.HasPrefix(w, "(") && len(w) > 1 {
		return "(" + titleCaseWord(w[1:])
	}
	return upperFirst(w)
}

// titleCaseJoin cases each sep-separated segment through titleCaseWord, so a
// word carrying both separators (or a parenthesis) is handled at every level.
func titleCaseJoin(w, sep string) string {
	segs := strings.Split(w, sep)
	for i, seg := range segs {
		segs[i] = titleCaseWord(seg)
	}
	return strings.Join(segs, sep)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// stripCardNumbers removes card-number patterns wherever they appear. The
// statement parser runs this over every cleaned description and note as a
// final pass, independent of what the per-type cleaner produced.
func stripCardNumbers(s string) string {
	return collapseSpaces(cardNumberPattern.ReplaceAllString(s, ""))
}

// stripMarker removes a leading marker such as "To:" or "OTHR",
// case-insensitively, with or without a following colon.
func stripMarker(s, marker string) string {
	trimmed := strings.TrimSpace(s)
	upper := strings.ToUpper(trimmed)
	marker = strings.ToUpper(marker)

	if strings.HasPrefix(upper, marker+":") {
		return strings.TrimSpace(trimmed[len(marker)+1:])
	}
	if strings.HasPrefix(upper, marker+" ") {
		return strings.TrimSpace(trimmed[len(marker)+1:])
	}
	if upper == marker {
		return ""
	}
	return trimmed
}

// hasMarker reports whether s begins with the given marker word.
func hasMarker(s, marker string) bool {
	upper := strings.ToUpper(strings.TrimSpace(s))
	marker = strings.ToUpper(marker)
	return upper == marker ||
		strings.HasPrefix(upper, marker+":") ||
		strings.HasPrefix(upper, marker+" ")
}

// isOpaqueReference reports whether s is a single long machine token (a QR
// or transfer reference) rather than a human memo.
func isOpaqueReference(s string) bool {
	return opaqueRefPattern.MatchString(s)
}
