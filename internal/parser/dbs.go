package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ledgerlift/statement-categoriser/internal/codes"
	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// DBSParser handles DBS/POSB consolidated account CSV exports.
//
// The export starts with six lines of account metadata (account number,
// statement period, balances), then a header row, then one data row per
// transaction:
//
//	Transaction Date,Transaction Code,Description,Reference 1,Reference 2,Reference 3,Status,Debit Amount,Credit Amount
//	14 Feb 2024,POS,..., ,TO: NOODLE HOUSE STALL, ,Completed,9.30,
//
// The Description column is the bank's own concatenation of the reference
// fields and is known to be truncated on long rows. Cleaning always reads
// the individual reference columns; Description is kept only as the
// unmodified audit copy on each record.
type DBSParser struct{}

// metadataLineCount is the fixed number of account header lines before the
// column header row.
const metadataLineCount = 6

const (
	colDate   = "transaction date"
	colCode   = "transaction code"
	colDesc   = "description"
	colRef1   = "reference 1"
	colRef2   = "reference 2"
	colRef3   = "reference 3"
	colStatus = "status"
	colDebit  = "debit amount"
	colCredit = "credit amount"
)

// requiredColumns must all be present in the header row. Checking them once
// up front turns a missing column into one clear error instead of scattered
// empty-field surprises inside the cleaners.
var requiredColumns = []string{
	colDate, colCode, colRef1, colRef2, colRef3, colDebit, colCredit,
}

func (p *DBSParser) BankName() string {
	return "DBS"
}

// Detect looks for the DBS column header tokens within the leading lines.
// Data rows are never inspected.
func (p *DBSParser) Detect(raw string) bool {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	if strings.TrimSpace(raw) == "" {
		return false
	}

	lines := strings.Split(raw, "\n")
	limit := metadataLineCount + 4
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		if strings.Contains(lower, colDate) &&
			strings.Contains(lower, colDebit) &&
			strings.Contains(lower, colRef1) {
			return true
		}
	}
	return false
}

// Parse converts the full export text into transaction records.
func (p *DBSParser) Parse(raw string) ([]models.Transaction, error) {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty input: statement file has no content")
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) <= metadataLineCount {
		return nil, fmt.Errorf("no data rows: statement ends inside the metadata header")
	}

	table := strings.Join(lines[metadataLineCount:], "\n")
	reader := csv.NewReader(strings.NewReader(table))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no data rows: statement has no header row")
	}

	cols, err := indexColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	txns := make([]models.Transaction, 0, len(rows))
	for i, rec := range rows {
		dateText := strings.TrimSpace(field(rec, cols[colDate]))
		if dateText == "" {
			// Trailing blank row, not an error.
			continue
		}

		date, err := parseStatementDate(dateText)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		amount, err := parseSignedAmount(field(rec, cols[colDebit]), field(rec, cols[colCredit]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		code := strings.TrimSpace(field(rec, cols[colCode]))
		refs := rowRefs{
			Ref1:  field(rec, cols[colRef1]),
			Ref2:  field(rec, cols[colRef2]),
			Ref3:  field(rec, cols[colRef3]),
			Debit: amount.IsNegative(),
		}

		payee, notes := cleanerFor(code)(refs)

		// Final PII pass over both user-visible text fields, independent of
		// what the per-type cleaner produced.
		txns = append(txns, models.Transaction{
			Date:                date,
			Description:         stripCardNumbers(payee),
			OriginalDescription: originalText(rec, cols, refs),
			Amount:              amount,
			TransactionCode:     codes.Resolve(code),
			Notes:               stripCardNumbers(notes),
		})
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("no data rows: statement contains only the header")
	}

	return txns, nil
}

// indexColumns maps normalized header names to their positions and verifies
// every required column is present.
func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("statement header is missing required columns: %s",
			strings.Join(missing, ", "))
	}
	return cols, nil
}

// field returns the column value, tolerating short (truncated) rows.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// originalText preserves the row's raw descriptive text for the audit
// trail: the bank's Description column when present, otherwise the joined
// reference fields.
func originalText(rec []string, cols map[string]int, refs rowRefs) string {
	if idx, ok := cols[colDesc]; ok {
		if desc := strings.TrimSpace(field(rec, idx)); desc != "" {
			return desc
		}
	}
	return collapseSpaces(strings.Join([]string{refs.Ref1, refs.Ref2, refs.Ref3}, " "))
}
