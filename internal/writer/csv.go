// Package writer serializes enriched transaction records for download.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// CSVWriter writes transaction records as CSV.
type CSVWriter struct {
	// IncludeOriginal adds the raw audit-trail description column.
	IncludeOriginal bool
}

// WriteToFile writes the records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes the records in CSV format to out. OriginalPII is never
// serialized; the export is safe to share.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Date", "Description", "Category", "Type", "Amount", "Notes"}
	if w.IncludeOriginal {
		header = append(header, "Original Description")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Category,
			txn.TransactionCode,
			txn.Amount.StringFixed(2),
			txn.Notes,
		}
		if w.IncludeOriginal {
			row = append(row, txn.OriginalDescription)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}
