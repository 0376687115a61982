package writer

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlift/statement-categoriser/internal/codes"
	"github.com/ledgerlift/statement-categoriser/internal/models"
)

func sampleTxns() []models.Transaction {
	return []models.Transaction{
		{
			Date:                time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC),
			Description:         "Noodle House Stall",
			OriginalDescription: "POS TO: NOODLE HOUSE STALL",
			Amount:              decimal.RequireFromString("-9.3"),
			TransactionCode:     codes.PointOfSale,
			Category:            "Food & Dining",
		},
		{
			Date:            time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			Description:     "Ng Soo Im",
			Amount:          decimal.RequireFromString("120"),
			TransactionCode: codes.FASTReceipt,
			Notes:           "san lor horfun",
			OriginalPII:     map[string]string{"Alex Tan": "Ng Soo Im"},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleTxns()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"Date", "Description", "Category", "Type", "Amount", "Notes"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	first := rows[1]
	if first[0] != "2024-02-14" || first[1] != "Noodle House Stall" || first[2] != "Food & Dining" {
		t.Errorf("row 1: %v", first)
	}
	if first[4] != "-9.30" {
		t.Errorf("amount must carry two decimal places, got %q", first[4])
	}

	second := rows[2]
	if second[4] != "120.00" || second[5] != "san lor horfun" {
		t.Errorf("row 2: %v", second)
	}
}

func TestWriteIncludeOriginal(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeOriginal: true}
	if err := w.Write(&buf, sampleTxns()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if rows[0][6] != "Original Description" {
		t.Errorf("header: %v", rows[0])
	}
	if rows[1][6] != "POS TO: NOODLE HOUSE STALL" {
		t.Errorf("row 1 original: %q", rows[1][6])
	}
}

func TestWriteNeverSerializesPII(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeOriginal: true}
	if err := w.Write(&buf, sampleTxns()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "Alex Tan") {
		t.Error("placeholder map leaked into the export")
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleTxns()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "Date,Description,Category,Type,Amount,Notes") {
		t.Errorf("unexpected file contents: %q", string(data))
	}
}
