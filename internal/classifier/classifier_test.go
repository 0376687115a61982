package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlift/statement-categoriser/internal/codes"
	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// fakeClassifier records what crossed the boundary and replays canned
// results, standing in for the remote model.
type fakeClassifier struct {
	gotItems      []Item
	gotCategories []string
	results       []Result
	err           error
}

func (f *fakeClassifier) Classify(_ context.Context, items []Item, categories []string) ([]Result, error) {
	f.gotItems = items
	f.gotCategories = categories
	return f.results, f.err
}

func txn(desc, code string) models.Transaction {
	return models.Transaction{
		Date:                time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC),
		Description:         desc,
		OriginalDescription: desc,
		Amount:              decimal.RequireFromString("-10.00"),
		TransactionCode:     code,
	}
}

func TestBuildItems(t *testing.T) {
	records := []models.Transaction{
		{
			Description:         "Noodle House Stall",
			OriginalDescription: "POS TO: NOODLE HOUSE STALL 4111111111111111",
			Notes:               "lunch",
			TransactionCode:     codes.PointOfSale,
			OriginalPII:         map[string]string{"Alex Tan": "Alice Wong"},
		},
	}

	items := BuildItems(records)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Index != 0 || got.Payee != "Noodle House Stall" || got.Notes != "lunch" || got.TransactionType != codes.PointOfSale {
		t.Errorf("unexpected item: %+v", got)
	}
	// The raw statement text and the PII map must never reach the wire shape.
	if strings.Contains(got.Payee, "4111") || strings.Contains(got.Notes, "Alice") {
		t.Errorf("item leaks identity data: %+v", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	want := `[{"index":0,"category":"Transport"}]`

	tests := []struct {
		name string
		raw  string
	}{
		{"bare", want},
		{"surrounding whitespace", "\n  " + want + "\n"},
		{"fenced", "```\n" + want + "\n```"},
		{"fenced with language tag", "```json\n" + want + "\n```"},
		{"leading prose", "Here you go:\n" + want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.raw); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt([]string{"Food & Dining", "Transport"})
	if !strings.Contains(prompt, "Food & Dining") || !strings.Contains(prompt, "Transport") {
		t.Error("prompt must list the allowed categories")
	}
	if !strings.Contains(prompt, "STRICT JSON") {
		t.Error("prompt must demand strict JSON output")
	}
}

func TestApplyResults(t *testing.T) {
	records := []models.Transaction{
		txn("Noodle House Stall", codes.PointOfSale),
		txn("Bus/Mrt", codes.DebitCard),
		txn("Ng Soo Im", codes.FASTReceipt),
	}

	ApplyResults(records, []Result{
		{Index: 2, Category: "Transfers"},
		{Index: 0, Category: "Food & Dining"},
		{Index: 99, Category: "Shopping"},
		{Index: -1, Category: "Shopping"},
	})

	if records[0].Category != "Food & Dining" {
		t.Errorf("record 0: got %q", records[0].Category)
	}
	if records[1].Category != "" {
		t.Errorf("uncovered record must keep an empty category, got %q", records[1].Category)
	}
	if records[2].Category != "Transfers" {
		t.Errorf("record 2: got %q", records[2].Category)
	}
}

func TestServiceEnrich(t *testing.T) {
	fake := &fakeClassifier{results: []Result{
		{Index: 0, Category: "Transfers"},
		{Index: 1, Category: "Food & Dining"},
	}}
	svc := NewService(fake, nil)

	records := []models.Transaction{
		txn("Alice Wong", codes.FASTReceipt),
		txn("Noodle House Stall", codes.PointOfSale),
	}

	enriched, err := svc.Enrich(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The batch crossing the boundary must carry the placeholder, never the
	// real name; merchant payees go out as-is.
	if fake.gotItems[0].Payee == "Alice Wong" {
		t.Error("personal name crossed the classifier boundary unmasked")
	}
	if fake.gotItems[1].Payee != "Noodle House Stall" {
		t.Errorf("merchant payee must go out unmasked, got %q", fake.gotItems[1].Payee)
	}
	if len(fake.gotCategories) != len(DefaultCategories) {
		t.Errorf("expected default taxonomy, got %d categories", len(fake.gotCategories))
	}

	// The caller gets real names back, with categories attached.
	if enriched[0].Description != "Alice Wong" {
		t.Errorf("description not restored: %q", enriched[0].Description)
	}
	if enriched[0].Category != "Transfers" || enriched[1].Category != "Food & Dining" {
		t.Errorf("categories not applied: %q, %q", enriched[0].Category, enriched[1].Category)
	}

	// The input batch is untouched.
	if records[0].Category != "" || records[0].Description != "Alice Wong" {
		t.Errorf("input records mutated: %+v", records[0])
	}
}

func TestServiceEnrichEmptyBatch(t *testing.T) {
	fake := &fakeClassifier{}
	svc := NewService(fake, nil)

	enriched, err := svc.Enrich(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enriched != nil {
		t.Errorf("empty batch should yield nil, got %v", enriched)
	}
	if fake.gotItems != nil {
		t.Error("classifier must not be called for an empty batch")
	}
}

func TestServiceEnrichClassifierError(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("quota exhausted")}
	svc := NewService(fake, []string{"Transport"})

	_, err := svc.Enrich(context.Background(), []models.Transaction{txn("Bus/Mrt", codes.DebitCard)}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "quota exhausted") {
		t.Errorf("error %q should wrap the classifier failure", err.Error())
	}
}

func TestNewGeminiDefaultsModel(t *testing.T) {
	if got := NewGemini("").Model; got != DefaultModelName {
		t.Errorf("got %q, want %q", got, DefaultModelName)
	}
	if got := NewGemini("gemini-2.5-pro").Model; got != "gemini-2.5-pro" {
		t.Errorf("got %q, want gemini-2.5-pro", got)
	}
}
