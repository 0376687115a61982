package classifier

import (
	"context"
	"fmt"

	"github.com/ledgerlift/statement-categoriser/internal/anonymiser"
	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// Service runs the full enrichment round trip: mask personal names, send the
// masked batch to the classifier, apply the returned categories, restore the
// real names.
type Service struct {
	Classifier Classifier
	Categories []string
}

// NewService wires a classifier with a category taxonomy.
func NewService(c Classifier, categories []string) *Service {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Service{Classifier: c, Categories: categories}
}

// Enrich returns new records carrying category assignments, with
// descriptions identical to the input (masking is undone before return).
// Input records are never mutated. Indices the classifier did not cover
// keep an empty Category.
func (s *Service) Enrich(ctx context.Context, records []models.Transaction, whitelist map[string]bool) ([]models.Transaction, error) {
	if len(records) == 0 {
		return nil, nil
	}

	masked := anonymiser.Anonymise(records, whitelist)

	results, err := s.Classifier.Classify(ctx, BuildItems(masked), s.Categories)
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	ApplyResults(masked, results)
	return anonymiser.Restore(masked), nil
}

// ApplyResults writes the returned categories onto the batch in place.
// Out-of-range indices are ignored; the model occasionally invents them.
func ApplyResults(records []models.Transaction, results []Result) {
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(records) {
			continue
		}
		records[r.Index].Category = r.Category
	}
}
