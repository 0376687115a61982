// Package classifier assigns spending categories to parsed transactions via
// a remote model. Records are anonymised before anything leaves the process
// and restored as soon as the response arrives.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.5-flash"

// Item is one transaction as presented to the remote classifier. Only the
// already-masked description, the scrubbed notes, and the resolved
// transaction code are included — never OriginalPII or raw identity data.
type Item struct {
	Index           int    `json:"index"`
	Payee           string `json:"payee"`
	Notes           string `json:"notes"`
	TransactionType string `json:"transactionType"`
}

// Result is one category assignment returned by the classifier. The model
// may return results in any order and is allowed to cover only a subset of
// the submitted indices.
type Result struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
}

// Classifier is the consumed interface to the remote categorisation model.
type Classifier interface {
	Classify(ctx context.Context, items []Item, categories []string) ([]Result, error)
}

// Gemini calls the Gemini API to classify transaction batches.
type Gemini struct {
	Model string
}

// NewGemini returns a Gemini classifier for the given model name, falling
// back to DefaultModelName when empty. The API key is read from the
// environment by the genai client.
func NewGemini(model string) *Gemini {
	if model == "" {
		model = DefaultModelName
	}
	return &Gemini{Model: model}
}

// Classify sends one batch of items and parses the JSON assignments.
func (g *Gemini) Classify(ctx context.Context, items []Item, categories []string) ([]Result, error) {
	if len(items) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("classify: marshal items: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("classify: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(categories)},
				{Text: string(payload)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("classify: generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("classify: empty response from model")
	}

	var results []Result
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &results); err != nil {
		return nil, fmt.Errorf("classify: unmarshal response: %w\nraw response: %s", err, raw)
	}
	return results, nil
}

// buildPrompt produces the instruction block sent ahead of the item batch.
func buildPrompt(categories []string) string {
	var b strings.Builder
	b.WriteString("You are a personal-finance transaction categoriser.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- You will receive a JSON array of transactions, each with \"index\", \"payee\", \"notes\" and \"transactionType\".\n")
	b.WriteString("- Assign each transaction the single best spending category.\n")
	b.WriteString("- Output STRICT JSON only: an array of {\"index\": number, \"category\": string}.\n")
	b.WriteString("- Skip a transaction entirely rather than guessing wildly.\n\n")

	b.WriteString("Use ONLY the following categories:\n")
	for _, c := range categories {
		b.WriteString("  - " + c + "\n")
	}

	b.WriteString("\nReturn ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences or Markdown.\n")
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String()
}

// extractJSONArray recovers the JSON array from a model response that may
// have ignored the no-Markdown instruction.
func extractJSONArray(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			return s[start : end+1]
		}
	}
	return s
}

// BuildItems maps records to the outbound wire shape. It reads nothing but
// Description, Notes and TransactionCode, so a masked batch can never leak
// the identities held in OriginalPII.
func BuildItems(records []models.Transaction) []Item {
	items := make([]Item, len(records))
	for i, rec := range records {
		items[i] = Item{
			Index:           i,
			Payee:           rec.Description,
			Notes:           rec.Notes,
			TransactionType: rec.TransactionCode,
		}
	}
	return items
}
