// Package api exposes the statement pipeline over HTTP.
package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerlift/statement-categoriser/internal/anonymiser"
	"github.com/ledgerlift/statement-categoriser/internal/classifier"
	"github.com/ledgerlift/statement-categoriser/internal/models"
	"github.com/ledgerlift/statement-categoriser/internal/parser"
)

const apiVersion = "1.0.0"

// ConvertResponse is the JSON response for /api/convert and /api/classify.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	RequestID    string               `json:"requestId,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	TotalDebit   string               `json:"totalDebit"`
	TotalCredit  string               `json:"totalCredit"`
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	Registry  *parser.Registry
	Service   *classifier.Service
	Whitelist *anonymiser.WhitelistStore
	Log       zerolog.Logger
}

// Register sets up the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	app.Post("/api/classify", h.HandleClassify)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": apiVersion,
	})
}

// HandleConvert parses an uploaded CSV export and returns the normalized
// records without touching the classifier.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	txns, err := h.parseUpload(c)
	if err != nil {
		h.Log.Warn().Err(err).Str("request_id", requestID).Msg("convert failed")
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	h.Log.Info().Str("request_id", requestID).Int("transactions", len(txns)).Msg("statement converted")
	return c.JSON(buildResponse(requestID, txns))
}

// HandleClassify runs the full pipeline: parse, anonymise, classify
// remotely, restore, and return enriched records.
func (h *Handler) HandleClassify(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	txns, err := h.parseUpload(c)
	if err != nil {
		h.Log.Warn().Err(err).Str("request_id", requestID).Msg("classify failed at parse")
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	enriched, err := h.Service.Enrich(c.UserContext(), txns, h.Whitelist.Load())
	if err != nil {
		h.Log.Error().Err(err).Str("request_id", requestID).Msg("classification failed")
		return writeError(c, fiber.StatusBadGateway, fmt.Sprintf("classification failed: %v", err))
	}

	h.Log.Info().Str("request_id", requestID).Int("transactions", len(enriched)).Msg("statement classified")
	return c.JSON(buildResponse(requestID, enriched))
}

// parseUpload reads the multipart "file" field and runs format detection.
func (h *Handler) parseUpload(c *fiber.Ctx) ([]models.Transaction, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("no file uploaded; use form field 'file'")
	}

	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return nil, fmt.Errorf("only CSV exports are supported, got %q", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return h.Registry.DetectAndParse(string(raw))
}

func buildResponse(requestID string, txns []models.Transaction) ConvertResponse {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, txn := range txns {
		if txn.IsDebit() {
			totalDebit = totalDebit.Add(txn.Amount.Abs())
		} else {
			totalCredit = totalCredit.Add(txn.Amount)
		}
	}

	// nil marshals to JSON null, not [].
	if txns == nil {
		txns = []models.Transaction{}
	}

	return ConvertResponse{
		Success:      true,
		RequestID:    requestID,
		Bank:         string(models.BankDBS),
		Transactions: txns,
		Count:        len(txns),
		TotalDebit:   totalDebit.StringFixed(2),
		TotalCredit:  totalCredit.StringFixed(2),
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
		TotalDebit:   "0.00",
		TotalCredit:  "0.00",
	})
}
