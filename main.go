package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerlift/statement-categoriser/internal/anonymiser"
	"github.com/ledgerlift/statement-categoriser/internal/api"
	"github.com/ledgerlift/statement-categoriser/internal/classifier"
	"github.com/ledgerlift/statement-categoriser/internal/config"
	"github.com/ledgerlift/statement-categoriser/internal/logger"
	"github.com/ledgerlift/statement-categoriser/internal/parser"
	"github.com/ledgerlift/statement-categoriser/internal/writer"
)

const version = "1.0.0"

func main() {
	classifyFlag := flag.Bool("classify", false, "Assign spending categories via the remote classifier")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .out.csv extension)")
	originalFlag := flag.Bool("original", false, "Include the raw original description column in the output")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Categoriser

Converts DBS/POSB CSV transaction exports into clean, typed transaction
records, optionally enriched with AI-assigned spending categories.
Personal names on transfer transactions are anonymised before any data
leaves the machine and restored afterwards.

Usage:
  statement-categoriser [flags] <export.csv> [export2.csv ...]
  statement-categoriser -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert an export
  statement-categoriser statement.csv

  # Convert and categorise
  statement-categoriser -classify statement.csv

  # Run the HTTP API
  statement-categoriser -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-categoriser v%s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	log := logger.New()

	categories, err := classifier.LoadCategories(cfg.CategoriesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading categories")
	}

	service := classifier.NewService(classifier.NewGemini(cfg.GeminiModel), categories)
	whitelist := &anonymiser.WhitelistStore{Path: cfg.WhitelistPath}
	registry := parser.Default()

	if *serveFlag {
		app := fiber.New(fiber.Config{AppName: "statement-categoriser"})
		h := &api.Handler{
			Registry:  registry,
			Service:   service,
			Whitelist: whitelist,
			Log:       log,
		}
		h.Register(app)

		log.Info().Str("addr", cfg.ListenAddr).Msg("starting HTTP API")
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, registry, service, whitelist, *classifyFlag, *outputFlag, *originalFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(
	inputPath string,
	registry *parser.Registry,
	service *classifier.Service,
	whitelist *anonymiser.WhitelistStore,
	classify bool,
	outputPath string,
	includeOriginal bool,
) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	txns, err := registry.DetectAndParse(string(raw))
	if err != nil {
		return err
	}
	fmt.Printf("  Parsed %d transaction(s)\n", len(txns))

	if classify {
		enriched, err := service.Enrich(context.Background(), txns, whitelist.Load())
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}
		txns = enriched

		categorised := 0
		for _, t := range txns {
			if t.Category != "" {
				categorised++
			}
		}
		fmt.Printf("  Categorised %d of %d transaction(s)\n", categorised, len(txns))
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".out.csv"
	}

	w := &writer.CSVWriter{IncludeOriginal: includeOriginal}
	if err := w.WriteToFile(outPath, txns); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	return nil
}
