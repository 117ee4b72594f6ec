// Package main provides the normalizer command-line tool that turns the raw
// HelloWork CSV into the clean dataset used for analysis.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"emploiscan/internal/config"
	"emploiscan/internal/csvio"
	"emploiscan/internal/models"
	"emploiscan/internal/normalizer"
	"emploiscan/internal/report"
	"emploiscan/internal/validator"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	input := flag.String("input", "", "Raw CSV file path (overrides config)")
	output := flag.String("output", "", "Clean CSV file path (overrides config)")
	dedupe := flag.Bool("dedupe", false, "Drop duplicate listings (same title, company and city)")
	preview := flag.Int("preview", 0, "Preview rows to print after cleaning (overrides config)")
	showValidation := flag.Bool("validate", false, "Validate raw listings before cleaning")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)

	// Apply CLI overrides
	if *input != "" {
		cfg.Normalizer.InputPath = *input
	}

	if *output != "" {
		cfg.Normalizer.OutputPath = *output
	}

	if *dedupe {
		cfg.Normalizer.Dedupe = true
	}

	if *preview > 0 {
		cfg.Normalizer.PreviewRows = *preview
	}

	fmt.Println("--- 🧹 Démarrage du Pipeline de Traitement des Données ---")

	inputPath := cfg.Normalizer.InputPath
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Printf("❌ ERREUR CRITIQUE : Le fichier %s est introuvable.\n", inputPath)
		os.Exit(1)
	}

	raw, skipped, err := csvio.ReadRawListings(inputPath)
	if err != nil {
		log.Fatalf("❌ Failed to load raw listings: %v\n", err)
	}

	fmt.Printf("✅ Chargement réussi : %d lignes brutes importées.\n", len(raw))

	if skipped > 0 {
		fmt.Printf("⚠️  %d lignes incomplètes ignorées.\n", skipped)
	}

	if *showValidation {
		if !validateRaw(cfg, raw) {
			log.Fatalf("❌ Validation failed, aborting\n")
		}
	}

	fmt.Println("... Normalisation des salaires (Mensuel/Horaire -> Annuel)")
	fmt.Println("... Nettoyage sémantique des titres")
	fmt.Println("... Structuration géographique (Ville / Département)")

	n := normalizer.NewNormalizerWithConfig(cfg)

	clean, stats := n.NormalizeAll(raw)
	stats.RowsSkipped = skipped

	if err := csvio.WriteCleanListings(cfg.Normalizer.OutputPath, clean); err != nil {
		log.Fatalf("❌ Save failed: %v\n", err)
	}

	if cfg.Features.EnablePreview && cfg.Normalizer.PreviewRows > 0 && len(clean) > 0 {
		fmt.Printf("\n📈 Aperçu des données nettoyées (premières %d lignes) :\n", cfg.Normalizer.PreviewRows)
		fmt.Print(report.CleanPreview(clean, cfg.Normalizer.PreviewRows))
	}

	fmt.Println("\n--- 🎉 TRAITEMENT TERMINÉ ---")
	fmt.Printf("Fichier final généré : %s\n", cfg.Normalizer.OutputPath)
	fmt.Println("Statistiques :")
	fmt.Printf(" - Offres uniques : %d\n", stats.RowsWritten)
	fmt.Printf(" - Salaires exploitables : %d\n", stats.SalariesParsed)

	if stats.DuplicatesDropped > 0 {
		fmt.Printf(" - Doublons supprimés : %d\n", stats.DuplicatesDropped)
	}
}

// validateRaw checks the raw rows before cleaning. Returns false when the
// result is invalid and the config does not allow continuing.
func validateRaw(cfg *config.Config, raw []models.RawListing) bool {
	fmt.Println("\n🔍 Validating raw listings...")

	listingValidator, err := validator.NewListingValidator(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create validator: %v\n", err)
	}

	valResult := listingValidator.ValidateListings(raw)
	valResult.PrintWarnings()

	if !valResult.IsValid {
		valResult.PrintErrors()
	}

	fmt.Printf("%s\n\n", valResult)

	if !valResult.IsValid && !cfg.Advanced.ContinueOnValidationErrors {
		return false
	}

	return true
}

func loadConfig(configFile string) *config.Config {
	cfg, source, err := config.LoadOrDefault(configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if source != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", source)
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: ./bin/normalizer [OPTIONS]")
	fmt.Println()
	fmt.Println("Modes:")
	fmt.Println("  1. Config-based:   ./bin/normalizer -config configs/pipeline.yaml")
	fmt.Println("  2. Default config: ./bin/normalizer (reads configs/pipeline.yaml if exists)")
	fmt.Println("  3. CLI arguments:  ./bin/normalizer -input <PATH> -output <PATH>")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/normalizer -config configs/pipeline.yaml")
	fmt.Println("  ./bin/normalizer -input data/offres_hellowork.csv -output data/offres_clean.csv")
	fmt.Println("  ./bin/normalizer -input data/offres_hellowork.csv -dedupe -preview 10")
}
