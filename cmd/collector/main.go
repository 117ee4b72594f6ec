// Package main provides the collector command-line tool for scraping job
// listings from HelloWork into a raw CSV dataset.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"emploiscan/internal/collector"
	"emploiscan/internal/config"
	"emploiscan/internal/csvio"
	"emploiscan/internal/logger"
	"emploiscan/internal/models"
	"emploiscan/internal/report"
	"emploiscan/internal/validator"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	query := flag.String("query", "", "Search keywords (overrides config, empty = France entière)")
	pages := flag.Int("pages", 0, "Maximum result pages to fetch (overrides config)")
	output := flag.String("output", "", "Output CSV file path (overrides config)")
	localFile := flag.String("file", "", "Local HTML search page to parse (bypasses scraping)")
	showValidation := flag.Bool("validate", false, "Validate collected listings before saving")
	initConfig := flag.Bool("init", false, "Write the default configuration to "+config.DefaultConfigPath+" and exit")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	if *initConfig {
		runInitConfig()

		return
	}

	cfg := loadConfig(*configFile)

	// Apply CLI overrides
	if *query != "" {
		cfg.Collector.Search.Keywords = *query
	}

	if *pages > 0 {
		cfg.Collector.Search.MaxPages = *pages
	}

	if *output != "" {
		cfg.Collector.Output.Path = *output
	}

	// If a local file is provided, use local file mode
	if *localFile != "" {
		runLocalFileMode(cfg, *localFile, *showValidation)

		return
	}

	printCollectorHeader(cfg)

	appLog := logger.NewLogger(cfg.Logging.Level)

	c, err := collector.NewCollector(cfg, appLog)
	if err != nil {
		log.Fatalf("❌ Failed to create collector: %v\n", err)
	}

	fmt.Println("⏳ Collecte des offres en cours...")

	listings, err := c.CollectAll()
	if err != nil {
		log.Fatalf("❌ ÉCHEC : %v\n", err)
	}

	if cfg.Logging.Level == "debug" {
		c.LogAttemptSummary()
	}

	if len(listings) == 0 {
		fmt.Println("❌ ÉCHEC : Aucune donnée récupérée.")
		os.Exit(1)
	}

	validateAndSave(cfg, listings, *showValidation)
}

// validateAndSave runs the optional validation gate, then writes the raw CSV.
func validateAndSave(cfg *config.Config, listings []models.RawListing, showValidation bool) {
	if showValidation || cfg.Features.StrictValidation {
		fmt.Println("\n🔍 Validating collected listings...")

		listingValidator, err := validator.NewListingValidator(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to create validator: %v\n", err)
		}

		valResult := listingValidator.ValidateListings(listings)
		valResult.PrintWarnings()

		if !valResult.IsValid {
			valResult.PrintErrors()
		}

		fmt.Printf("%s\n", valResult)

		if !valResult.IsValid && cfg.Features.StrictValidation {
			log.Fatalf("❌ Validation failed in strict mode\n")
		}
	}

	outputPath := cfg.Collector.Output.Path

	// Create backup if file exists
	if cfg.Collector.Output.CreateBackup {
		if _, statErr := os.Stat(outputPath); statErr == nil {
			backupPath := outputPath + ".bak"
			if renameErr := os.Rename(outputPath, backupPath); renameErr != nil {
				fmt.Printf("⚠️  Could not create backup: %v\n", renameErr)
			} else {
				fmt.Printf("💾 Backed up existing file to: %s\n", backupPath)
			}
		}
	}

	if err := csvio.WriteRawListings(outputPath, listings); err != nil {
		log.Fatalf("❌ Save failed: %v\n", err)
	}

	if cfg.Logging.SampleListings > 0 {
		fmt.Printf("\n📊 Sample listings (first %d):\n", cfg.Logging.SampleListings)
		fmt.Print(report.RawPreview(listings, cfg.Logging.SampleListings))
	}

	fmt.Printf("\n✨ SUCCÈS ! Fichier '%s' généré avec %d lignes.\n", outputPath, len(listings))
}

// runLocalFileMode extracts listings from a search page saved on disk.
func runLocalFileMode(cfg *config.Config, filePath string, showValidation bool) {
	fmt.Println("🕷️  EmploiScan Collector - Local File Mode")
	fmt.Printf("📂 Source file: %s\n", filePath)
	fmt.Println()

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Fatalf("❌ Local file not found: %s\n", filePath)
	}

	appLog := logger.NewLogger(cfg.Logging.Level)

	c, err := collector.NewCollector(cfg, appLog)
	if err != nil {
		log.Fatalf("❌ Failed to create collector: %v\n", err)
	}

	fmt.Println("⏳ Reading local file...")

	listings, fileSize, err := c.CollectFromFileWithMetrics(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to parse file: %v\n", err)
	}

	fmt.Printf("✅ Successfully read %d bytes\n", fileSize)
	fmt.Printf("✅ %d offres extraites\n", len(listings))

	if len(listings) == 0 {
		fmt.Println("❌ ÉCHEC : Aucune donnée récupérée.")
		os.Exit(1)
	}

	validateAndSave(cfg, listings, showValidation)
}

// runInitConfig writes the default configuration file for later editing.
func runInitConfig() {
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		log.Fatalf("❌ %s already exists, refusing to overwrite\n", config.DefaultConfigPath)
	}

	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Fatalf("❌ Could not create configs directory: %v\n", err)
	}

	if err := config.Default().SaveConfig(config.DefaultConfigPath); err != nil {
		log.Fatalf("❌ Could not write config: %v\n", err)
	}

	fmt.Printf("✅ Wrote default configuration to %s\n", config.DefaultConfigPath)
}

func loadConfig(configFile string) *config.Config {
	cfg, source, err := config.LoadOrDefault(configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if source != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", source)
		fmt.Printf("✅ Configuration loaded: %s\n\n", cfg)
	} else {
		fmt.Println("⚙️  Using built-in defaults")
		fmt.Println()
	}

	return cfg
}

func printCollectorHeader(cfg *config.Config) {
	search := cfg.Collector.Search

	keywords := search.Keywords
	if keywords == "" {
		keywords = "France entière"
	}

	fmt.Println("🕷️  EmploiScan Collector")
	fmt.Printf("Recherche: %s | Objectif: %d offres | Pages max: %d\n",
		keywords, search.TargetListings, search.MaxPages)
	fmt.Printf("Retry policy: max %d attempts, %.1fx backoff\n",
		cfg.Collector.Retry.MaxAttempts,
		cfg.Collector.Retry.BackoffMultiplier)
	fmt.Printf("Output: %s\n", cfg.Collector.Output.Path)
	fmt.Println()
}

func printUsage() {
	fmt.Println("Usage: ./bin/collector [OPTIONS]")
	fmt.Println()
	fmt.Println("Modes:")
	fmt.Println("  1. Config-based:   ./bin/collector -config configs/pipeline.yaml")
	fmt.Println("  2. Default config: ./bin/collector (reads configs/pipeline.yaml if exists)")
	fmt.Println("  3. CLI arguments:  ./bin/collector -query <TERMS> -pages <N> -output <PATH>")
	fmt.Println("  4. Local file:     ./bin/collector -file <PATH> [-output <PATH>]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/collector -config configs/pipeline.yaml")
	fmt.Println("  ./bin/collector -query \"data analyst\" -pages 10 -output data/offres_hellowork.csv")
	fmt.Println("  ./bin/collector -file test/fixtures/search_page.html -output data/offres_test.csv")
	fmt.Println("  ./bin/collector -config configs/pipeline.yaml -validate")
}
