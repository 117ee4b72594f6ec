// Package main provides the unified pipeline command that combines collecting
// and normalizing into a single run.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"emploiscan/internal/collector"
	"emploiscan/internal/config"
	"emploiscan/internal/csvio"
	"emploiscan/internal/logger"
	"emploiscan/internal/normalizer"
)

func main() {
	// 1. Define Command-Line Flags
	// ----------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	skipCollect := flag.Bool("skip-collect", false, "Skip collection and normalize the existing raw CSV")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	// Initialize Logger
	log := logger.NewLogger("info")

	// Load Configuration
	cfg, source, err := config.LoadOrDefault(*configFile)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to load config: %v", err))
		os.Exit(1)
	}

	log.SetLevel(cfg.Logging.Level)

	if *verbose {
		log.SetLevel("debug")
	}

	log.Info("🚀 Starting EmploiScan Pipeline")

	if source != "" {
		log.Info(fmt.Sprintf("⚙️  Configuration: %s", source))
	}

	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Collector.Search.BaseURL))
	log.Info(fmt.Sprintf("🎯 Target: %s", cfg.Normalizer.OutputPath))

	startTime := time.Now()

	// 2. Collection (Scraping)
	// ------------------------
	rawCount := 0
	inputPath := cfg.Normalizer.InputPath

	if *skipCollect {
		log.Info("Phase 1: Collection skipped (-skip-collect)")
	} else {
		log.Info("Phase 1: Collection (Scraping)...")

		collectStart := time.Now()

		c, err := collector.NewCollector(cfg, log)
		if err != nil {
			log.Error(fmt.Sprintf("❌ Failed to create collector: %v", err))
			os.Exit(1)
		}

		listings, err := c.CollectAll()
		if err != nil {
			log.Error(fmt.Sprintf("❌ Collection failed: %v", err))
			os.Exit(1)
		}

		if len(listings) == 0 {
			log.Error("❌ ÉCHEC : Aucune donnée récupérée.")
			os.Exit(1)
		}

		if err := csvio.WriteRawListings(cfg.Collector.Output.Path, listings); err != nil {
			log.Error(fmt.Sprintf("❌ Save failed: %v", err))
			os.Exit(1)
		}

		rawCount = len(listings)
		// The cleaner reads what was just collected
		inputPath = cfg.Collector.Output.Path

		log.Info(fmt.Sprintf("✅ Collected %d listings in %v", rawCount, time.Since(collectStart)))
	}

	// 3. Normalization (Cleaning)
	// ---------------------------
	log.Info("Phase 2: Normalization (Cleaning)...")

	processStart := time.Now()

	n := normalizer.NewNormalizerWithConfig(cfg)

	stats, err := n.Run(inputPath, cfg.Normalizer.OutputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Normalization failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Cleaned %d rows in %v", stats.RowsWritten, time.Since(processStart)))

	// 4. Final Report
	// ---------------
	log.Info("✨ Pipeline Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")

	if !*skipCollect {
		fmt.Printf("Listings collected: %d\n", rawCount)
	}

	fmt.Printf("Raw input: %s\n", inputPath)
	fmt.Printf("Clean output: %s\n", cfg.Normalizer.OutputPath)
	fmt.Printf("Rows written: %d\n", stats.RowsWritten)
	fmt.Printf("Salaries parsed: %d (%d missing)\n", stats.SalariesParsed, stats.SalariesMissing)

	if stats.RowsSkipped > 0 {
		fmt.Printf("Rows skipped: %d\n", stats.RowsSkipped)
	}

	if stats.DuplicatesDropped > 0 {
		fmt.Printf("Duplicates dropped: %d\n", stats.DuplicatesDropped)
	}

	fmt.Printf("Total Duration: %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")
}
