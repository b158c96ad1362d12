package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/config"
	"github.com/garyjia/stocklist/internal/ingest"
	"github.com/garyjia/stocklist/internal/report"
	"github.com/garyjia/stocklist/internal/segment"
	"github.com/garyjia/stocklist/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	inputPath := flag.String("input", "", "input workbook (overrides config)")
	flag.Parse()

	// A bare positional argument also names the input workbook.
	if *inputPath == "" && flag.NArg() > 0 {
		*inputPath = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rules := segment.LoadRules(cfg.Segment.RulesPath, logger)
	extractor := segment.NewExtractor(rules, logger)
	reader := ingest.NewReader(extractor, logger)
	generator := report.NewGenerator(report.Config{
		InputFile:    cfg.Report.InputFile,
		OutputDir:    cfg.Report.OutputDir,
		OutputPrefix: cfg.Report.OutputPrefix,
		UseTimestamp: cfg.Report.UseTimestamp,
	}, reader, logger)

	result, err := generator.Generate(context.Background(), *inputPath)
	if err != nil {
		logger.Error("Generation failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := extractor.SaveRules(cfg.Segment.RulesPath); err != nil {
		logger.Warn("Failed to save segmentation rules", zap.Error(err))
	}

	fmt.Printf("Generated %s (%d records, %d types, %d pieces)\n",
		result.OutputPath, result.RecordCount, result.TypeCount, result.GrandTotal)
}
