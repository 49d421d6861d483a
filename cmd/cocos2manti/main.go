package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/config"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/engine"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/logging"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/system"
)

// BuildVersion is set at link time.
var BuildVersion = "dev"

func main() {
	configPtr := flag.String("config", "", "Config file (.yaml, .yml or .toml)")
	rootPtr := flag.String("root", "", "Directory scanned for asset dirs (default: config root or current dir)")
	exportPtr := flag.String("export", "", "Export dir, relative to root unless absolute")
	workersPtr := flag.Int("workers", -1, "Parallel asset dirs (0: one per logical CPU)")
	compressionPtr := flag.String("compression", "", "Extra compressed bundle copy: none, gzip, zstd")
	statsPtr := flag.Bool("stats", false, "Print the performance report and append to benchmark.log")
	levelPtr := flag.String("log-level", "", "Log level: debug, info, warn, error")
	devPtr := flag.Bool("dev", false, "Human readable console logs")
	noAtlasPtr := flag.Bool("no-atlas", false, "Skip atlas packing")
	skeletonsPtr := flag.Bool("skeletons", false, "Export Spine skeletons")
	dumpRangesPtr := flag.Bool("dump-ranges", false, "Write <element>.anim.yaml range catalogs and exit")
	inspectPtr := flag.String("inspect", "", "Print the clips of a bundle file and exit")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}
	cfg.BuildVersion = BuildVersion

	// Флаги важнее файла и окружения
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.Root = *rootPtr
		case "export":
			cfg.ExportDir = *exportPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "compression":
			cfg.Compression = *compressionPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "log-level":
			cfg.Log.Level = *levelPtr
		case "dev":
			cfg.Log.Development = *devPtr
		case "no-atlas":
			cfg.Steps.Atlas = !*noAtlasPtr
		case "skeletons":
			cfg.Steps.Skeletons = *skeletonsPtr
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	system.InitResourceLimits(logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *inspectPtr != "" {
		if err := engine.Inspect(os.Stdout, *inspectPtr); err != nil {
			sugar.Fatalf("[-] inspect %s: %v", *inspectPtr, err)
		}
		return
	}

	if *dumpRangesPtr {
		n, err := engine.DumpRanges(ctx, cfg.Root, logger.Logger)
		if err != nil {
			sugar.Fatalf("[-] dump ranges: %v", err)
		}
		sugar.Infof("[+] Range catalogs written: %d", n)
		return
	}

	project := engine.NewBundleProject(cfg, logger.Logger)
	sugar.Infof("[*] Run %s | root: %s | build: %s", project.RunID(), cfg.Root, cfg.BuildVersion)

	report, err := project.Run(ctx)
	if err != nil {
		logger.Error("run failed", zap.String("run_id", project.RunID()), zap.Error(err))
		os.Exit(1)
	}

	bundles, stats := report.Totals()
	fmt.Printf("[+++] Готово! Бандлов: %d, элементов: %d, клипов: %d (%.2fs)\n",
		bundles, stats.Elements, stats.Clips, report.Total.Seconds())
}
