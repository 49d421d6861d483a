package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/atlas"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/bundle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/config"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/packer"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/particle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/skeleton"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/system"
)

// DefaultBenchmarkLog is appended to when stats are enabled.
const DefaultBenchmarkLog = "benchmark.log"

// ErrMissingTools is returned when an enabled step needs a tool that is not
// on PATH.
var ErrMissingTools = errors.New("engine: required tools not found")

// ErrUnsafeExport is returned when clearing the export dir would remove the
// element documents it is built from.
var ErrUnsafeExport = errors.New("engine: export dir holds element sources")

// target is one platform bundle of an asset dir.
type target struct {
	platform source.Platform
	file     string
}

var targets = []target{
	{platform: source.Desktop, file: "bundle_d.json"},
	{platform: source.Mobile, file: "bundle_m.json"},
}

// BundleProject builds the bundles of every asset dir under the configured
// root.
type BundleProject struct {
	Config *config.Config
	// Runner replaces the external tools when set. Tools are only probed on
	// PATH when it is nil.
	Runner       packer.Runner
	BenchmarkLog string

	logger *zap.Logger
	runID  string
}

func NewBundleProject(cfg *config.Config, logger *zap.Logger) *BundleProject {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	return &BundleProject{
		Config:       cfg,
		BenchmarkLog: DefaultBenchmarkLog,
		logger:       logger.With(zap.String("run_id", runID)),
		runID:        runID,
	}
}

// RunID identifies this run in logs and in the benchmark log.
func (p *BundleProject) RunID() string {
	return p.runID
}

// Run processes the asset dirs in parallel. The first failing dir cancels
// the others and its error is returned.
func (p *BundleProject) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: p.runID, Build: p.Config.BuildVersion}

	if p.Runner == nil {
		if err := p.checkTools(); err != nil {
			return nil, err
		}
	}

	dirs, err := source.FindAssetDirs(ctx, p.Config.Root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Config.Root, err)
	}
	if len(dirs) == 0 {
		p.logger.Warn("no asset dirs found", zap.String("root", p.Config.Root))
	}

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	p.logger.Info("run started",
		zap.Int("asset_dirs", len(dirs)), zap.Int("workers", workers))

	report.Dirs = make([]DirReport, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			r, err := p.buildDir(gctx, dir)
			report.Dirs[i] = r
			if err != nil {
				return fmt.Errorf("asset dir %s: %w", dir.Name, err)
			}
			return nil
		})
	}
	err = g.Wait()
	report.Total = time.Since(start)
	if err != nil {
		return report, err
	}

	if p.Config.ShowStats {
		p.printReport(report)
	}
	return report, nil
}

func (p *BundleProject) checkTools() error {
	var tools []system.Tool
	steps, bins := p.Config.Steps, p.Config.Tools
	if steps.Atlas {
		tools = append(tools, system.Tool{Name: "texture packer", Bin: bins.TexturePacker})
		if steps.WebP {
			tools = append(tools, system.Tool{Name: "webp encoder", Bin: bins.CWebP})
		}
		if steps.Quantize {
			tools = append(tools, system.Tool{Name: "png quantizer", Bin: bins.PNGQuant})
		}
	}
	if steps.Skeletons {
		tools = append(tools, system.Tool{Name: "spine", Bin: bins.Spine})
	}

	missing := system.Missing(system.ProbeTools(tools))
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, t := range missing {
		names[i] = t.Bin
	}
	return fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(names, ", "))
}

func (p *BundleProject) buildDir(ctx context.Context, dir source.AssetDir) (DirReport, error) {
	start := time.Now()
	r := DirReport{Name: dir.Name}
	logger := p.logger.With(zap.String("bundle", dir.Name))
	logger.Info("bundle generation started")

	exportPath := p.Config.ExportPath(dir.Name)
	if source.Within(exportPath, dir.ElementPath()) {
		return r, fmt.Errorf("%w: %s contains %s", ErrUnsafeExport, exportPath, dir.ElementPath())
	}
	if err := source.ResetDir(exportPath); err != nil {
		return r, err
	}

	if !dir.HasElements() {
		logger.Warn("asset dir has no element export, skipped",
			zap.String("path", dir.ElementPath()))
		return r, nil
	}

	fonts, err := font.LoadDir(dir.FontPath(), logger)
	if err != nil {
		return r, err
	}
	seed := bundle.Seed(fonts)
	assets := bundle.Assets{Fonts: fonts}

	if p.Config.Steps.Atlas {
		assets.Pages, err = p.atlasBuilder(logger).Build(ctx, dir, exportPath, fonts, seed)
		if err != nil {
			return r, err
		}
	}
	if p.Config.Steps.Skeletons {
		exporter := skeleton.NewExporter(&packer.Spine{Runner: p.Runner, Bin: p.Config.Tools.Spine}, logger)
		assets.Skeletons, err = exporter.Export(ctx, dir.SpinePath())
		if err != nil {
			return r, err
		}
	}
	if p.Config.Steps.Particles {
		assets.Particles, err = particle.LoadDir(dir.ParticlePath(), logger)
		if err != nil {
			return r, err
		}
	}

	r.Fonts = len(fonts)
	r.Pages = len(assets.Pages)
	if assets.Skeletons != nil {
		r.Skeletons = len(assets.Skeletons.Names)
	}
	if assets.Particles != nil {
		r.Particles = len(assets.Particles.Names)
	}

	compression, err := bundle.ParseCompression(p.Config.Compression)
	if err != nil {
		return r, err
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		br, err := p.buildBundle(dir, t, seed, assets, exportPath, compression, logger)
		if err != nil {
			return r, err
		}
		if br != nil {
			r.Bundles = append(r.Bundles, *br)
		}
	}

	r.Duration = time.Since(start)
	logger.Info("bundle generation finished", zap.Duration("elapsed", r.Duration))
	return r, nil
}

// buildBundle writes the bundle of one platform. It returns nil when the
// platform has no elements or the bundle was rejected.
func (p *BundleProject) buildBundle(dir source.AssetDir, t target, seed *intern.Tables, assets bundle.Assets, exportPath string, c bundle.Compression, logger *zap.Logger) (*BundleReport, error) {
	own, hasOwn, err := dir.Elements(t.platform)
	if err != nil {
		return nil, err
	}
	common, hasCommon, err := dir.Elements(source.Common)
	if err != nil {
		return nil, err
	}
	logger.Info("element lists",
		zap.String("platform", string(t.platform)),
		zap.Bool("own", hasOwn), zap.Bool("common", hasCommon))
	if !hasOwn && !hasCommon {
		logger.Info("no elements for platform, step skipped", zap.String("platform", string(t.platform)))
		return nil, nil
	}

	b := bundle.New(dir.Name, seed, assets, logger)
	for _, path := range append(own, common...) {
		err := b.AddFile(path)
		if errors.Is(err, animation.ErrDuplicateActionTag) {
			logger.Error("bundle rejected",
				zap.String("platform", string(t.platform)), zap.Error(err))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}

	doc := b.Finish()
	written, err := bundle.Write(filepath.Join(exportPath, t.file), doc, c)
	if err != nil {
		return nil, err
	}
	logger.Info("bundle written", zap.Strings("files", written))

	return &BundleReport{
		Platform: t.platform,
		Files:    written,
		Stats:    doc.Stats(),
	}, nil
}

func (p *BundleProject) atlasBuilder(logger *zap.Logger) *atlas.Builder {
	cfg := p.Config
	b := atlas.NewBuilder(&packer.TexturePacker{Runner: p.Runner, Bin: cfg.Tools.TexturePacker}, logger)
	if cfg.Steps.WebP {
		b.WebP = &packer.WebP{Runner: p.Runner, Bin: cfg.Tools.CWebP, Quality: cfg.Tools.WebPQuality}
	}
	if cfg.Steps.Quantize {
		b.Quant = &packer.PNGQuant{Runner: p.Runner, Bin: cfg.Tools.PNGQuant, Quality: cfg.Tools.PNGQuality}
	}
	return b
}

// printReport prints the run summary and appends it to the benchmark log.
func (p *BundleProject) printReport(r *Report) {
	fmt.Print(r.String())

	f, err := os.OpenFile(p.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(r.LogEntry(time.Now())); err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
