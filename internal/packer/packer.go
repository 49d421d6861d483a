package packer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Default binaries of the external tools.
const (
	TexturePackerBin = "TexturePacker"
	CWebPBin         = "cwebp"
	PNGQuantBin      = "pngquant"
	SpineBin         = "Spine"
)

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s error: %w, output: %s", name, err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func runnerOr(r Runner) Runner {
	if r == nil {
		return ExecRunner{}
	}
	return r
}

func binOr(bin, def string) string {
	if bin == "" {
		return def
	}
	return bin
}

// TexturePacker packs a directory of images into multipack pixijs4 sheets.
type TexturePacker struct {
	Runner Runner
	Bin    string
}

// Pack packs every image under inputDir. dataPattern is the sheet data path
// and must contain the {n} page placeholder.
func (p *TexturePacker) Pack(ctx context.Context, inputDir, dataPattern string) error {
	args := p.buildArgs(inputDir, dataPattern)
	if _, err := runnerOr(p.Runner).Run(ctx, binOr(p.Bin, TexturePackerBin), args...); err != nil {
		return fmt.Errorf("pack %s: %w", inputDir, err)
	}
	return nil
}

func (p *TexturePacker) buildArgs(inputDir, dataPattern string) []string {
	return []string{
		inputDir,
		"--texture-format", "png",
		"--format", "pixijs4",
		"--data", dataPattern,
		"--trim-sprite-names",
		"--algorithm", "MaxRects",
		"--size-constraints", "POT",
		"--force-squared",
		"--pack-mode", "Best",
		"--disable-rotation",
		"--extrude", "2",
		"--border-padding", "1",
		"--common-divisor-x", "1",
		"--common-divisor-y", "1",
		"--trim-mode", "Trim",
		"--trim-threshold", "1",
		"--trim-margin", "1",
		"--opt", "RGBA8888",
		"--multipack",
	}
}

// WebP writes a lossy .webp copy next to a png.
type WebP struct {
	Runner  Runner
	Bin     string
	Quality int
}

// Convert encodes src and returns the path of the .webp file.
func (w *WebP) Convert(ctx context.Context, src string) (string, error) {
	dst := strings.TrimSuffix(src, ".png") + ".webp"
	quality := w.Quality
	if quality <= 0 {
		quality = 85
	}
	args := []string{"-q", strconv.Itoa(quality), src, "-o", dst}
	if _, err := runnerOr(w.Runner).Run(ctx, binOr(w.Bin, CWebPBin), args...); err != nil {
		return "", fmt.Errorf("webp %s: %w", src, err)
	}
	return dst, nil
}

// PNGQuant recompresses pngs in place with a lossy palette.
type PNGQuant struct {
	Runner  Runner
	Bin     string
	Quality string
}

// pngquant exit codes for files it leaves untouched
const (
	quantSkippedLarger = 98
	quantQualityTooLow = 99
)

// Compress rewrites files in place. Files pngquant refuses to shrink are
// kept as they are.
func (q *PNGQuant) Compress(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	quality := q.Quality
	if quality == "" {
		quality = "65-70"
	}
	args := append([]string{
		"--quality=" + quality,
		"--force",
		"--skip-if-larger",
		"--ext", ".png",
	}, files...)

	_, err := runnerOr(q.Runner).Run(ctx, binOr(q.Bin, PNGQuantBin), args...)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case quantSkippedLarger, quantQualityTooLow:
			return nil
		}
	}
	if err != nil {
		return fmt.Errorf("pngquant: %w", err)
	}
	return nil
}

// Spine exports skeleton projects with the Spine command line interface.
type Spine struct {
	Runner Runner
	Bin    string
}

// Export runs the export described by settings for one project.
func (s *Spine) Export(ctx context.Context, project, outDir, settings string) error {
	args := []string{"-i", project, "-o", outDir, "-e", settings}
	if _, err := runnerOr(s.Runner).Run(ctx, binOr(s.Bin, SpineBin), args...); err != nil {
		return fmt.Errorf("spine export %s: %w", project, err)
	}
	return nil
}
