package atlas

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/packer"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

// MainSheet is the atlas that receives the cut bitmap font glyphs.
const MainSheet = "main"

// Builder packs the sprite sheets of one asset dir.
type Builder struct {
	Packer *packer.TexturePacker
	// WebP and Quant are optional post-processing steps.
	WebP  *packer.WebP
	Quant *packer.PNGQuant
	// TmpRoot is where per-sheet staging dirs are created. Empty means the
	// system temp dir.
	TmpRoot string

	logger *zap.Logger
}

func NewBuilder(p *packer.TexturePacker, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = &packer.TexturePacker{}
	}
	return &Builder{Packer: p, logger: logger}
}

// Build packs every sheet of dir into exportDir and returns the pages in
// sheet order. Frame names are interned into seed. The glyph rectangles of
// fonts are rewritten to their place on the main atlas.
func (b *Builder) Build(ctx context.Context, dir source.AssetDir, exportDir string, fonts []*font.Font, seed *intern.Tables) ([]Page, error) {
	atlasDir := dir.AtlasPath()
	if !source.Exists(atlasDir) {
		b.logger.Info("no atlas dir, step skipped", zap.String("bundle", dir.Name))
		return nil, nil
	}

	sheets, err := source.Glob(atlasDir, "*"+SheetExt)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		b.logger.Info("atlas dir has no .csi files, step skipped", zap.String("bundle", dir.Name))
		return nil, nil
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return nil, err
	}

	var pages []Page
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheetPages, err := b.buildSheet(ctx, dir, sheet, exportDir, fonts, seed)
		if err != nil {
			return nil, fmt.Errorf("atlas %s: %w", SheetName(sheet), err)
		}
		pages = append(pages, sheetPages...)
	}

	if b.Quant != nil {
		pngs, err := source.Glob(exportDir, "*.png")
		if err != nil {
			return nil, err
		}
		if err := b.Quant.Compress(ctx, pngs); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

func (b *Builder) buildSheet(ctx context.Context, dir source.AssetDir, sheet, exportDir string, fonts []*font.Font, seed *intern.Tables) ([]Page, error) {
	name := SheetName(sheet)
	b.logger.Info("atlas generation started", zap.String("atlas", name))

	images, err := ReadSheet(sheet)
	if err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp(b.TmpRoot, "atlas-"+name+"-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	if err := b.stage(dir.SourcePath(), tmp, images); err != nil {
		return nil, err
	}
	if name == MainSheet && len(fonts) > 0 {
		if err := CutGlyphs(dir.FontPath(), tmp, fonts, b.logger); err != nil {
			return nil, err
		}
	}

	if err := b.Packer.Pack(ctx, tmp, filepath.Join(exportDir, name+"_{n}.json")); err != nil {
		return nil, err
	}

	var pages []Page
	for n := 0; ; n++ {
		pageName := name + "_" + strconv.Itoa(n)
		dataPath := filepath.Join(exportDir, pageName+".json")
		data, err := os.ReadFile(dataPath)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, err
		}

		glyphs := name == MainSheet && n == 0
		if name == MainSheet && n > 0 {
			b.logger.Warn("main atlas has more than one texture, glyphs may be lost",
				zap.String("page", pageName))
		}

		page, err := ParsePage(data, name, seed, fonts, glyphs)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)

		if b.WebP != nil {
			if _, err := b.WebP.Convert(ctx, filepath.Join(exportDir, pageName+".png")); err != nil {
				return nil, err
			}
		}
		if err := os.Remove(dataPath); err != nil {
			return nil, err
		}
	}

	b.logger.Info("atlas generation finished",
		zap.String("atlas", name), zap.Int("pages", len(pages)))
	return pages, nil
}

// stage copies the listed images into tmp, keeping their relative paths so
// sprite names match texture references in element documents.
func (b *Builder) stage(sourceDir, tmp string, images []string) error {
	for _, img := range images {
		src := filepath.Join(sourceDir, filepath.FromSlash(img))
		ok, mime, err := source.IsImage(src)
		if errors.Is(err, os.ErrNotExist) {
			b.logger.Warn("sheet image missing", zap.String("image", img))
			continue
		}
		if err != nil {
			return err
		}
		if !ok {
			b.logger.Warn("sheet entry is not an image, skipped",
				zap.String("image", img), zap.String("mime", mime))
			continue
		}
		if err := source.CopyFile(src, filepath.Join(tmp, filepath.FromSlash(img))); err != nil {
			return err
		}
	}
	return nil
}
