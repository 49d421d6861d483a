package atlas

import (
	"image"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/system"
)

// GlyphKey is the sprite name a cut glyph is packed under.
func GlyphKey(fontName string, id int) string {
	return fontName + "/" + strconv.Itoa(id)
}

// CutGlyphs writes every non-empty glyph of fonts as <outDir>/<font>/<id>.png.
// Fonts whose page image is missing from fontDir are skipped.
func CutGlyphs(fontDir, outDir string, fonts []*font.Font, logger *zap.Logger) error {
	for _, f := range fonts {
		pagePath := filepath.Join(fontDir, f.Name+".png")
		if !source.Exists(pagePath) {
			logger.Warn("font has no png page, glyphs not cut", zap.String("font", f.Name))
			continue
		}

		page, err := source.LoadImage(pagePath)
		if err != nil {
			return err
		}

		cut := 0
		for _, c := range f.Chars {
			w, h := c.Dimensions[2], c.Dimensions[3]
			if w == 0 || h == 0 {
				continue
			}
			if err := cutGlyph(page, c, filepath.Join(outDir, f.Name, strconv.Itoa(c.ID)+".png")); err != nil {
				return err
			}
			cut++
		}
		logger.Debug("font cut", zap.String("font", f.Name), zap.Int("glyphs", cut))
	}
	return nil
}

func cutGlyph(page image.Image, c font.Char, path string) error {
	x, y, w, h := c.Dimensions[0], c.Dimensions[1], c.Dimensions[2], c.Dimensions[3]
	dst := system.GetImage(w, h)
	defer system.PutImage(dst)

	origin := page.Bounds().Min
	src := image.Rect(x, y, x+w, y+h).Add(origin)
	draw.Copy(dst, image.Point{}, page, src, draw.Src, nil)
	return source.SavePNG(path, dst)
}
