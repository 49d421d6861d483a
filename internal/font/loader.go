package font

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

// LoadDir parses every descriptor directly inside dir, in file name order.
// A missing dir yields no fonts.
func LoadDir(dir string, logger *zap.Logger) ([]*Font, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		logger.Info("no font dir, step skipped", zap.String("dir", dir))
		return nil, nil
	}

	matches, err := source.Glob(dir, "*"+Ext)
	if err != nil {
		return nil, err
	}

	fonts := make([]*Font, 0, len(matches))
	for _, path := range matches {
		f, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("font parsed",
			zap.String("font", f.Name), zap.Int("chars", len(f.Chars)))
		fonts = append(fonts, f)
	}
	if len(fonts) == 0 {
		logger.Info("no bitmap fonts, step skipped", zap.String("dir", dir))
	}
	return fonts, nil
}

// Names returns the font names in order.
func Names(fonts []*Font) []string {
	names := make([]string, len(fonts))
	for i, f := range fonts {
		names[i] = f.Name
	}
	return names
}

// Sizes returns the native font sizes in order.
func Sizes(fonts []*Font) []int {
	sizes := make([]int, len(fonts))
	for i, f := range fonts {
		sizes[i] = f.Size
	}
	return sizes
}
