package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/bundle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/sampler"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/ui"
)

// DumpRanges writes a range catalog next to every element document under
// root that does not have one yet. It returns the number of catalogs written.
func DumpRanges(ctx context.Context, root string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dirs, err := source.FindAssetDirs(ctx, root)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, dir := range dirs {
		for _, platform := range []source.Platform{source.Desktop, source.Common, source.Mobile} {
			paths, _, err := dir.Elements(platform)
			if err != nil {
				return written, err
			}
			for _, path := range paths {
				if _, ok := animation.FindCatalog(path); ok {
					logger.Debug("catalog exists, kept", zap.String("element", path))
					continue
				}
				doc, err := scene.ReadFile(path)
				if err != nil {
					return written, err
				}
				catalog := animation.NewCatalog(source.ElementName(path), doc)
				if err := animation.WriteCatalog(catalog, animation.CatalogPath(path)); err != nil {
					return written, err
				}
				written++
			}
		}
	}
	return written, nil
}

// Inspect prints one line per clip of the bundle at path, followed by the
// start, middle and end values of every animated property.
func Inspect(w io.Writer, path string) error {
	doc, err := bundle.Read(path)
	if err != nil {
		return err
	}

	s := doc.Stats()
	fmt.Fprintf(w, "bundle %s: %d elements, %d clips, %d keyframes\n", doc.Name, s.Elements, s.Clips, s.Keyframes)
	doc.Clips(func(owner *ui.Element, clip animation.Clip) {
		sum := sampler.Summarize(lookup(doc.AnimationNames, clip.NameIndex), clip)
		cats := make([]string, len(sum.Categories))
		for i, c := range sum.Categories {
			cats[i] = c.String()
		}
		fmt.Fprintf(w, "  %-24s %-16s %4d frames @ %2d fps (%s) keys %d [%s]\n",
			lookup(doc.ElementNames, owner.NameIndex), sum.Name,
			sum.Length, sum.FPS, sum.Duration, sum.Keyframes, strings.Join(cats, ","))

		last := float64(clip.Length - 1)
		for _, track := range sampler.DecodeElement(clip, owner) {
			fmt.Fprintf(w, "    %-10s %s -> %s -> %s\n", track.Category,
				sampler.Format(track.Category, sampler.Sample(track, 0)),
				sampler.Format(track.Category, sampler.Sample(track, last/2)),
				sampler.Format(track.Category, sampler.Sample(track, last)))
		}
	})
	return nil
}

func lookup(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("#%d", i)
	}
	return names[i]
}
