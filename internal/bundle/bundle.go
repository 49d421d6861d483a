package bundle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/atlas"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/particle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/skeleton"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/ui"
)

// Type is the bundleType of asset bundles.
const Type = 1

// Assets are the per asset dir results shared by the bundles of that dir.
type Assets struct {
	Fonts     []*font.Font
	Pages     []atlas.Page
	Skeletons *skeleton.Set
	Particles *particle.Set
}

// Seed returns tables holding the font names. Atlas frames are interned into
// the result by the atlas builder before any bundle is created.
func Seed(fonts []*font.Font) *intern.Tables {
	t := intern.NewTables()
	for _, f := range fonts {
		t.Fonts.Intern(f.Name)
	}
	return t
}

type entry struct {
	name  string
	root  *scene.Object
	clips *animation.Result
}

// Bundle collects the element documents of one platform.
type Bundle struct {
	name       string
	tables     *intern.Tables
	assets     Assets
	compiler   *animation.Compiler
	normalizer *ui.Normalizer
	entries    []entry
	logger     *zap.Logger
}

// New starts a bundle from a copy of seed.
func New(name string, seed *intern.Tables, assets Assets, logger *zap.Logger) *Bundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	tables := seed.Clone()
	return &Bundle{
		name:       name,
		tables:     tables,
		assets:     assets,
		compiler:   animation.NewCompiler(logger),
		normalizer: ui.NewNormalizer(tables, font.Sizes(assets.Fonts), logger),
		logger:     logger,
	}
}

func (b *Bundle) Name() string {
	return b.name
}

func (b *Bundle) Tables() *intern.Tables {
	return b.tables
}

// AddDocument compiles the clips of doc for ranges. Elements are built by
// Finish, once every document is known.
func (b *Bundle) AddDocument(name string, doc *scene.Document, ranges []animation.Range) error {
	return b.add(name, doc, ranges, doc.Animation.FrameRate())
}

// AddFile reads an element document and adds it under its file name. A range
// catalog next to the file replaces the ranges of the document, and its fps
// wins when set.
func (b *Bundle) AddFile(path string) error {
	doc, err := scene.ReadFile(path)
	if err != nil {
		return err
	}
	ranges, catalog, err := animation.ResolveRanges(doc, path)
	if err != nil {
		return err
	}
	fps := doc.Animation.FrameRate()
	if catalog != nil && catalog.FPS > 0 {
		fps = catalog.FPS
	}
	return b.add(source.ElementName(path), doc, ranges, fps)
}

func (b *Bundle) add(name string, doc *scene.Document, ranges []animation.Range, fps int) error {
	clips, err := b.compiler.CompileAt(doc, ranges, fps, b.tables)
	if err != nil {
		return fmt.Errorf("element %s: %w", name, err)
	}
	b.entries = append(b.entries, entry{name: name, root: doc.ObjectData, clips: clips})
	return nil
}

// Len returns the number of documents added so far.
func (b *Bundle) Len() int {
	return len(b.entries)
}

// Finish builds the element trees and returns the bundle document.
func (b *Bundle) Finish() *Document {
	for _, e := range b.entries {
		b.tables.ComponentNames.Intern(e.name)
	}

	roots := make([]*ui.Element, 0, len(b.entries))
	for _, e := range b.entries {
		roots = append(roots, b.normalizer.Normalize(e.root, e.clips))
	}
	b.normalizer.InternNames(roots)

	b.logger.Debug("bundle finished",
		zap.String("bundle", b.name),
		zap.Int("elements", len(roots)),
		zap.Int("textures", b.tables.Textures.Len()))

	return newDocument(b.name, b.tables, b.assets, roots)
}
