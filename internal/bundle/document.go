package bundle

import (
	"encoding/json"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/atlas"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/ui"
)

// Document is the bundle as loaded by the runtime. Every list is present,
// empty ones included.
type Document struct {
	Anchors         [][2]int                `json:"anchors"`
	AnimationNames  []string                `json:"animationNames"`
	Atlases         []atlas.Page            `json:"atlases"`
	AtlasFonts      []intern.AtlasFont      `json:"atlasFonts"`
	Colors          []int                   `json:"colors"`
	ComponentNames  []string                `json:"componentNames"`
	ElementNames    []string                `json:"elementNames"`
	Fonts           []string                `json:"fonts"`
	FontData        []*font.Font            `json:"fontData"`
	FontStyles      []intern.FontStyle      `json:"fontStyles"`
	Texts           []string                `json:"texts"`
	TextFieldStyles []intern.TextFieldStyle `json:"textFieldStyles"`
	Textures        [][]int                 `json:"textures"`
	TextureParts    []string                `json:"textureParts"`
	UI              []*ui.Element           `json:"ui"`
	Skeletons       []json.RawMessage       `json:"skeletons"`
	SkeletonNames   []string                `json:"skeletonNames"`
	ParticleNames   []string                `json:"particleNames"`
	ParticleData    []json.RawMessage       `json:"particleData"`
	BundleType      int                     `json:"bundleType"`
	Name            string                  `json:"name"`
}

func newDocument(name string, t *intern.Tables, assets Assets, roots []*ui.Element) *Document {
	d := &Document{
		Anchors:         t.Anchors.Values(),
		AnimationNames:  t.AnimationNames.Values(),
		Atlases:         orEmpty(assets.Pages),
		AtlasFonts:      t.AtlasFonts.Values(),
		Colors:          t.Colors.Values(),
		ComponentNames:  t.ComponentNames.Values(),
		ElementNames:    t.ElementNames.Values(),
		Fonts:           t.Fonts.Values(),
		FontData:        orEmpty(assets.Fonts),
		FontStyles:      t.FontStyles.Values(),
		Texts:           t.Texts.Values(),
		TextFieldStyles: t.TextFieldStyles.Values(),
		Textures:        t.Textures.Values(),
		TextureParts:    t.TextureParts.Values(),
		UI:              roots,
		Skeletons:       []json.RawMessage{},
		SkeletonNames:   []string{},
		ParticleNames:   []string{},
		ParticleData:    []json.RawMessage{},
		BundleType:      Type,
		Name:            name,
	}
	if s := assets.Skeletons; s != nil {
		d.Skeletons, d.SkeletonNames = orEmpty(s.Data), orEmpty(s.Names)
	}
	if p := assets.Particles; p != nil {
		d.ParticleData, d.ParticleNames = orEmpty(p.Data), orEmpty(p.Names)
	}
	return d
}

// Stats summarizes a document for the run report.
type Stats struct {
	Elements  int
	Clips     int
	Keyframes int
	Textures  int
	Colors    int
	Texts     int
}

func (d *Document) Stats() Stats {
	s := Stats{
		Textures: len(d.Textures),
		Colors:   len(d.Colors),
		Texts:    len(d.Texts),
	}
	for _, root := range d.UI {
		root.Walk(func(e *ui.Element) {
			s.Elements++
			s.Clips += len(e.Animations)
			for _, c := range e.Animations {
				s.Keyframes += len(c.Frames)
			}
		})
	}
	return s
}

// Clips visits every clip of the document with the element that owns it.
func (d *Document) Clips(fn func(owner *ui.Element, clip animation.Clip)) {
	for _, root := range d.UI {
		root.Walk(func(e *ui.Element) {
			for _, c := range e.Animations {
				fn(e, c)
			}
		})
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
