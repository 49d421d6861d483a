package atlas

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
)

// Frame is one packed sprite. ID is its texture table index.
type Frame struct {
	ID               int    `json:"id"`
	SourceSize       [2]int `json:"sourceSize"`
	SpriteDimensions [4]int `json:"spriteDimensions"`
	Dimensions       [4]int `json:"dimensions"`
	Rotated          bool   `json:"rotated"`
	Trimmed          bool   `json:"trimmed"`
}

// Page is one texture of a multipack atlas.
type Page struct {
	Name   string   `json:"name"`
	Scale  float64  `json:"scale"`
	Size   [2]int   `json:"size"`
	Images []string `json:"images"`
	Frames []Frame  `json:"frames"`
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r jsonRect) dimensions() [4]int {
	return [4]int{r.X, r.Y, r.W, r.H}
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceSize"`
}

type namedFrame struct {
	key   string
	frame jsonFrame
}

// ParsePage reads a pixijs4 sheet. Frame keys are interned as texture paths
// into seed in document order. Frames named <font>/<char id> are moved into
// the glyph rectangles of fonts instead when glyphs is set.
func ParsePage(data []byte, name string, seed *intern.Tables, fonts []*font.Font, glyphs bool) (Page, error) {
	if !gjson.ValidBytes(data) {
		return Page{}, fmt.Errorf("atlas %s: invalid json", name)
	}
	meta := gjson.GetBytes(data, "meta")
	framesJSON := gjson.GetBytes(data, "frames")
	if !framesJSON.IsObject() {
		return Page{}, fmt.Errorf("atlas %s: frames section missing", name)
	}

	var (
		frames  []namedFrame
		byKey   = make(map[string]int)
		decoErr error
	)
	framesJSON.ForEach(func(key, value gjson.Result) bool {
		var f jsonFrame
		if err := sonic.UnmarshalString(value.Raw, &f); err != nil {
			decoErr = fmt.Errorf("atlas %s: frame %s: %w", name, key.String(), err)
			return false
		}
		byKey[key.String()] = len(frames)
		frames = append(frames, namedFrame{key: key.String(), frame: f})
		return true
	})
	if decoErr != nil {
		return Page{}, decoErr
	}

	if glyphs {
		removed := moveGlyphs(frames, byKey, fonts)
		kept := frames[:0]
		for i, f := range frames {
			if !removed[i] {
				kept = append(kept, f)
			}
		}
		frames = kept
	}

	image, _, _ := strings.Cut(meta.Get("image").String(), ".")
	page := Page{
		Name:   name,
		Scale:  meta.Get("scale").Float(),
		Size:   [2]int{int(meta.Get("size.w").Int()), int(meta.Get("size.h").Int())},
		Images: []string{image},
		Frames: make([]Frame, 0, len(frames)),
	}
	for _, nf := range frames {
		f := nf.frame
		page.Frames = append(page.Frames, Frame{
			ID:               seed.InternPath(nf.key),
			SourceSize:       [2]int{f.SourceSize.W, f.SourceSize.H},
			SpriteDimensions: f.SpriteSourceSize.dimensions(),
			Dimensions:       f.Frame.dimensions(),
			Rotated:          f.Rotated,
			Trimmed:          f.Trimmed,
		})
	}
	return page, nil
}

// moveGlyphs copies packed glyph rectangles into the fonts and reports which
// frames were consumed.
func moveGlyphs(frames []namedFrame, byKey map[string]int, fonts []*font.Font) map[int]bool {
	removed := make(map[int]bool)
	for _, f := range fonts {
		for i := range f.Chars {
			c := &f.Chars[i]
			idx, ok := byKey[GlyphKey(f.Name, c.ID)]
			if !ok || removed[idx] {
				continue
			}
			c.Dimensions = frames[idx].frame.Frame.dimensions()
			removed[idx] = true
		}
	}
	return removed
}
