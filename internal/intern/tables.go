package intern

import (
	"strconv"
	"strings"
)

// White is the packed color used as the default tint.
const White = 0xFFFFFF

// DefaultAnchor is the bottom-left anchor every element starts with.
var DefaultAnchor = [2]int{0, 0}

// FontStyle describes how a label renders its text. Colors are color table
// indices, Name is a font table index.
type FontStyle struct {
	Name         int    `json:"name"`
	Size         int    `json:"size"`
	Color        int    `json:"color"`
	Align        [2]int `json:"align"`
	ShadowColor  int    `json:"shadowColor"`
	ShadowOffset [2]int `json:"shadowOffset"`
	OutlineColor int    `json:"outlineColor"`
	OutlineSize  int    `json:"outlineSize"`
}

// TextFieldStyle holds the editable-text options of a text field. Text values
// are text table indices.
type TextFieldStyle struct {
	PlaceHolderText int `json:"placeHolderText"`
	MaxLength       int `json:"maxLength"`
	PasswordMode    int `json:"passwordMode"`
	PasswordChar    int `json:"passwordChar"`
}

// AtlasFont is a fixed-width font cut from a single texture.
type AtlasFont struct {
	Texture  int    `json:"texture"`
	DotWidth int    `json:"dotWidth"`
	Size     [2]int `json:"size"`
}

// Tables is the set of intern tables shared by every document of one bundle.
type Tables struct {
	Colors          *Table[int, int]
	Anchors         *Table[[2]int, [2]int]
	Texts           *Table[string, string]
	ElementNames    *Table[string, string]
	ComponentNames  *Table[string, string]
	Fonts           *Table[string, string]
	FontStyles      *Table[FontStyle, FontStyle]
	TextFieldStyles *Table[TextFieldStyle, TextFieldStyle]
	TextureParts    *Table[string, string]
	Textures        *Table[string, []int]
	AtlasFonts      *Table[int, AtlasFont]
	AnimationNames  *Table[string, string]
}

// NewTables returns empty tables with the default anchor and white color
// already at index 0.
func NewTables() *Tables {
	t := &Tables{
		Colors:          New[int](),
		Anchors:         New[[2]int](),
		Texts:           New[string](),
		ElementNames:    New[string](),
		ComponentNames:  New[string](),
		Fonts:           New[string](),
		FontStyles:      New[FontStyle](),
		TextFieldStyles: New[TextFieldStyle](),
		TextureParts:    New[string](),
		Textures:        NewKeyed(tupleKey),
		AtlasFonts:      NewKeyed(func(a AtlasFont) int { return a.Texture }),
		AnimationNames:  New[string](),
	}
	t.Anchors.Intern(DefaultAnchor)
	t.Colors.Intern(White)
	return t
}

// Clone returns a deep copy so two bundles can grow from the same seed.
func (t *Tables) Clone() *Tables {
	return &Tables{
		Colors:          t.Colors.Clone(),
		Anchors:         t.Anchors.Clone(),
		Texts:           t.Texts.Clone(),
		ElementNames:    t.ElementNames.Clone(),
		ComponentNames:  t.ComponentNames.Clone(),
		Fonts:           t.Fonts.Clone(),
		FontStyles:      t.FontStyles.Clone(),
		TextFieldStyles: t.TextFieldStyles.Clone(),
		TextureParts:    t.TextureParts.Clone(),
		Textures:        t.Textures.Clone(),
		AtlasFonts:      t.AtlasFonts.Clone(),
		AnimationNames:  t.AnimationNames.Clone(),
	}
}

// InternPath interns every slash separated segment of path and returns the
// index of the resulting segment tuple.
func (t *Tables) InternPath(path string) int {
	segments := strings.Split(path, "/")
	tuple := make([]int, len(segments))
	for i, s := range segments {
		tuple[i] = t.TextureParts.Intern(s)
	}
	return t.Textures.Intern(tuple)
}

// InternText interns s with a single trailing newline removed.
func (t *Tables) InternText(s string) int {
	return t.Texts.Intern(strings.TrimSuffix(s, "\n"))
}

// InternColor packs the channels and interns the result.
func (t *Tables) InternColor(r, g, b int) int {
	return t.Colors.Intern(PackColor(r, g, b))
}

// PackColor packs 0-255 channels into a 24-bit integer.
func PackColor(r, g, b int) int {
	return r<<16 | g<<8 | b
}

func tupleKey(tuple []int) string {
	var sb strings.Builder
	for i, v := range tuple {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
