package ui

import (
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
)

// Percent is the full value of percent-encoded slots.
const Percent = 100

// Element is a normalized node. Optional slices encode as null when unset.
type Element struct {
	Name          string           `json:"-"`
	NameIndex     int              `json:"name"`
	Type          WidgetKind       `json:"type"`
	Dimensions    [4]int           `json:"dimensions"`
	PreDimensions [4]int           `json:"preDimensions"`
	Scale         []int            `json:"scale"`
	Rotation      []int            `json:"rotation"`
	Flip          []bool           `json:"flip"`
	Margin        []int            `json:"margin"`
	Slice9        []int            `json:"slice9"`
	Stretch       []bool           `json:"stretch"`
	Edge          []int            `json:"edge"`
	Percent       []bool           `json:"percent"`
	Anchor        int              `json:"anchor"`
	Tint          int              `json:"tint"`
	Interactive   bool             `json:"interactive"`
	Clipped       bool             `json:"clipped"`
	Visible       bool             `json:"visible"`
	Alpha         int              `json:"alpha"`
	FileData      []int            `json:"fileData"`
	Content       *Element         `json:"content"`
	Children      []*Element       `json:"children"`
	Animations    []animation.Clip `json:"animations"`

	// anchor point in percent, interned into Anchor once the node is final
	anchor [2]int
}

// newElement returns an element holding the template defaults.
func newElement(tables *intern.Tables) *Element {
	return &Element{
		Name:          "default",
		Dimensions:    [4]int{0, 0, -1, -1},
		PreDimensions: [4]int{0, 0, Percent, Percent},
		Anchor:        tables.Anchors.Intern(intern.DefaultAnchor),
		Tint:          tables.Colors.Intern(intern.White),
		Visible:       true,
		Alpha:         Percent,
		anchor:        intern.DefaultAnchor,
	}
}

// flipY returns a copy of e moved into a parent of content height h with the
// vertical axis pointing up.
func (e Element) flipY(h int) Element {
	e.Dimensions[1] = h - e.Dimensions[1]
	e.PreDimensions[1] = Percent - e.PreDimensions[1]
	e.anchor[1] = Percent - e.anchor[1]
	return e
}

// Walk visits e, its content and its children in pre-order.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	e.Content.Walk(fn)
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// extractChild removes and returns the first child named name.
func (e *Element) extractChild(name string) *Element {
	for i, child := range e.Children {
		if child.Name == name {
			e.Children = append(e.Children[:i:i], e.Children[i+1:]...)
			return child
		}
	}
	return nil
}
