package ui

import (
	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

// MaxChannel is the largest editor color channel and alpha value.
const MaxChannel = 255

// Normalizer rewrites scene trees into elements. Every value it meets is
// interned into the tables of the bundle being built.
type Normalizer struct {
	tables    *intern.Tables
	fontSizes []int
	logger    *zap.Logger
}

// NewNormalizer returns a normalizer writing into tables. fontSizes holds the
// native size of every font already present in the font table.
func NewNormalizer(tables *intern.Tables, fontSizes []int, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{tables: tables, fontSizes: fontSizes, logger: logger}
}

// node carries what the kind dispatch needs besides the element itself.
type node struct {
	obj    *scene.Object
	el     *Element
	object ObjectType
	kind   WidgetKind

	panelColor   int
	outlineColor int
	shadowColor  int
	textColor    int

	autoSize      int
	letterSpacing int
}

// Normalize builds the element tree of root. Clips found in clips for a node
// are attached to its element.
func (n *Normalizer) Normalize(root *scene.Object, clips *animation.Result) *Element {
	if root == nil {
		return nil
	}
	return n.build(root, clips, 0, false)
}

// InternNames replaces element names by their index in the element name
// table, visiting every tree in pre-order.
func (n *Normalizer) InternNames(roots []*Element) {
	for _, root := range roots {
		root.Walk(func(e *Element) {
			e.NameIndex = n.tables.ElementNames.Intern(e.Name)
		})
	}
}

func (n *Normalizer) build(o *scene.Object, clips *animation.Result, parentHeight int, nested bool) *Element {
	e := newElement(n.tables)
	if o.Name != "" {
		e.Name = o.Name
	}

	scale := o.Scale.Percent(1)
	if scale != [2]int{Percent, Percent} {
		e.Scale = scale[:]
	}
	e.anchor = o.AnchorPoint.Percent(0)

	px, py := o.Position.Or(0)
	sx, sy := o.Size.Or(1)
	e.Dimensions = [4]int{scene.Round(px), scene.Round(py), scene.Round(sx), scene.Round(sy)}

	ppx, ppy := o.PrePosition.Or(0)
	psx, psy := o.PreSize.Or(1)
	e.PreDimensions = [4]int{
		scene.Round(ppx * Percent), scene.Round(ppy * Percent),
		scene.Round(psx * Percent), scene.Round(psy * Percent),
	}

	e.Alpha = channelPercent(scene.IntOr(o.Alpha, MaxChannel))
	e.Interactive = o.TouchEnable
	e.Clipped = o.ClipAble
	if o.VisibleForFrame != nil {
		e.Visible = *o.VisibleForFrame
	}

	nd := &node{obj: o, object: ParseObjectType(o.Ctype)}
	nd.panelColor = n.color(o.SingleColor)
	if o.CColor != nil {
		e.Tint = n.color(o.CColor)
	}
	nd.outlineColor = n.color(o.OutlineColor)
	nd.shadowColor = n.color(o.ShadowColor)
	nd.textColor = n.color(o.TextColor)

	e.Margin = intSlot(
		scene.Round(o.LeftMargin), scene.Round(o.RightMargin),
		scene.Round(o.TopMargin), scene.Round(o.BottomMargin),
	)
	e.Flip = boolSlot(o.FlipX, o.FlipY)
	if o.Scale9Enable {
		e.Slice9 = intSlot(
			scene.Round(o.Scale9OriginX), scene.Round(o.Scale9OriginY),
			scene.Round(o.Scale9Width), scene.Round(o.Scale9Height),
		)
	}
	e.Stretch = boolSlot(o.StretchWidthEnable, o.StretchHeightEnable)
	e.Edge = edgeSlot(o)
	e.Percent = boolSlot(
		o.PositionPercentXEnabled, o.PositionPercentYEnabled,
		o.PercentWidthEnable, o.PercentHeightEnable,
	)
	if rotation := intSlot(scene.Round(o.RotationSkewX), scene.Round(o.RotationSkewY)); rotation != nil {
		mirrored := animation.Mirror(rotation[0], rotation[1])
		e.Rotation = mirrored[:]
	}

	height := contentHeight(o, nd.object, e)
	for _, child := range o.Children {
		if child == nil {
			continue
		}
		e.Children = append(e.Children, n.build(child, clips, height, true))
	}

	if nested {
		flipped := e.flipY(parentHeight)
		e = &flipped
	}
	nd.el = e

	e.Animations = n.clips(clips.For(o))

	n.applyComponent(nd)
	n.applyKind(nd)

	e.Anchor = n.tables.Anchors.Intern(e.anchor)
	if len(e.Children) == 0 {
		e.Children = nil
	}
	return e
}

// contentHeight is the height children are flipped against.
func contentHeight(o *scene.Object, object ObjectType, e *Element) int {
	if object.Scrollable() && o.InnerNodeSize != nil && o.InnerNodeSize.Height != nil && *o.InnerNodeSize.Height != 0 {
		return scene.Round(*o.InnerNodeSize.Height)
	}
	return e.Dimensions[3]
}

func (n *Normalizer) clips(clips []animation.Clip) []animation.Clip {
	if len(clips) == 0 {
		return nil
	}
	out := make([]animation.Clip, len(clips))
	for i, c := range clips {
		c.NameIndex = n.tables.AnimationNames.Intern(c.Name)
		out[i] = c
	}
	return out
}

// color interns c and returns -1 when it is absent.
func (n *Normalizer) color(c *scene.Color) int {
	if c == nil {
		return -1
	}
	return n.tables.Colors.Intern(c.Packed())
}

func (n *Normalizer) white() int {
	return n.tables.Colors.Intern(intern.White)
}

func (n *Normalizer) colorOrWhite(index int) int {
	if index < 0 {
		return n.white()
	}
	return index
}

func channelPercent(v int) int {
	return scene.Round(float64(v) * Percent / MaxChannel)
}

// intSlot returns values, or nil when every value is zero.
func intSlot(values ...int) []int {
	for _, v := range values {
		if v != 0 {
			return values
		}
	}
	return nil
}

// boolSlot returns values, or nil when none is set.
func boolSlot(values ...bool) []bool {
	for _, v := range values {
		if v {
			return values
		}
	}
	return nil
}

func edgeSlot(o *scene.Object) []int {
	if o.HorizontalEdge == "" && o.VerticalEdge == "" {
		return nil
	}
	return []int{horizontalEdge(o.HorizontalEdge), verticalEdge(o.VerticalEdge)}
}
