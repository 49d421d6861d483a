package ui

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

var anchorCenter = [2]int{Percent / 2, Percent / 2}

// applyKind sets the widget code, the name prefix and the kind payload.
func (n *Normalizer) applyKind(nd *node) {
	e := nd.el

	if nd.kind != KindNone {
		e.Type = nd.kind
		if nd.kind == KindToggleButton {
			e.Interactive = true
		}
		e.Name = e.Type.Prefix() + e.Name
		return
	}

	switch nd.object {
	case ObjectPanel:
		n.panel(nd)
	case ObjectImageView:
		e.Type = KindImageView
		e.FileData = n.textures(scene.ResourcePath(nd.obj.FileData))
	case ObjectLayer:
		e.Type = KindWidget
	case ObjectProjectNode:
		e.Type = KindUIElement
		e.FileData = []int{n.componentName(nd.obj.FileData)}
	case ObjectText:
		n.text(nd)
	case ObjectTextField:
		n.textField(nd)
	case ObjectLoadingBar:
		n.loadingBar(nd)
	case ObjectButton:
		n.button(nd)
	case ObjectSlider:
		n.slider(nd)
	case ObjectSprite:
		e.Type = KindSprite
		e.FileData = n.textures(scene.ResourcePath(nd.obj.FileData))
	case ObjectSingleNode:
		e.Type = KindContainer
	case ObjectTextBMFont:
		n.bitmapText(nd)
	case ObjectCheckBox:
		n.checkBox(nd)
	case ObjectScrollView:
		n.scrollView(nd)
	case ObjectListView:
		n.listView(nd)
	case ObjectTextAtlas:
		n.atlasText(nd)
	case ObjectUnknown:
		fallthrough
	default:
		n.logger.Warn("unknown widget kind",
			zap.String("ctype", nd.obj.Ctype), zap.String("node", nd.obj.Name))
		e.Type = KindNone
	}

	e.Name = e.Type.Prefix() + e.Name
}

func (n *Normalizer) panel(nd *node) {
	e := nd.el
	tex, ok := n.texture(scene.ResourcePath(nd.obj.FileData))
	if nd.obj.ComboBoxIndex == 0 && !ok {
		e.Type = KindWidget
		return
	}
	e.Type = KindPanel
	e.FileData = n.background(nd, tex, ok, GraphicColor)
}

// background encodes the backdrop of panels and scroll containers as
// [texture, graphic, color, alpha].
func (n *Normalizer) background(nd *node, tex int, hasTexture bool, solid int) []int {
	if hasTexture {
		return []int{tex, GraphicSprite, n.white(), Percent}
	}
	alpha := channelPercent(scene.IntOr(nd.obj.BackColorAlpha, 0))
	return []int{-1, solid, n.colorOrWhite(nd.panelColor), alpha}
}

func (n *Normalizer) text(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindLabel

	style := n.fontStyle()
	style.Align = [2]int{horizontalAlign(o.HorizontalAlignmentType), verticalAlign(o.VerticalAlignmentType)}
	style.Name = n.font(o.FontResource)
	style.Size = o.FontSize
	style.Color = e.Tint

	if o.OutlineEnabled {
		style.OutlineColor = n.colorOrWhite(nd.outlineColor)
		style.OutlineSize = scene.IntOr(o.OutlineSize, 1)
	}
	if o.ShadowEnabled {
		style.ShadowColor = n.colorOrWhite(nd.shadowColor)
		style.ShadowOffset = [2]int{scene.Round(o.ShadowOffsetX), scene.Round(-o.ShadowOffsetY)}
	}

	e.FileData = []int{
		n.tables.FontStyles.Intern(style),
		n.tables.InternText(o.LabelText),
		nd.autoSize,
		nd.letterSpacing,
	}
	e.Tint = n.white()
}

func (n *Normalizer) textField(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindTextField

	placeholder := -1
	if o.PlaceHolderText != "" {
		placeholder = n.tables.InternText(o.PlaceHolderText)
	}
	passwordMode := -1
	if o.PasswordEnable != nil {
		passwordMode = 0
		if *o.PasswordEnable {
			passwordMode = 1
		}
	}
	passwordChar := "*"
	if o.PasswordStyleText != nil {
		passwordChar = *o.PasswordStyleText
	}
	fieldStyle := n.tables.TextFieldStyles.Intern(intern.TextFieldStyle{
		PlaceHolderText: placeholder,
		MaxLength:       scene.IntOr(o.MaxLengthText, -1),
		PasswordMode:    passwordMode,
		PasswordChar:    n.tables.InternText(passwordChar),
	})

	style := n.fontStyle()
	style.Name = n.font(o.FontResource)
	style.Size = o.FontSize
	style.Color = e.Tint

	e.FileData = []int{
		n.tables.FontStyles.Intern(style),
		n.tables.InternText(o.LabelText),
		fieldStyle,
		nd.autoSize,
		nd.letterSpacing,
	}
	e.Tint = n.white()
}

func (n *Normalizer) loadingBar(nd *node) {
	e := nd.el
	e.Type = KindProgressBar
	e.FileData = n.textures(scene.ResourcePath(nd.obj.ImageFileData))
	direction := DirectionLeft
	if nd.obj.ProgressType == "Right_To_Left" {
		direction = DirectionRight
	}
	e.FileData = append(e.FileData, direction)
	e.Clipped = true
}

func (n *Normalizer) button(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindButton

	normal := scene.ResourcePath(o.NormalFileData)
	e.FileData = n.textures(
		normal,
		scene.ResourcePath(o.PressedFileData),
		overFrame(normal),
		scene.ResourcePath(o.DisabledFileData),
	)

	if o.ButtonText == "" {
		e.Content = e.extractChild(childTitle)
		return
	}

	title := newElement(n.tables)
	style := n.fontStyle()
	style.Name = n.font(o.FontResource)
	style.Size = o.FontSize
	style.Color = n.colorOrWhite(nd.textColor)
	style.Align = [2]int{AlignCenter, VAlignMiddle}

	w, h := e.Dimensions[2], e.Dimensions[3]
	title.Name = childTitle
	title.Type = KindLabel
	title.FileData = []int{n.tables.FontStyles.Intern(style), n.tables.InternText(o.ButtonText), 0, 0}
	title.Dimensions = [4]int{w >> 1, h >> 1, w, h}
	title.PreDimensions = [4]int{Percent / 2, Percent / 2, Percent, Percent}
	title.anchor = anchorCenter
	title.Anchor = n.tables.Anchors.Intern(anchorCenter)
	title.Margin = []int{0, 0, 0, 0}
	title.Percent = []bool{true, true, true, true}
	e.Content = title
}

func (n *Normalizer) slider(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindSlider

	bar := scene.ResourcePath(o.ProgressBarData)
	if bar == "" || strings.Contains(bar, "transparentFrame") {
		e.FileData = []int{-1}
	} else {
		e.FileData = n.textures(bar)
	}
	e.FileData = append(e.FileData, DirectionLeft)

	ball := newElement(n.tables)
	normal := scene.ResourcePath(o.BallNormalData)
	ball.FileData = n.textures(
		normal,
		scene.ResourcePath(o.BallPressedData),
		overFrame(normal),
		scene.ResourcePath(o.BallDisabledData),
	)
	ball.Name = childBall
	ball.Type = KindButton
	e.Content = ball
}

func (n *Normalizer) bitmapText(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindLabel

	style := n.fontStyle()
	style.Name = n.font(o.LabelBMFontFile)
	style.Size = n.fontSize(style.Name)
	style.Color = e.Tint
	style.Align = [2]int{AlignCenter, VAlignMiddle}

	e.FileData = []int{n.tables.FontStyles.Intern(style), n.tables.InternText(o.LabelText)}
	e.Tint = n.white()
}

func (n *Normalizer) checkBox(nd *node) {
	o, e := nd.obj, nd.el

	normal := scene.ResourcePath(o.NormalBackFileData)
	e.FileData = n.textures(
		normal,
		scene.ResourcePath(o.PressedBackFileData),
		overFrame(normal),
		scene.ResourcePath(o.DisableBackFileData),
	)

	icon := newElement(n.tables)
	mark := scene.ResourcePath(o.NodeNormalFileData)
	icon.FileData = n.textures(mark, mark, mark, scene.ResourcePath(o.NodeDisableFileData))

	w, h := e.Dimensions[2], e.Dimensions[3]
	icon.anchor = anchorCenter
	icon.Anchor = n.tables.Anchors.Intern(anchorCenter)
	icon.Dimensions = [4]int{w >> 1, h >> 1, w, h}
	icon.PreDimensions = [4]int{Percent / 2, Percent / 2, -1, -1}
	icon.Percent = []bool{true, true, false, false}
	icon.Name = childIcon

	e.Type = KindCheckBox
	e.Content = icon
}

func (n *Normalizer) scrollView(nd *node) {
	e := nd.el
	e.Type = KindScrollView
	n.scrollBackground(nd)

	direction := ScrollBoth
	switch nd.obj.ScrollDirectionType {
	case "Vertical":
		direction = ScrollVertical
	case "Horizontal":
		direction = ScrollHorizontal
	}
	e.FileData = append(e.FileData, direction, boolInt(nd.obj.IsBounceEnabled))
}

func (n *Normalizer) listView(nd *node) {
	e := nd.el
	e.Type = KindListView
	n.scrollBackground(nd)

	direction := ScrollHorizontal
	if nd.obj.DirectionType == "Vertical" {
		direction = ScrollVertical
	}
	e.FileData = append(e.FileData, direction, nd.obj.ItemMargin, boolInt(nd.obj.IsBounceEnabled))
}

// scrollBackground writes the backdrop and the inner node shared by scroll
// and list views.
func (n *Normalizer) scrollBackground(nd *node) {
	o, e := nd.obj, nd.el

	tex, ok := n.texture(scene.ResourcePath(o.FileData))
	solid := GraphicNone
	if o.ComboBoxIndex != 0 {
		solid = GraphicColor
	}
	e.FileData = n.background(nd, tex, ok, solid)

	inner := newElement(n.tables)
	inner.Dimensions[2] = e.Dimensions[2]
	inner.Dimensions[3] = e.Dimensions[3]
	if o.InnerNodeSize != nil {
		if o.InnerNodeSize.Width != nil {
			inner.Dimensions[2] = scene.Round(*o.InnerNodeSize.Width)
		}
		if o.InnerNodeSize.Height != nil {
			inner.Dimensions[3] = scene.Round(*o.InnerNodeSize.Height)
		}
	}
	e.Content = inner
}

func (n *Normalizer) atlasText(nd *node) {
	o, e := nd.obj, nd.el
	e.Type = KindAtlasLabel

	tex, ok := n.texture(scene.ResourcePath(o.LabelAtlasFileImage))
	if !ok {
		tex = -1
	}
	font := n.tables.AtlasFonts.Intern(intern.AtlasFont{
		Texture:  tex,
		DotWidth: o.CharWidth / 4,
		Size:     [2]int{o.CharWidth, o.CharHeight},
	})
	e.FileData = []int{font, n.tables.InternText(o.LabelText), nd.autoSize, nd.letterSpacing}
}

func (n *Normalizer) fontStyle() intern.FontStyle {
	white := n.white()
	return intern.FontStyle{
		Name:         -1,
		Color:        white,
		Align:        [2]int{AlignLeft, VAlignTop},
		ShadowColor:  white,
		OutlineColor: white,
	}
}

func (n *Normalizer) font(r *scene.Resource) int {
	name := scene.ResourcePath(r)
	if name == "" {
		return -1
	}
	return n.tables.Fonts.Intern(name)
}

func (n *Normalizer) fontSize(index int) int {
	if index < 0 || index >= len(n.fontSizes) {
		return 0
	}
	return n.fontSizes[index]
}

func (n *Normalizer) componentName(r *scene.Resource) int {
	name := scene.ResourcePath(r)
	if name == "" {
		return -1
	}
	return n.tables.ComponentNames.Intern(name)
}

func (n *Normalizer) texture(path string) (int, bool) {
	if path == "" {
		return 0, false
	}
	return n.tables.InternPath(path), true
}

// textures interns every non-empty path in order.
func (n *Normalizer) textures(paths ...string) []int {
	out := make([]int, 0, len(paths))
	for _, p := range paths {
		if tex, ok := n.texture(p); ok {
			out = append(out, tex)
		}
	}
	return out
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
