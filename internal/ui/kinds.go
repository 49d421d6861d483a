package ui

// WidgetKind is the runtime widget code stored in the element type slot.
type WidgetKind int

const (
	KindNone WidgetKind = iota
	KindUIElement
	KindWidget
	KindPanel
	KindImageView
	KindButton
	KindLabel
	KindSlider
	KindToggleButton
	KindSprite
	KindContainer
	KindProgressBar
	KindCheckBox
	KindAtlasLabel
	KindTextField
	KindScrollView
	KindListView
)

// Prefix returns the name prefix elements of this kind receive.
func (k WidgetKind) Prefix() string {
	switch k {
	case KindUIElement:
		return "uie"
	case KindWidget:
		return "wgt"
	case KindPanel:
		return "pnl"
	case KindImageView:
		return "img"
	case KindButton:
		return "btn"
	case KindLabel, KindAtlasLabel, KindTextField:
		return "txt"
	case KindSlider:
		return "sld"
	case KindToggleButton:
		return "tgb"
	case KindSprite:
		return "spt"
	case KindContainer:
		return "con"
	case KindProgressBar:
		return "pgb"
	case KindCheckBox:
		return "chb"
	case KindScrollView:
		return "scv"
	case KindListView:
		return "ltv"
	case KindNone:
		return ""
	default:
		return ""
	}
}

// ObjectType is the editor object class carried in ctype.
type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectPanel
	ObjectImageView
	ObjectLayer
	ObjectProjectNode
	ObjectText
	ObjectTextField
	ObjectLoadingBar
	ObjectButton
	ObjectSlider
	ObjectSprite
	ObjectSingleNode
	ObjectTextBMFont
	ObjectCheckBox
	ObjectScrollView
	ObjectListView
	ObjectTextAtlas
)

// ParseObjectType decodes a ctype value.
func ParseObjectType(ctype string) ObjectType {
	switch ctype {
	case "PanelObjectData":
		return ObjectPanel
	case "ImageViewObjectData":
		return ObjectImageView
	case "LayerObjectData":
		return ObjectLayer
	case "ProjectNodeObjectData":
		return ObjectProjectNode
	case "TextObjectData":
		return ObjectText
	case "TextFieldObjectData":
		return ObjectTextField
	case "LoadingBarObjectData":
		return ObjectLoadingBar
	case "ButtonObjectData":
		return ObjectButton
	case "SliderObjectData":
		return ObjectSlider
	case "SpriteObjectData":
		return ObjectSprite
	case "SingleNodeObjectData":
		return ObjectSingleNode
	case "TextBMFontObjectData":
		return ObjectTextBMFont
	case "CheckBoxObjectData":
		return ObjectCheckBox
	case "ScrollViewObjectData":
		return ObjectScrollView
	case "ListViewObjectData":
		return ObjectListView
	case "TextAtlasObjectData":
		return ObjectTextAtlas
	default:
		return ObjectUnknown
	}
}

// Scrollable reports whether children are laid out inside an inner node.
func (t ObjectType) Scrollable() bool {
	return t == ObjectScrollView || t == ObjectListView
}

// ComponentName is the NAME value of a UserData annotation.
type ComponentName int

const (
	ComponentNone ComponentName = iota
	ComponentToggleButton
	ComponentProgressBar
	ComponentSlider
	ComponentCheckBox
	ComponentLabel
	ComponentUnknown
)

// ParseComponentName decodes an annotation NAME.
func ParseComponentName(name string) ComponentName {
	switch name {
	case "":
		return ComponentNone
	case "TOGGLE_BUTTON":
		return ComponentToggleButton
	case "PROGRESS_BAR":
		return ComponentProgressBar
	case "SLIDER":
		return ComponentSlider
	case "CHECK_BOX":
		return ComponentCheckBox
	case "LABEL":
		return ComponentLabel
	default:
		return ComponentUnknown
	}
}

// Kind returns the widget kind a component turns its node into. Label
// annotations only add text options and keep the node's own kind.
func (c ComponentName) Kind() (WidgetKind, bool) {
	switch c {
	case ComponentToggleButton:
		return KindToggleButton, true
	case ComponentProgressBar:
		return KindProgressBar, true
	case ComponentSlider:
		return KindSlider, true
	case ComponentCheckBox:
		return KindCheckBox, true
	case ComponentNone, ComponentLabel, ComponentUnknown:
		return KindNone, false
	default:
		return KindNone, false
	}
}

// Graphic types of panel-like backgrounds.
const (
	GraphicNone = iota
	GraphicColor
	GraphicSprite
)

// Scroll directions.
const (
	ScrollNone = iota
	ScrollVertical
	ScrollHorizontal
	ScrollBoth
)

// Horizontal alignments, also used for the horizontal edge.
const (
	AlignNone = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Vertical alignments, also used for the vertical edge.
const (
	VAlignNone = iota
	VAlignTop
	VAlignMiddle
	VAlignBottom
)

// Fill directions of progress bars and sliders.
const (
	DirectionNone = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

func parseDirection(v string) int {
	switch v {
	case "RIGHT":
		return DirectionRight
	case "UP":
		return DirectionUp
	case "DOWN":
		return DirectionDown
	default:
		return DirectionLeft
	}
}

func horizontalEdge(v string) int {
	switch v {
	case "LeftEdge":
		return AlignLeft
	case "BothEdge":
		return AlignCenter
	case "RightEdge":
		return AlignRight
	default:
		return AlignNone
	}
}

func verticalEdge(v string) int {
	switch v {
	case "TopEdge":
		return VAlignTop
	case "BothEdge":
		return VAlignMiddle
	case "BottomEdge":
		return VAlignBottom
	default:
		return VAlignNone
	}
}

func horizontalAlign(v string) int {
	switch v {
	case "HT_Center":
		return AlignCenter
	case "HT_Right":
		return AlignRight
	default:
		return AlignLeft
	}
}

func verticalAlign(v string) int {
	switch v {
	case "VT_Center":
		return VAlignMiddle
	case "VT_Bottom":
		return VAlignBottom
	default:
		return VAlignTop
	}
}
