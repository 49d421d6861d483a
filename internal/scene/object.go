package scene

import (
	"math"
	"strings"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
)

// Vec2 is a point or size in editor units. Missing components stay nil.
type Vec2 struct {
	X *float64 `json:"X"`
	Y *float64 `json:"Y"`
}

// Or returns the components, substituting def for missing ones.
func (v *Vec2) Or(def float64) (float64, float64) {
	if v == nil {
		return def, def
	}
	return orFloat(v.X, def), orFloat(v.Y, def)
}

// ScaleVec is the editor's ScaleX/ScaleY pair used by Scale and AnchorPoint.
type ScaleVec struct {
	ScaleX *float64 `json:"ScaleX"`
	ScaleY *float64 `json:"ScaleY"`
}

// Percent returns both components multiplied by 100 and rounded.
func (s *ScaleVec) Percent(def float64) [2]int {
	if s == nil {
		return [2]int{Round(def * 100), Round(def * 100)}
	}
	return [2]int{Round(orFloat(s.ScaleX, def) * 100), Round(orFloat(s.ScaleY, def) * 100)}
}

// Extent is the InnerNodeSize of scrollable containers.
type Extent struct {
	Width  *float64 `json:"Width"`
	Height *float64 `json:"Height"`
}

// Color is an editor RGBA record. Missing channels mean 255.
type Color struct {
	A *int `json:"A"`
	R *int `json:"R"`
	G *int `json:"G"`
	B *int `json:"B"`
}

// Packed returns the 24-bit RGB value.
func (c *Color) Packed() int {
	return intern.PackColor(orInt(c.R, 255), orInt(c.G, 255), orInt(c.B, 255))
}

// Resource is a reference to a texture, font or nested document.
type Resource struct {
	Type  string `json:"Type"`
	Path  string `json:"Path"`
	Plist string `json:"Plist"`
}

// Object is one node of a Cocos Studio ObjectData tree.
type Object struct {
	Ctype     string `json:"ctype"`
	Name      string `json:"Name"`
	ActionTag int    `json:"ActionTag"`
	Tag       int    `json:"Tag"`
	UserData  string `json:"UserData"`

	Position    *Vec2     `json:"Position"`
	Size        *Vec2     `json:"Size"`
	PrePosition *Vec2     `json:"PrePosition"`
	PreSize     *Vec2     `json:"PreSize"`
	Scale       *ScaleVec `json:"Scale"`
	AnchorPoint *ScaleVec `json:"AnchorPoint"`

	RotationSkewX float64 `json:"RotationSkewX"`
	RotationSkewY float64 `json:"RotationSkewY"`

	Alpha           *int  `json:"Alpha"`
	TouchEnable     bool  `json:"TouchEnable"`
	ClipAble        bool  `json:"ClipAble"`
	ComboBoxIndex   int   `json:"ComboBoxIndex"`
	VisibleForFrame *bool `json:"VisibleForFrame"`
	FontSize        int   `json:"FontSize"`

	CColor       *Color `json:"CColor"`
	SingleColor  *Color `json:"SingleColor"`
	OutlineColor *Color `json:"OutlineColor"`
	ShadowColor  *Color `json:"ShadowColor"`
	TextColor    *Color `json:"TextColor"`

	LeftMargin   float64 `json:"LeftMargin"`
	RightMargin  float64 `json:"RightMargin"`
	TopMargin    float64 `json:"TopMargin"`
	BottomMargin float64 `json:"BottomMargin"`

	FlipX bool `json:"FlipX"`
	FlipY bool `json:"FlipY"`

	Scale9Enable  bool    `json:"Scale9Enable"`
	Scale9OriginX float64 `json:"Scale9OriginX"`
	Scale9OriginY float64 `json:"Scale9OriginY"`
	Scale9Width   float64 `json:"Scale9Width"`
	Scale9Height  float64 `json:"Scale9Height"`

	StretchWidthEnable  bool `json:"StretchWidthEnable"`
	StretchHeightEnable bool `json:"StretchHeightEnable"`

	HorizontalEdge string `json:"HorizontalEdge"`
	VerticalEdge   string `json:"VerticalEdge"`

	PositionPercentXEnabled bool `json:"PositionPercentXEnabled"`
	PositionPercentYEnabled bool `json:"PositionPercentYEnabled"`
	PercentWidthEnable      bool `json:"PercentWidthEnable"`
	PercentHeightEnable     bool `json:"PercentHeightEnable"`

	FileData            *Resource `json:"FileData"`
	NormalFileData      *Resource `json:"NormalFileData"`
	PressedFileData     *Resource `json:"PressedFileData"`
	DisabledFileData    *Resource `json:"DisabledFileData"`
	ProgressBarData     *Resource `json:"ProgressBarData"`
	BackGroundData      *Resource `json:"BackGroundData"`
	BallNormalData      *Resource `json:"BallNormalData"`
	BallPressedData     *Resource `json:"BallPressedData"`
	BallDisabledData    *Resource `json:"BallDisabledData"`
	FontResource        *Resource `json:"FontResource"`
	ImageFileData       *Resource `json:"ImageFileData"`
	NormalBackFileData  *Resource `json:"NormalBackFileData"`
	PressedBackFileData *Resource `json:"PressedBackFileData"`
	DisableBackFileData *Resource `json:"DisableBackFileData"`
	NodeNormalFileData  *Resource `json:"NodeNormalFileData"`
	NodeDisableFileData *Resource `json:"NodeDisableFileData"`
	LabelBMFontFile     *Resource `json:"LabelBMFontFile_CNB"`
	LabelAtlasFileImage *Resource `json:"LabelAtlasFileImage_CNB"`

	InnerNodeSize  *Extent `json:"InnerNodeSize"`
	BackColorAlpha *int    `json:"BackColorAlpha"`

	HorizontalAlignmentType string  `json:"HorizontalAlignmentType"`
	VerticalAlignmentType   string  `json:"VerticalAlignmentType"`
	OutlineEnabled          bool    `json:"OutlineEnabled"`
	OutlineSize             *int    `json:"OutlineSize"`
	ShadowEnabled           bool    `json:"ShadowEnabled"`
	ShadowOffsetX           float64 `json:"ShadowOffsetX"`
	ShadowOffsetY           float64 `json:"ShadowOffsetY"`

	LabelText         string  `json:"LabelText"`
	ButtonText        string  `json:"ButtonText"`
	PlaceHolderText   string  `json:"PlaceHolderText"`
	MaxLengthText     *int    `json:"MaxLengthText"`
	PasswordEnable    *bool   `json:"PasswordEnable"`
	PasswordStyleText *string `json:"PasswordStyleText"`

	ProgressType        string `json:"ProgressType"`
	ScrollDirectionType string `json:"ScrollDirectionType"`
	DirectionType       string `json:"DirectionType"`
	IsBounceEnabled     bool   `json:"IsBounceEnabled"`
	ItemMargin          int    `json:"ItemMargin"`
	CharWidth           int    `json:"CharWidth"`
	CharHeight          int    `json:"CharHeight"`

	Children []*Object `json:"Children"`
}

// Walk visits root and its descendants in depth-first pre-order. Returning
// false from fn stops the walk.
func Walk(root *Object, fn func(*Object) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, child := range root.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// FindByTag returns every node carrying tag, in pre-order.
func FindByTag(root *Object, tag int) []*Object {
	var found []*Object
	Walk(root, func(o *Object) bool {
		if o.ActionTag == tag {
			found = append(found, o)
		}
		return true
	})
	return found
}

// ResourcePath reduces a resource reference to the key used by the bundle:
// nested documents and font files lose their directory, and every path loses
// its extension.
func ResourcePath(r *Resource) string {
	if r == nil {
		return ""
	}
	p := r.Path
	for _, ext := range []string{".json", ".ttf", ".fnt"} {
		if strings.Contains(p, ext) {
			p = p[strings.LastIndex(p, "/")+1:]
		}
	}
	return StripExt(p)
}

// StripExt cuts p at its first dot.
func StripExt(p string) string {
	if i := strings.IndexByte(p, '.'); i >= 0 {
		return p[:i]
	}
	return p
}

// Round rounds to the nearest integer with halves going up, the way the
// editor's exporter does it.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// IntOr returns *v or def when v is nil.
func IntOr(v *int, def int) int {
	return orInt(v, def)
}
