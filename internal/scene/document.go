package scene

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

var (
	// ErrNoContent is returned for files without a Content.Content section.
	ErrNoContent = errors.New("scene: document has no Content.Content section")
	// ErrNoObjectData is returned for documents without a root object.
	ErrNoObjectData = errors.New("scene: document has no ObjectData")
)

// Document is the Content.Content section of a Cocos Studio export.
type Document struct {
	Animation     Animation       `json:"Animation"`
	AnimationList []AnimationInfo `json:"AnimationList"`
	ObjectData    *Object         `json:"ObjectData"`
}

// Animation is the master timeline of a document.
type Animation struct {
	Duration  int        `json:"Duration"`
	Speed     *float64   `json:"Speed"`
	Timelines []Timeline `json:"Timelines"`
}

// FrameRate returns round(60 * Speed), with a missing speed meaning 1.
func (a Animation) FrameRate() int {
	return Round(60 * orFloat(a.Speed, 1))
}

// AnimationInfo names a frame range of the master timeline.
type AnimationInfo struct {
	Name       string `json:"Name"`
	StartIndex int    `json:"StartIndex"`
	EndIndex   int    `json:"EndIndex"`
}

// Timeline holds the keyframes of one property of one node.
type Timeline struct {
	FrameType string  `json:"FrameType"`
	ActionTag int     `json:"ActionTag"`
	Property  string  `json:"Property"`
	Frames    []Frame `json:"Frames"`
}

// Frame is a raw keyframe. Only the fields relevant to the timeline's
// property are set.
type Frame struct {
	FrameIndex  int        `json:"FrameIndex"`
	Tween       *bool      `json:"Tween"`
	X           *float64   `json:"X"`
	Y           *float64   `json:"Y"`
	Value       FrameValue `json:"Value"`
	Color       *Color     `json:"Color"`
	TextureFile *Resource  `json:"TextureFile"`
	EasingData  *Easing    `json:"EasingData"`
}

// XY returns the frame's X and Y, substituting def for missing components.
func (f Frame) XY(def float64) (float64, float64) {
	return orFloat(f.X, def), orFloat(f.Y, def)
}

// Easing is the editor easing descriptor. Type -1 means custom Points.
type Easing struct {
	Type   int         `json:"Type"`
	Points []EasePoint `json:"Points"`
}

// EasePoint is a normalized bezier control point.
type EasePoint struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// FrameValue accepts the numeric Value of alpha frames and the boolean Value
// of visibility frames.
type FrameValue struct {
	Number float64
	Bool   bool
	Set    bool
}

func (v *FrameValue) UnmarshalJSON(data []byte) error {
	switch s := string(data); s {
	case "null":
		return nil
	case "true", "false":
		v.Bool = s == "true"
		v.Number = 0
		if v.Bool {
			v.Number = 1
		}
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("scene: frame value %s: %w", s, err)
		}
		v.Number = n
		v.Bool = n != 0
	}
	v.Set = true
	return nil
}

// Decode extracts and decodes the Content.Content section of a document.
func Decode(data []byte) (*Document, error) {
	content := gjson.GetBytes(data, "Content.Content")
	if !content.Exists() || !content.IsObject() {
		return nil, ErrNoContent
	}

	var doc Document
	if err := sonic.UnmarshalString(content.Raw, &doc); err != nil {
		return nil, fmt.Errorf("scene: decode document: %w", err)
	}
	if doc.ObjectData == nil {
		return nil, ErrNoObjectData
	}
	return &doc, nil
}

// ReadFile loads and decodes the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
