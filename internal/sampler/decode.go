package sampler

import (
	"time"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/ui"
)

// Key is an absolute keyframe.
type Key struct {
	Index int
	Value []int
	Ease  []int
}

// Track is the absolute keys of one category of a clip.
type Track struct {
	Category animation.Category
	Keys     []Key
}

// Decode rebuilds absolute tracks from the delta encoded frames of clip.
// rest is the authored pose of the node owning the clip. Delay markers are
// dropped. Tracks come out in category order.
func Decode(clip animation.Clip, rest animation.Pose) []Track {
	return decode(clip, rest, true)
}

// DecodeElement rebuilds the tracks of a clip owned by a bundled element.
// Positions come out in bundle coordinates, every delta adding onto the
// element's own dimensions.
func DecodeElement(clip animation.Clip, e *ui.Element) []Track {
	return decode(clip, Rest(e), false)
}

// Rest returns the pose a bundled element is drawn in without animation.
func Rest(e *ui.Element) animation.Pose {
	p := animation.Pose{
		Position: [2]int{e.Dimensions[0], e.Dimensions[1]},
		Scale:    [2]int{ui.Percent, ui.Percent},
		Rotation: animation.Mirror(0, 0),
	}
	if len(e.Scale) == 2 {
		p.Scale = [2]int{e.Scale[0], e.Scale[1]}
	}
	if len(e.Rotation) == 2 {
		p.Rotation = [2]int{e.Rotation[0], e.Rotation[1]}
	}
	return p
}

func decode(clip animation.Clip, rest animation.Pose, editorY bool) []Track {
	var tracks []Track
	var prev []int
	for _, kf := range clip.Frames {
		if kf.Type == animation.Delay {
			continue
		}
		if len(tracks) == 0 || tracks[len(tracks)-1].Category != kf.Type {
			tracks = append(tracks, Track{Category: kf.Type})
			prev = rest.Value(kf.Type)
		}

		value := undelta(kf.Type, kf.Data, prev, editorY)
		prev = value
		t := &tracks[len(tracks)-1]
		t.Keys = append(t.Keys, Key{Index: kf.Index, Value: value, Ease: kf.Ease})
	}
	return tracks
}

func undelta(cat animation.Category, data, prev []int, editorY bool) []int {
	out := make([]int, len(data))
	copy(out, data)
	if !cat.Relative() || len(prev) < len(data) {
		return out
	}
	for i := range out {
		out[i] = prev[i] + data[i]
	}
	if editorY && cat == animation.Position && len(out) > 1 {
		out[1] = prev[1] - data[1]
	}
	return out
}

// Summary describes a clip for inspection.
type Summary struct {
	Name       string
	Length     int
	FPS        int
	Duration   time.Duration
	Keyframes  int
	Categories []animation.Category
}

// Summarize reports the length, duration and animated categories of clip.
func Summarize(name string, clip animation.Clip) Summary {
	s := Summary{
		Name:      name,
		Length:    clip.Length,
		FPS:       clip.FPS,
		Keyframes: len(clip.Frames),
	}
	if clip.FPS > 0 {
		s.Duration = time.Duration(clip.Length) * time.Second / time.Duration(clip.FPS)
	}
	seen := make(map[animation.Category]bool)
	for _, kf := range clip.Frames {
		if !seen[kf.Type] {
			seen[kf.Type] = true
			s.Categories = append(s.Categories, kf.Type)
		}
	}
	return s
}
