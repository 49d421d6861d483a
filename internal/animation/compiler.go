package animation

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

// ErrDuplicateActionTag is returned when an animated action tag is carried by
// more than one node of the tree.
var ErrDuplicateActionTag = errors.New("animation: action tag is not unique")

// FullTurn is the angle rotations are mirrored against.
const FullTurn = 360

// Result holds the clips compiled for one document, keyed by owning node.
type Result struct {
	FPS   int
	Clips map[*scene.Object][]Clip
}

// For returns the clips owned by o.
func (r *Result) For(o *scene.Object) []Clip {
	if r == nil {
		return nil
	}
	return r.Clips[o]
}

// Compiler turns editor timelines into per-node clips.
type Compiler struct {
	logger *zap.Logger
}

func NewCompiler(logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{logger: logger}
}

// Compile extracts one clip per range for every animated node of doc.
// Frame-swap keys intern their textures into tables.
func (c *Compiler) Compile(doc *scene.Document, ranges []Range, tables *intern.Tables) (*Result, error) {
	return c.CompileAt(doc, ranges, doc.Animation.FrameRate(), tables)
}

// CompileAt is Compile with an explicit frame rate.
func (c *Compiler) CompileAt(doc *scene.Document, ranges []Range, fps int, tables *intern.Tables) (*Result, error) {
	res := &Result{
		FPS:   fps,
		Clips: make(map[*scene.Object][]Clip),
	}
	if len(ranges) == 0 || doc.ObjectData == nil {
		return res, nil
	}

	tracks := c.Tracks(doc.Animation.Timelines, tables)

	tags := make([]int, 0, len(tracks))
	for tag := range tracks {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	root := doc.ObjectData
	perRange := make(map[*scene.Object][]*Clip)

	for _, tag := range tags {
		owners := scene.FindByTag(root, tag)
		switch len(owners) {
		case 0:
			c.logger.Warn("animation owner not found", zap.Int("action_tag", tag))
			continue
		case 1:
		default:
			return nil, fmt.Errorf("%w: tag %d is used by %d nodes", ErrDuplicateActionTag, tag, len(owners))
		}

		owner := owners[0]
		rest := RestingPose(owner)
		clips := make([]*Clip, len(ranges))
		for i, r := range ranges {
			frames := extract(tracks[tag], r, rest)
			if len(frames) == 0 {
				continue
			}
			clips[i] = &Clip{Name: r.Name, Length: r.Length(), Frames: frames, FPS: res.FPS}
		}
		perRange[owner] = clips
	}

	// The root carries a delay key per range so every range plays for its
	// full length even when the animated nodes stop early.
	rootClips := perRange[root]
	if rootClips == nil {
		rootClips = make([]*Clip, len(ranges))
	}
	for i, r := range ranges {
		marker := Keyframe{Type: Delay, Index: r.Length() - 1}
		if rootClips[i] == nil {
			rootClips[i] = &Clip{Name: r.Name, Length: r.Length(), FPS: res.FPS}
		}
		rootClips[i].Frames = append(rootClips[i].Frames, marker)
	}
	perRange[root] = rootClips

	for owner, clips := range perRange {
		for _, clip := range clips {
			if clip != nil {
				res.Clips[owner] = append(res.Clips[owner], *clip)
			}
		}
	}
	return res, nil
}

// Tracks classifies and converts raw timelines. The result is keyed by action
// tag, then category.
func (c *Compiler) Tracks(timelines []scene.Timeline, tables *intern.Tables) map[int]map[Category]Track {
	out := make(map[int]map[Category]Track)

	for _, tl := range timelines {
		cat, ok := ParseCategory(tl.Property)
		if !ok {
			c.logger.Debug("timeline property skipped",
				zap.String("property", tl.Property), zap.Int("action_tag", tl.ActionTag))
			continue
		}

		track := Track{Tag: tl.ActionTag, Category: cat}
		for _, f := range tl.Frames {
			data, ok := payload(cat, f, tables)
			if !ok {
				continue
			}
			kf := Keyframe{Type: cat, Index: f.FrameIndex, Data: data}
			if cat.Eased() {
				kf.Ease = encodeEase(f.EasingData)
			}
			track.Frames = append(track.Frames, kf)
		}
		sort.SliceStable(track.Frames, func(i, j int) bool {
			return track.Frames[i].Index < track.Frames[j].Index
		})

		if cat == Skew && isPureRotation(track.Frames) {
			track.Category = Rotation
			for i := range track.Frames {
				track.Frames[i].Type = Rotation
				track.Frames[i].Data = track.Frames[i].Data[:1]
			}
		}

		byCat, ok := out[tl.ActionTag]
		if !ok {
			byCat = make(map[Category]Track)
			out[tl.ActionTag] = byCat
		}
		if _, dup := byCat[track.Category]; dup {
			c.logger.Warn("timeline replaces an earlier one",
				zap.String("property", tl.Property), zap.Int("action_tag", tl.ActionTag))
		}
		byCat[track.Category] = track
	}
	return out
}

// RestingPose returns the authored transform of o in compiled units.
func RestingPose(o *scene.Object) Pose {
	x, y := o.Position.Or(0)
	return Pose{
		Position: [2]int{scene.Round(x), scene.Round(y)},
		Scale:    o.Scale.Percent(1),
		Rotation: Mirror(scene.Round(o.RotationSkewX), scene.Round(o.RotationSkewY)),
	}
}

// Mirror converts editor rotation/skew angles to the runtime convention.
// Equal angles are a plain rotation and both slots are mirrored.
func Mirror(x, y int) [2]int {
	if x == y {
		return [2]int{FullTurn - x, FullTurn - x}
	}
	return [2]int{FullTurn - x, y}
}

func extract(tracks map[Category]Track, r Range, rest Pose) []Keyframe {
	cats := make([]Category, 0, len(tracks))
	for cat := range tracks {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var frames []Keyframe
	for _, cat := range cats {
		prev := rest.Value(cat)
		for _, kf := range tracks[cat].Frames {
			if kf.Index < r.Start || kf.Index > r.End {
				continue
			}
			out := Keyframe{
				Type:  kf.Type,
				Index: kf.Index - r.Start,
				Data:  delta(cat, kf.Data, prev),
				Ease:  kf.Ease,
			}
			prev = kf.Data
			frames = append(frames, out)
		}
	}
	return frames
}

// delta encodes cur against prev. Position Y grows downwards in the editor
// and upwards at runtime, so its delta is inverted.
func delta(cat Category, cur, prev []int) []int {
	out := make([]int, len(cur))
	copy(out, cur)
	if !cat.Relative() || len(prev) < len(cur) {
		return out
	}
	for i := range out {
		out[i] = cur[i] - prev[i]
	}
	if cat == Position && len(out) > 1 {
		out[1] = prev[1] - cur[1]
	}
	return out
}

func payload(cat Category, f scene.Frame, tables *intern.Tables) ([]int, bool) {
	switch cat {
	case Position:
		x, y := f.XY(0)
		return []int{scene.Round(x), scene.Round(y)}, true
	case Scale:
		x, y := f.XY(1)
		return []int{scene.Round(x * 100), scene.Round(y * 100)}, true
	case Skew:
		x, y := f.XY(0)
		m := Mirror(scene.Round(x), scene.Round(y))
		return m[:], true
	case Tint:
		if f.Color == nil {
			return []int{intern.White}, true
		}
		return []int{f.Color.Packed()}, true
	case Alpha:
		return []int{scene.Round(f.Value.Number * 100 / 255)}, true
	case Visible:
		if f.Value.Bool {
			return []int{1}, true
		}
		return []int{0}, true
	case Frame:
		if f.TextureFile == nil || f.TextureFile.Path == "" {
			return nil, false
		}
		return []int{tables.InternPath(scene.StripExt(f.TextureFile.Path))}, true
	case None, Rotation, Delay:
		return nil, false
	default:
		return nil, false
	}
}

// encodeEase returns [id] for built-in curves and the flattened inner control
// points of custom curves. The fixed end points are not stored.
func encodeEase(e *scene.Easing) []int {
	if e == nil {
		return nil
	}
	if e.Type != -1 {
		if e.Type < 0 {
			return nil
		}
		return []int{e.Type}
	}
	if e.Points == nil {
		return nil
	}

	points := e.Points
	if len(points) >= 2 {
		points = points[1 : len(points)-1]
	}
	out := make([]int, 0, 2*len(points))
	for _, p := range points {
		out = append(out, scene.Round(p.X*100), scene.Round(p.Y*100))
	}
	return out
}

func isPureRotation(frames []Keyframe) bool {
	if len(frames) == 0 {
		return false
	}
	for _, kf := range frames {
		if len(kf.Data) < 2 || kf.Data[0] != kf.Data[1] {
			return false
		}
	}
	return true
}
