package animation

// Category identifies which property a keyframe animates. The numeric values
// are part of the bundle format.
type Category int

const (
	None Category = iota
	Position
	Scale
	Rotation
	Skew
	Tint
	Alpha
	Visible
	Frame
	Delay
)

// ParseCategory maps an editor timeline property to a category.
func ParseCategory(property string) (Category, bool) {
	switch property {
	case "Position":
		return Position, true
	case "Scale":
		return Scale, true
	case "RotationSkew":
		return Skew, true
	case "CColor":
		return Tint, true
	case "Alpha":
		return Alpha, true
	case "VisibleForFrame":
		return Visible, true
	case "FileData":
		return Frame, true
	default:
		return None, false
	}
}

func (c Category) String() string {
	switch c {
	case None:
		return "none"
	case Position:
		return "position"
	case Scale:
		return "scale"
	case Rotation:
		return "rotation"
	case Skew:
		return "skew"
	case Tint:
		return "tint"
	case Alpha:
		return "alpha"
	case Visible:
		return "visible"
	case Frame:
		return "frame"
	case Delay:
		return "delay"
	default:
		return "unknown"
	}
}

// Eased reports whether keyframes of this category carry easing.
func (c Category) Eased() bool {
	switch c {
	case Position, Scale, Rotation, Skew, Tint, Alpha:
		return true
	case None, Visible, Frame, Delay:
		return false
	default:
		return false
	}
}

// Relative reports whether keyframes of this category are stored as deltas.
func (c Category) Relative() bool {
	switch c {
	case Position, Scale, Rotation, Skew:
		return true
	case None, Tint, Alpha, Visible, Frame, Delay:
		return false
	default:
		return false
	}
}

// Keyframe is one compiled key. Data holds up to two values whose meaning
// depends on Type. Ease is nil, a single built-in curve id, or flattened
// custom control points.
type Keyframe struct {
	Type  Category `json:"type"`
	Index int      `json:"index"`
	Data  []int    `json:"data"`
	Ease  []int    `json:"ease"`
}

// Track is the ordered keyframes of one category of one node.
type Track struct {
	Tag      int
	Category Category
	Frames   []Keyframe
}

// Range names a span of the master timeline. End is inclusive.
type Range struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Length returns the number of frames covered by r.
func (r Range) Length() int {
	return r.End - r.Start + 1
}

// Clip is the part of the master timeline one node plays for one range.
// Name is replaced by NameIndex when the clip is written to a bundle.
type Clip struct {
	Name      string     `json:"-"`
	NameIndex int        `json:"name"`
	Length    int        `json:"length"`
	Frames    []Keyframe `json:"frames"`
	FPS       int        `json:"fps"`
}

// Pose is the authored, non-animated transform of a node in compiled units.
type Pose struct {
	Position [2]int
	Scale    [2]int
	Rotation [2]int
}

// Value returns the part of the pose a category is encoded against, or nil
// for categories stored as absolute values.
func (p Pose) Value(cat Category) []int {
	switch cat {
	case Position:
		return p.Position[:]
	case Scale:
		return p.Scale[:]
	case Skew:
		return p.Rotation[:]
	case Rotation:
		return p.Rotation[:1]
	case None, Tint, Alpha, Visible, Frame, Delay:
		return nil
	default:
		return nil
	}
}
