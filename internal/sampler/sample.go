package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
)

// curves maps built-in curve ids to easing functions, in editor order.
var curves = []ease.TweenFunc{
	ease.Linear,
	ease.InSine, ease.OutSine, ease.InOutSine,
	ease.InQuad, ease.OutQuad, ease.InOutQuad,
	ease.InCubic, ease.OutCubic, ease.InOutCubic,
	ease.InQuart, ease.OutQuart, ease.InOutQuart,
	ease.InQuint, ease.OutQuint, ease.InOutQuint,
	ease.InExpo, ease.OutExpo, ease.InOutExpo,
	ease.InCirc, ease.OutCirc, ease.InOutCirc,
	ease.InElastic, ease.OutElastic, ease.InOutElastic,
	ease.InBack, ease.OutBack, ease.InOutBack,
	ease.InBounce, ease.OutBounce, ease.InOutBounce,
}

// Sample returns the value of track at frame. Values hold before the first
// and after the last key. Visibility and frame swaps step, tint blends each
// channel, everything else interpolates with the ease of the earlier key.
func Sample(track Track, frame float64) []float64 {
	keys := track.Keys
	if len(keys) == 0 {
		return nil
	}

	if frame <= float64(keys[0].Index) {
		return floats(keys[0].Value)
	}
	last := keys[len(keys)-1]
	if frame >= float64(last.Index) {
		return floats(last.Value)
	}

	var prev, next Key
	for i := 0; i < len(keys)-1; i++ {
		if frame >= float64(keys[i].Index) && frame < float64(keys[i+1].Index) {
			prev, next = keys[i], keys[i+1]
			break
		}
	}

	if !track.Category.Eased() {
		return floats(prev.Value)
	}

	span := float64(next.Index - prev.Index)
	if span == 0 {
		return floats(next.Value)
	}
	t := Ease(prev.Ease, (frame-float64(prev.Index))/span)

	if track.Category == animation.Tint {
		return []float64{blend(prev.Value[0], next.Value[0], t)}
	}

	out := make([]float64, len(prev.Value))
	for i := range out {
		to := float64(prev.Value[i])
		if i < len(next.Value) {
			to = float64(next.Value[i])
		}
		out[i] = lerp(float64(prev.Value[i]), to, t)
	}
	return out
}

// Ease maps linear progress t through an encoded ease: nil is linear, one
// value is a built-in curve id, more values are the inner control points of
// a custom curve in percent.
func Ease(e []int, t float64) float64 {
	switch {
	case len(e) == 0:
		return t
	case len(e) == 1:
		id := e[0]
		if id < 0 || id >= len(curves) {
			return t
		}
		return float64(curves[id](float32(t), 0, 1, 1))
	default:
		return bezier(e, t)
	}
}

// bezier evaluates the Y of a curve from (0,0) to (1,1) through the given
// control points at parameter t.
func bezier(points []int, t float64) float64 {
	ys := make([]float64, 0, len(points)/2+2)
	ys = append(ys, 0)
	for i := 1; i < len(points); i += 2 {
		ys = append(ys, float64(points[i])/100)
	}
	ys = append(ys, 1)

	for n := len(ys) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			ys[i] = lerp(ys[i], ys[i+1], t)
		}
	}
	return ys[0]
}

func blend(from, to int, t float64) float64 {
	ch := func(v, shift int) float64 { return float64(v >> shift & 0xFF) }
	r := lerp(ch(from, 16), ch(to, 16), t)
	g := lerp(ch(from, 8), ch(to, 8), t)
	b := lerp(ch(from, 0), ch(to, 0), t)
	return float64(intern.PackColor(round(r), round(g), round(b)))
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func round(v float64) int {
	return int(v + 0.5)
}

func floats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Format renders sampled values for display. Tint values print as hex colors.
func Format(cat animation.Category, v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		if cat == animation.Tint {
			parts[i] = fmt.Sprintf("#%06X", round(x))
			continue
		}
		parts[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
