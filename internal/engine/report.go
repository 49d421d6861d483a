package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/bundle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

// Report summarizes a run.
type Report struct {
	RunID string
	Build string
	Dirs  []DirReport
	Total time.Duration
}

// DirReport summarizes one asset dir.
type DirReport struct {
	Name      string
	Fonts     int
	Pages     int
	Skeletons int
	Particles int
	Bundles   []BundleReport
	Duration  time.Duration
}

type BundleReport struct {
	Platform source.Platform
	Files    []string
	Stats    bundle.Stats
}

// Totals adds up the stats of every written bundle.
func (r *Report) Totals() (bundles int, s bundle.Stats) {
	for _, d := range r.Dirs {
		for _, b := range d.Bundles {
			bundles++
			s.Elements += b.Stats.Elements
			s.Clips += b.Stats.Clips
			s.Keyframes += b.Stats.Keyframes
			s.Textures += b.Stats.Textures
			s.Colors += b.Stats.Colors
			s.Texts += b.Stats.Texts
		}
	}
	return bundles, s
}

func (r *Report) String() string {
	bundles, s := r.Totals()
	var sb strings.Builder
	sb.WriteString("--- [PERFORMANCE REPORT] ---\n")
	fmt.Fprintf(&sb, "Build: %s\n", r.Build)
	fmt.Fprintf(&sb, "Run: %s\n", r.RunID)
	fmt.Fprintf(&sb, "Total Time: %.2fs\n", r.Total.Seconds())
	for _, d := range r.Dirs {
		fmt.Fprintf(&sb, "%s: %.2fs | fonts %d | atlas pages %d | skeletons %d | particles %d\n",
			d.Name, d.Duration.Seconds(), d.Fonts, d.Pages, d.Skeletons, d.Particles)
		for _, b := range d.Bundles {
			fmt.Fprintf(&sb, "  %s: elements %d | clips %d | keyframes %d | textures %d\n",
				b.Platform, b.Stats.Elements, b.Stats.Clips, b.Stats.Keyframes, b.Stats.Textures)
		}
	}
	fmt.Fprintf(&sb, "Bundles: %d | Elements: %d | Clips: %d\n", bundles, s.Elements, s.Clips)
	sb.WriteString("----------------------------\n")
	return sb.String()
}

// LogEntry is the single benchmark log line of the run.
func (r *Report) LogEntry(now time.Time) string {
	bundles, s := r.Totals()
	return fmt.Sprintf("[%s] Build: %s | Run: %s | Dirs: %d | Bundles: %d | Elements: %d | Clips: %d | Total: %.2fs\n",
		now.Format("2006-01-02 15:04:05"),
		r.Build,
		r.RunID,
		len(r.Dirs),
		bundles,
		s.Elements,
		s.Clips,
		r.Total.Seconds(),
	)
}
