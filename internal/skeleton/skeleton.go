package skeleton

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/packer"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/particle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

const (
	// ProjectExt is the extension of Spine projects.
	ProjectExt = ".spine"
	// SettingsFile holds the export settings shared by all projects of a dir.
	SettingsFile = "export.json"
)

// Set holds exported skeletons in file name order.
type Set struct {
	Names []string
	Data  []json.RawMessage
}

// Exporter exports Spine projects and collects the resulting JSON.
type Exporter struct {
	Spine *packer.Spine
	// TmpRoot is where the export dir is created. Empty means the system
	// temp dir.
	TmpRoot string

	logger *zap.Logger
}

func NewExporter(spine *packer.Spine, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spine == nil {
		spine = &packer.Spine{}
	}
	return &Exporter{Spine: spine, logger: logger}
}

// Export runs Spine for every project in dir and reads what it produced.
// A missing dir yields an empty set.
func (e *Exporter) Export(ctx context.Context, dir string) (*Set, error) {
	set := &Set{Names: []string{}, Data: []json.RawMessage{}}
	if !source.Exists(dir) {
		e.logger.Info("no spine dir, step skipped", zap.String("dir", dir))
		return set, nil
	}

	projects, err := source.Glob(dir, "*"+ProjectExt)
	if err != nil {
		return nil, err
	}

	out, err := os.MkdirTemp(e.TmpRoot, "spine-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(out)

	settings := filepath.Join(dir, SettingsFile)
	for _, project := range projects {
		e.logger.Info("skeleton export", zap.String("project", filepath.Base(project)))
		if err := e.Spine.Export(ctx, project, out, settings); err != nil {
			return nil, err
		}
	}

	files, err := listJSON(out)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		raw, err := particle.ReadRaw(path)
		if err != nil {
			return nil, fmt.Errorf("skeleton: %w", err)
		}
		name, _, _ := strings.Cut(filepath.Base(path), ".")
		set.Names = append(set.Names, name)
		set.Data = append(set.Data, raw)
	}
	return set, nil
}

// listJSON returns every .json file below dir, sorted.
func listJSON(dir string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}
		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
