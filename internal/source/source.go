package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Fixed directory names of a Cocos Studio asset project.
const (
	SourceDir   = "cocosstudio"
	ExportDir   = "export"
	ElementDir  = "element"
	FontDir     = "font"
	AtlasDir    = "atlas"
	SpineDir    = "spine"
	ParticleDir = "particle"
)

// Platform selects an element list of a project.
type Platform string

const (
	Desktop Platform = "desktop"
	Common  Platform = "common"
	Mobile  Platform = "mobile"
)

// AssetDir is a project directory holding a cocosstudio source tree.
type AssetDir struct {
	Name string
	Root string
}

func (a AssetDir) SourcePath() string {
	return filepath.Join(a.Root, SourceDir)
}

func (a AssetDir) FontPath() string {
	return filepath.Join(a.SourcePath(), FontDir)
}

func (a AssetDir) AtlasPath() string {
	return filepath.Join(a.SourcePath(), AtlasDir)
}

func (a AssetDir) SpinePath() string {
	return filepath.Join(a.SourcePath(), SpineDir)
}

func (a AssetDir) ParticlePath() string {
	return filepath.Join(a.SourcePath(), ParticleDir)
}

// ElementPath is the directory holding the exported element documents.
func (a AssetDir) ElementPath() string {
	return filepath.Join(a.Root, ExportDir, ElementDir)
}

// HasElements reports whether the project exports any element list.
func (a AssetDir) HasElements() bool {
	return isDir(a.ElementPath())
}

// Elements lists the element documents of platform p in file name order.
// ok is false when the platform has no directory.
func (a AssetDir) Elements(p Platform) (paths []string, ok bool, err error) {
	dir := filepath.Join(a.ElementPath(), string(p))
	if !isDir(dir) {
		return nil, false, nil
	}
	paths, err = Glob(dir, "*.json")
	return paths, true, err
}

// ElementName returns the name an element document is registered under.
func ElementName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

// FindAssetDirs returns every directory below root that contains a
// cocosstudio tree, ordered by name. Export directories are not searched.
// The root is made absolute first so a project found at the root itself is
// named after its directory.
func FindAssetDirs(ctx context.Context, root string) ([]AssetDir, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		dirs []AssetDir
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if p != root && (name == ExportDir || strings.HasPrefix(name, ".")) {
			return fastwalk.SkipDir
		}
		if name != SourceDir {
			return nil
		}

		project := filepath.Dir(p)
		mu.Lock()
		dirs = append(dirs, AssetDir{Name: filepath.Base(project), Root: project})
		mu.Unlock()
		return fastwalk.SkipDir
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Root < dirs[j].Root })
	return dirs, nil
}

// Glob matches pattern inside dir and returns sorted paths. dir is taken
// literally, only pattern may hold meta characters.
func Glob(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	sort.Strings(paths)
	return paths, nil
}

// Within reports whether path is dir or lies below it. Both are compared as
// absolute paths.
func Within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
