package engine

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/bundle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/config"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/packer"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

const pageJSON = `{"frames": {
  "ui/icon": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "rotated": false, "trimmed": false,
    "spriteSourceSize": {"x": 0, "y": 0, "w": 4, "h": 4}, "sourceSize": {"w": 4, "h": 4}}
}, "meta": {"image": "main_0.png", "size": {"w": 8, "h": 8}, "scale": "1"}}`

const sheetXML = `<GameFile><Content><Content><ImageFiles>
  <FilePathData Path="ui/icon.png" />
</ImageFiles></Content></Content></GameFile>`

func element(name string, tag int) string {
	return `{"Content": {"Content": {
  "Animation": {"Duration": 4, "Timelines": [
    {"ActionTag": ` + strconv.Itoa(tag) + `, "Property": "Alpha", "Frames": [{"FrameIndex": 0, "Value": 255}, {"FrameIndex": 4, "Value": 0}]}
  ]},
  "AnimationList": [{"Name": "fade", "StartIndex": 0, "EndIndex": 4}],
  "ObjectData": {"Name": "` + name + `", "ActionTag": 1, "ctype": "LayerObjectData", "Size": {"X": 100, "Y": 50},
    "Children": [{"Name": "Icon", "ActionTag": ` + strconv.Itoa(tag) + `, "ctype": "SpriteObjectData",
      "FileData": {"Type": "PlistSubImage", "Path": "ui/icon.png", "Plist": "main.plist"}}]}
}}}`
}

type toolRunner struct {
	calls []string
}

func (r *toolRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, name)
	if name != packer.TexturePackerBin {
		return nil, nil
	}
	var data string
	for i, a := range args {
		if a == "--data" {
			data = args[i+1]
		}
	}
	page := strings.Replace(data, "{n}", "0", 1)
	if err := os.WriteFile(page, []byte(pageJSON), 0644); err != nil {
		return nil, err
	}
	return nil, os.WriteFile(strings.TrimSuffix(page, ".json")+".png", []byte("png"), 0644)
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func project(t *testing.T) (root string, dir source.AssetDir) {
	t.Helper()
	root = t.TempDir()
	dir = source.AssetDir{Name: "game", Root: filepath.Join(root, "game")}

	write(t, filepath.Join(dir.AtlasPath(), "main.csi"), sheetXML)
	require.NoError(t, source.SavePNG(filepath.Join(dir.SourcePath(), "ui", "icon.png"), image.NewRGBA(image.Rect(0, 0, 4, 4))))
	write(t, filepath.Join(dir.ParticlePath(), "sparks.json"), `{"max": 3}`)
	write(t, filepath.Join(dir.ElementPath(), "common", "hud.json"), element("Hud", 2))
	write(t, filepath.Join(dir.ElementPath(), "desktop", "menu.json"), element("Menu", 3))
	return root, dir
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	cfg.Workers = 2
	cfg.Compression = "gzip"
	return cfg
}

func TestRun(t *testing.T) {
	root, _ := project(t)
	cfg := testConfig(root)
	cfg.ShowStats = true
	cfg.BuildVersion = "test"

	runner := &toolRunner{}
	p := NewBundleProject(cfg, nil)
	p.Runner = runner
	p.BenchmarkLog = filepath.Join(t.TempDir(), "benchmark.log")

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Dirs, 1)
	assert.Equal(t, p.RunID(), report.RunID)

	d := report.Dirs[0]
	assert.Equal(t, "game", d.Name)
	assert.Equal(t, 1, d.Pages)
	assert.Equal(t, 1, d.Particles)
	require.Len(t, d.Bundles, 2)
	assert.Len(t, d.Bundles[0].Files, 2)

	export := cfg.ExportPath("game")
	desktop, err := bundle.Read(filepath.Join(export, "bundle_d.json.gz"))
	require.NoError(t, err)
	assert.Equal(t, []string{"menu", "hud"}, desktop.ComponentNames)
	assert.Equal(t, []string{"sparks"}, desktop.ParticleNames)
	require.Len(t, desktop.Atlases, 1)
	assert.Equal(t, "ui/icon", strings.Join([]string{
		desktop.TextureParts[desktop.Textures[0][0]],
		desktop.TextureParts[desktop.Textures[0][1]],
	}, "/"))
	require.Len(t, desktop.UI, 2)
	assert.Equal(t, []int{0}, desktop.UI[0].Children[0].FileData)

	mobile, err := bundle.Read(filepath.Join(export, "bundle_m.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hud"}, mobile.ComponentNames)

	assert.Equal(t, []string{packer.TexturePackerBin, packer.CWebPBin, packer.PNGQuantBin}, runner.calls)

	log, err := os.ReadFile(p.BenchmarkLog)
	require.NoError(t, err)
	assert.Contains(t, string(log), p.RunID())
	assert.Contains(t, string(log), "Bundles: 2")
}

func TestRunRejectsOnlyBrokenBundle(t *testing.T) {
	root, dir := project(t)
	write(t, filepath.Join(dir.ElementPath(), "mobile", "broken.json"), `{"Content": {"Content": {
  "Animation": {"Duration": 2, "Timelines": [
    {"ActionTag": 4, "Property": "Alpha", "Frames": [{"FrameIndex": 0, "Value": 255}]}
  ]},
  "AnimationList": [{"Name": "a", "StartIndex": 0, "EndIndex": 2}],
  "ObjectData": {"ActionTag": 4, "ctype": "LayerObjectData",
    "Children": [{"ActionTag": 4, "ctype": "SpriteObjectData"}]}
}}}`)
	cfg := testConfig(root)
	cfg.Steps.Atlas = false

	p := NewBundleProject(cfg, nil)
	p.Runner = &toolRunner{}
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Dirs[0].Bundles, 1)
	assert.Equal(t, source.Desktop, report.Dirs[0].Bundles[0].Platform)
	assert.True(t, source.Exists(filepath.Join(cfg.ExportPath("game"), "bundle_d.json")))
	assert.False(t, source.Exists(filepath.Join(cfg.ExportPath("game"), "bundle_m.json")))
}

func TestRunFromInsideProject(t *testing.T) {
	_, dir := project(t)
	chdir(t, dir.Root)
	cfg := testConfig(".")
	cfg.Steps.Atlas = false

	p := NewBundleProject(cfg, nil)
	p.Runner = &toolRunner{}
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Dirs, 1)
	assert.Equal(t, "game", report.Dirs[0].Name)
	assert.Len(t, report.Dirs[0].Bundles, 2)
	assert.True(t, source.Exists(filepath.Join("export", "element", "desktop", "menu.json")))
	assert.True(t, source.Exists(filepath.Join("export", "game", "bundle_d.json")))
}

func TestRunRefusesExportOverSources(t *testing.T) {
	root, dir := project(t)
	cfg := testConfig(root)
	cfg.ExportDir = root
	cfg.Steps.Atlas = false

	p := NewBundleProject(cfg, nil)
	p.Runner = &toolRunner{}
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafeExport)
	assert.True(t, source.Exists(filepath.Join(dir.ElementPath(), "desktop", "menu.json")))
}

func TestRunSkipsDirWithoutElements(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bare", source.SourceDir), 0755))

	p := NewBundleProject(testConfig(root), nil)
	p.Runner = &toolRunner{}
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Dirs, 1)
	assert.Empty(t, report.Dirs[0].Bundles)
}

func TestRunFailsOnBrokenDocument(t *testing.T) {
	root, dir := project(t)
	write(t, filepath.Join(dir.ElementPath(), "common", "zz.json"), `{"Content": {}}`)
	cfg := testConfig(root)
	cfg.Steps.Atlas = false

	p := NewBundleProject(cfg, nil)
	p.Runner = &toolRunner{}
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset dir game")
}

func TestRunChecksTools(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Tools.TexturePacker = "texture-packer-that-does-not-exist"

	_, err := NewBundleProject(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTools))
	assert.Contains(t, err.Error(), "texture-packer-that-does-not-exist")
}

func TestReportString(t *testing.T) {
	r := &Report{
		RunID: "abc",
		Build: "1.0",
		Dirs: []DirReport{{
			Name:    "game",
			Bundles: []BundleReport{{Platform: source.Desktop, Stats: bundle.Stats{Elements: 4, Clips: 2}}},
		}},
	}
	s := r.String()
	assert.Contains(t, s, "PERFORMANCE REPORT")
	assert.Contains(t, s, "Bundles: 1 | Elements: 4 | Clips: 2")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
