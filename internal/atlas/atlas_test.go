package atlas

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/packer"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

const sheetXML = `<GameFile>
  <PropertyGroup Name="main" Type="PlistInfo" ID="1" Version="3.10.0.0" />
  <Content ctype="PlistInfoContent">
    <Content>
      <ImageFiles>
        <FilePathData Path="ui/button/normal.png" />
        <FilePathData Path="ui/icon.png" />
      </ImageFiles>
    </Content>
  </Content>
</GameFile>`

const pageJSON = `{
  "frames": {
    "ui/button/normal": {"frame": {"x": 1, "y": 2, "w": 30, "h": 40}, "rotated": false, "trimmed": true,
      "spriteSourceSize": {"x": 0, "y": 1, "w": 30, "h": 40}, "sourceSize": {"w": 32, "h": 42}},
    "digits/48": {"frame": {"x": 50, "y": 60, "w": 8, "h": 9}, "rotated": false, "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 8, "h": 9}, "sourceSize": {"w": 8, "h": 9}},
    "ui/icon": {"frame": {"x": 70, "y": 0, "w": 16, "h": 16}, "rotated": false, "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}}
  },
  "animations": {},
  "meta": {"image": "main_0.png", "format": "RGBA8888", "size": {"w": 256, "h": 128}, "scale": "1"}
}`

func digitsFont() *font.Font {
	return &font.Font{
		Name: "digits",
		Chars: []font.Char{
			{ID: 48, Dimensions: [4]int{0, 0, 2, 2}},
			{ID: 32, Dimensions: [4]int{0, 0, 0, 0}},
		},
	}
}

func TestParseSheet(t *testing.T) {
	images, err := parseSheet(strings.NewReader(sheetXML))
	require.NoError(t, err)
	assert.Equal(t, []string{"ui/button/normal.png", "ui/icon.png"}, images)
	assert.Equal(t, "main", SheetName("/x/atlas/main.csi"))
}

func TestParsePage(t *testing.T) {
	seed := intern.NewTables()
	f := digitsFont()

	page, err := ParsePage([]byte(pageJSON), "main", seed, []*font.Font{f}, true)
	require.NoError(t, err)

	assert.Equal(t, "main", page.Name)
	assert.Equal(t, 1.0, page.Scale)
	assert.Equal(t, [2]int{256, 128}, page.Size)
	assert.Equal(t, []string{"main_0"}, page.Images)

	require.Len(t, page.Frames, 2)
	assert.Equal(t, Frame{
		ID:               0,
		SourceSize:       [2]int{32, 42},
		SpriteDimensions: [4]int{0, 1, 30, 40},
		Dimensions:       [4]int{1, 2, 30, 40},
		Trimmed:          true,
	}, page.Frames[0])
	assert.Equal(t, 1, page.Frames[1].ID)

	assert.Equal(t, []string{"ui", "button", "normal", "icon"}, seed.TextureParts.Values())
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3}}, seed.Textures.Values())

	assert.Equal(t, [4]int{50, 60, 8, 9}, f.Chars[0].Dimensions)
	assert.Equal(t, [4]int{0, 0, 0, 0}, f.Chars[1].Dimensions)
}

func TestParsePageKeepsGlyphFramesOutsideMain(t *testing.T) {
	seed := intern.NewTables()
	f := digitsFont()

	page, err := ParsePage([]byte(pageJSON), "main", seed, []*font.Font{f}, false)
	require.NoError(t, err)
	assert.Len(t, page.Frames, 3)
	assert.Equal(t, [4]int{0, 0, 2, 2}, f.Chars[0].Dimensions)
}

func TestParsePageRejectsBrokenData(t *testing.T) {
	_, err := ParsePage([]byte(`{"meta": {}}`), "x", intern.NewTables(), nil, false)
	assert.Error(t, err)

	_, err = ParsePage([]byte(`{"frames": `), "x", intern.NewTables(), nil, false)
	assert.Error(t, err)
}

func writeFontPage(t *testing.T, dir string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	require.NoError(t, source.SavePNG(filepath.Join(dir, "digits.png"), img))
}

func TestCutGlyphs(t *testing.T) {
	fontDir := t.TempDir()
	out := t.TempDir()
	writeFontPage(t, fontDir)

	require.NoError(t, CutGlyphs(fontDir, out, []*font.Font{digitsFont()}, zap.NewNop()))

	glyph, err := source.LoadImage(filepath.Join(out, "digits", "48.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), glyph.Bounds())
	_, g, _, _ := glyph.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), g)

	assert.False(t, source.Exists(filepath.Join(out, "digits", "32.png")), "empty glyph is not cut")
}

func TestCutGlyphsSkipsFontWithoutPage(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, CutGlyphs(t.TempDir(), out, []*font.Font{digitsFont()}, zap.NewNop()))
	assert.False(t, source.Exists(filepath.Join(out, "digits")))
}

// fakeRunner emulates the external tools on the filesystem.
type fakeRunner struct {
	t      *testing.T
	calls  []string
	staged []string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, name)
	switch name {
	case packer.TexturePackerBin:
		in := args[0]
		var data string
		for i, a := range args {
			if a == "--data" {
				data = args[i+1]
			}
		}
		err := filepath.Walk(in, func(p string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				rel, _ := filepath.Rel(in, p)
				r.staged = append(r.staged, filepath.ToSlash(rel))
			}
			return err
		})
		require.NoError(r.t, err)
		page := strings.Replace(data, "{n}", "0", 1)
		require.NoError(r.t, os.WriteFile(page, []byte(pageJSON), 0644))
		require.NoError(r.t, os.WriteFile(strings.TrimSuffix(page, ".json")+".png", []byte("png"), 0644))
	}
	return nil, nil
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	dir := source.AssetDir{Name: "game", Root: root}
	require.NoError(t, os.MkdirAll(dir.AtlasPath(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir.AtlasPath(), "main.csi"), []byte(sheetXML), 0644))
	writeFontPage(t, dir.FontPath())

	png := image.NewRGBA(image.Rect(0, 0, 1, 1))
	require.NoError(t, source.SavePNG(filepath.Join(dir.SourcePath(), "ui", "button", "normal.png"), png))
	require.NoError(t, os.WriteFile(filepath.Join(dir.SourcePath(), "ui", "icon.png"), []byte("text"), 0644))

	runner := &fakeRunner{t: t}
	b := NewBuilder(&packer.TexturePacker{Runner: runner}, zap.NewNop())
	b.WebP = &packer.WebP{Runner: runner}
	b.Quant = &packer.PNGQuant{Runner: runner}
	b.TmpRoot = t.TempDir()

	f := digitsFont()
	export := filepath.Join(root, "export", "game")
	seed := intern.NewTables()

	pages, err := b.Build(context.Background(), dir, export, []*font.Font{f}, seed)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Frames, 2)
	assert.Equal(t, [4]int{50, 60, 8, 9}, f.Chars[0].Dimensions)

	assert.ElementsMatch(t, []string{"ui/button/normal.png", "digits/48.png"}, runner.staged)
	assert.Equal(t, []string{packer.TexturePackerBin, packer.CWebPBin, packer.PNGQuantBin}, runner.calls)
	assert.False(t, source.Exists(filepath.Join(export, "main_0.json")))
}

func TestBuildSkipsWithoutSheets(t *testing.T) {
	root := t.TempDir()
	dir := source.AssetDir{Name: "game", Root: root}
	runner := &fakeRunner{t: t}
	b := NewBuilder(&packer.TexturePacker{Runner: runner}, nil)

	pages, err := b.Build(context.Background(), dir, t.TempDir(), nil, intern.NewTables())
	require.NoError(t, err)
	assert.Nil(t, pages)

	require.NoError(t, os.MkdirAll(dir.AtlasPath(), 0755))
	pages, err = b.Build(context.Background(), dir, t.TempDir(), nil, intern.NewTables())
	require.NoError(t, err)
	assert.Nil(t, pages)
	assert.Empty(t, runner.calls)
}
