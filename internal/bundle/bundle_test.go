package bundle

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/animation"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/atlas"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/font"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/particle"
	"github.com/yuriilychak/CocosStudio2MantiCore/internal/ui"
)

const hudJSON = `{"Content": {"Content": {
  "Animation": {"Duration": 10, "Speed": 1.0, "Timelines": [
    {"ActionTag": 2, "Property": "Position", "Frames": [
      {"FrameIndex": 0, "X": 10, "Y": 20, "EasingData": {"Type": 0}},
      {"FrameIndex": 10, "X": 40, "Y": -20, "EasingData": {"Type": 0}}
    ]}
  ]},
  "AnimationList": [{"Name": "show", "StartIndex": 0, "EndIndex": 10}],
  "ObjectData": {"Name": "Hud", "ActionTag": 1, "ctype": "LayerObjectData", "Size": {"X": 400, "Y": 200},
    "Children": [
      {"Name": "Icon", "ActionTag": 2, "ctype": "SpriteObjectData",
       "Position": {"X": 10, "Y": 20}, "Size": {"X": 32, "Y": 32},
       "FileData": {"Type": "PlistSubImage", "Path": "ui/icon.png", "Plist": "main.plist"}}
    ]}
}}}`

const popupJSON = `{"Content": {"Content": {
  "Animation": {"Duration": 0, "Timelines": []},
  "ObjectData": {"Name": "Popup", "ActionTag": 5, "ctype": "LayerObjectData", "Size": {"X": 300, "Y": 100},
    "Children": [
      {"Name": "Hud", "ActionTag": 6, "ctype": "ProjectNodeObjectData",
       "FileData": {"Type": "Normal", "Path": "element/hud.json"}}
    ]}
}}}`

func writeElement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assets() Assets {
	return Assets{
		Fonts: []*font.Font{{Name: "digits", Size: 24, Chars: []font.Char{}}},
		Pages: []atlas.Page{{Name: "main", Images: []string{"main_0"}}},
		Particles: &particle.Set{
			Names: []string{"sparks"},
			Data:  []json.RawMessage{json.RawMessage(`{"max":5}`)},
		},
	}
}

func TestBundleFinish(t *testing.T) {
	dir := t.TempDir()
	a := assets()
	seed := Seed(a.Fonts)
	seed.InternPath("ui/icon")

	b := New("game", seed, a, nil)
	require.NoError(t, b.AddFile(writeElement(t, dir, "hud", hudJSON)))
	require.NoError(t, b.AddFile(writeElement(t, dir, "popup", popupJSON)))
	assert.Equal(t, 2, b.Len())

	doc := b.Finish()

	assert.Equal(t, "game", doc.Name)
	assert.Equal(t, Type, doc.BundleType)
	assert.Equal(t, []string{"hud", "popup"}, doc.ComponentNames)
	assert.Equal(t, []string{"wgtHud", "sptIcon", "wgtPopup", "uieHud"}, doc.ElementNames)
	assert.Equal(t, []string{"digits"}, doc.Fonts)
	assert.Equal(t, []string{"show"}, doc.AnimationNames)
	assert.Equal(t, []string{"sparks"}, doc.ParticleNames)
	assert.Empty(t, doc.Skeletons)
	assert.NotNil(t, doc.Skeletons)

	require.Len(t, doc.UI, 2)
	hud := doc.UI[0]
	assert.Equal(t, 0, hud.NameIndex)
	require.Len(t, hud.Children, 1)
	icon := hud.Children[0]
	assert.Equal(t, []int{0}, icon.FileData, "atlas texture keeps its seed index")
	assert.Equal(t, 180, icon.Dimensions[1])
	require.Len(t, icon.Animations, 1)

	popup := doc.UI[1]
	require.Len(t, popup.Children, 1)
	assert.Equal(t, []int{0}, popup.Children[0].FileData, "project node points at the hud component")

	assert.Equal(t, 0, seed.ElementNames.Len(), "seed is not modified")
	assert.Equal(t, 0, seed.ComponentNames.Len())

	stats := doc.Stats()
	assert.Equal(t, 4, stats.Elements)
	assert.Equal(t, 2, stats.Clips)
}

func TestBundleDuplicateActionTag(t *testing.T) {
	dup := `{"Content": {"Content": {
  "Animation": {"Duration": 5, "Timelines": [
    {"ActionTag": 3, "Property": "Alpha", "Frames": [{"FrameIndex": 0, "Value": 255}]}
  ]},
  "AnimationList": [{"Name": "a", "StartIndex": 0, "EndIndex": 5}],
  "ObjectData": {"ActionTag": 3, "ctype": "LayerObjectData",
    "Children": [{"ActionTag": 3, "ctype": "SpriteObjectData"}]}
}}}`
	b := New("game", Seed(nil), Assets{}, nil)
	err := b.AddFile(writeElement(t, t.TempDir(), "dup", dup))
	require.Error(t, err)
	assert.True(t, errors.Is(err, animation.ErrDuplicateActionTag))
	assert.Equal(t, 0, b.Len())
}

func TestBundleCatalogOverridesRanges(t *testing.T) {
	dir := t.TempDir()
	path := writeElement(t, dir, "hud", hudJSON)
	require.NoError(t, animation.WriteCatalog(&animation.Catalog{
		Version: "1.0",
		Element: "hud",
		FPS:     30,
		Ranges: []animation.Range{
			{Name: "first", Start: 0, End: 4},
			{Name: "second", Start: 5, End: 10},
		},
	}, animation.CatalogPath(path)))

	b := New("game", Seed(nil), Assets{}, nil)
	require.NoError(t, b.AddFile(path))
	doc := b.Finish()

	assert.Equal(t, []string{"first", "second"}, doc.AnimationNames)
	var fps []int
	doc.Clips(func(_ *ui.Element, c animation.Clip) { fps = append(fps, c.FPS) })
	require.NotEmpty(t, fps)
	for _, v := range fps {
		assert.Equal(t, 30, v)
	}
}

func TestBundleEmptyDocumentKeys(t *testing.T) {
	doc := New("empty", Seed(nil), Assets{}, nil).Finish()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	for _, key := range []string{
		"anchors", "animationNames", "atlases", "atlasFonts", "colors", "componentNames",
		"elementNames", "fonts", "fontData", "fontStyles", "texts", "textFieldStyles",
		"textures", "textureParts", "ui", "skeletons", "skeletonNames", "particleNames",
		"particleData",
	} {
		require.Contains(t, keys, key)
		assert.NotEqual(t, "null", string(keys[key]), key)
	}
	assert.JSONEq(t, `[[0,0]]`, string(keys["anchors"]))
	assert.JSONEq(t, `[16777215]`, string(keys["colors"]))
	assert.JSONEq(t, `1`, string(keys["bundleType"]))
}
