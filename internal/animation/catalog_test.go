package animation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

func TestCatalogWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popup"+CatalogSuffix)

	catalog := &Catalog{
		Version: "1.0",
		Element: "popup",
		FPS:     30,
		Ranges: []Range{
			{Name: "show", Start: 0, End: 14},
			{Name: "hide", Start: 15, End: 29},
		},
	}
	require.NoError(t, WriteCatalog(catalog, path))

	read, err := ReadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, catalog, read)
}

func TestReadCatalogRejectsInvertedRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+CatalogSuffix)
	require.NoError(t, os.WriteFile(path, []byte("ranges:\n  - {name: x, start: 10, end: 2}\n"), 0644))

	_, err := ReadCatalog(path)
	assert.Error(t, err)
}

func TestCatalogPath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "popup.anim.yaml"), CatalogPath(filepath.Join("a", "popup.json")))
}

func TestResolveRanges(t *testing.T) {
	dir := t.TempDir()
	element := filepath.Join(dir, "popup.json")
	doc := &scene.Document{AnimationList: []scene.AnimationInfo{{Name: "doc", StartIndex: 0, EndIndex: 5}}}

	ranges, catalog, err := ResolveRanges(doc, element)
	require.NoError(t, err)
	assert.Nil(t, catalog)
	assert.Equal(t, []Range{{Name: "doc", Start: 0, End: 5}}, ranges)

	require.NoError(t, WriteCatalog(&Catalog{Ranges: []Range{{Name: "file", Start: 1, End: 2}}}, CatalogPath(element)))

	ranges, catalog, err = ResolveRanges(doc, element)
	require.NoError(t, err)
	require.NotNil(t, catalog)
	assert.Equal(t, []Range{{Name: "file", Start: 1, End: 2}}, ranges)
}

func TestNewCatalog(t *testing.T) {
	speed := 0.5
	doc := &scene.Document{
		Animation:     scene.Animation{Speed: &speed},
		AnimationList: []scene.AnimationInfo{{Name: "idle", StartIndex: 0, EndIndex: 59}},
	}
	c := NewCatalog("hud", doc)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, "hud", c.Element)
	assert.Equal(t, 60, c.Ranges[0].Length())
}
