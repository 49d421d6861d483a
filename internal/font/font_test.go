package font

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const digits = `info face="Digits Bold" size=32 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,2
common lineHeight=38 base=30 scaleW=256 scaleH=256 pages=1 packed=0
page id=0 file="digits.png"
chars count=3
char id=48 x=0 y=0 width=20 height=30 xoffset=1 yoffset=4 xadvance=22 page=0 chnl=15
char id=49 x=20 y=0 width=12 height=30 xoffset=1 yoffset=4 xadvance=14 page=0 chnl=15
char id=32 x=0 y=0 width=0 height=0 xoffset=0 yoffset=0 xadvance=10 page=0 chnl=15
kernings count=1
kerning first=48 second=49 amount=-2
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(digits))
	require.NoError(t, err)

	assert.Equal(t, 32, f.Size)
	assert.Equal(t, [2]int{1, 2}, f.Spacing)
	assert.Equal(t, 38, f.LineHeight)
	assert.Equal(t, 30, f.Base)
	assert.Equal(t, []string{"digits.png"}, f.Pages)

	require.Len(t, f.Chars, 3)
	assert.Equal(t, Char{ID: 48, Dimensions: [4]int{0, 0, 20, 30}, Offset: 0, Advance: 22}, f.Chars[0])
	assert.Equal(t, 0, f.Chars[1].Offset, "equal offsets share an entry")
	assert.Equal(t, 1, f.Chars[2].Offset)
	assert.Equal(t, [][2]int{{1, 4}, {0, 0}}, f.Offsets)
	assert.Equal(t, [][3]int{{48, 49, -2}}, f.Kerning)
}

func TestParseMissingCommon(t *testing.T) {
	_, err := Parse(strings.NewReader("info size=12\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseFields(t *testing.T) {
	got := parseFields(`face="Arial Black" size=-12 charset=""`)
	assert.Equal(t, map[string]string{"face": "Arial Black", "size": "-12", "charset": ""}, got)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.fnt", "a.fnt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(digits), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0644))

	fonts, err := LoadDir(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Names(fonts))
	assert.Equal(t, []int{32, 32}, Sizes(fonts))
	assert.Equal(t, "digits.png", fonts[0].PageImage())
}

func TestLoadDirMissing(t *testing.T) {
	fonts, err := LoadDir(filepath.Join(t.TempDir(), "font"), nil)
	require.NoError(t, err)
	assert.Empty(t, fonts)
}

func TestPageImageFallback(t *testing.T) {
	f := &Font{Name: "title"}
	assert.Equal(t, "title.png", f.PageImage())
}

func TestLoadDirLiteralPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fonts [hd]")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "digits.fnt"), []byte(digits), 0644))

	fonts, err := LoadDir(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"digits"}, Names(fonts))
}
