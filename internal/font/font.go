package font

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/intern"
)

// Ext is the extension of BMFont descriptor files.
const Ext = ".fnt"

// ErrMalformed is returned for descriptors without the common block.
var ErrMalformed = errors.New("font: malformed descriptor")

// Char is one glyph. Dimensions is its rectangle on the page, replaced by the
// atlas rectangle once glyphs are packed. Offset indexes Font.Offsets.
type Char struct {
	ID         int    `json:"id"`
	Page       int    `json:"page"`
	Dimensions [4]int `json:"dimensions"`
	Offset     int    `json:"offset"`
	Advance    int    `json:"ax"`
}

// Font holds the metrics of a bitmap font.
type Font struct {
	Name       string   `json:"-"`
	Pages      []string `json:"-"`
	Size       int      `json:"size"`
	Spacing    [2]int   `json:"spacing"`
	LineHeight int      `json:"lineHeight"`
	Base       int      `json:"base"`
	Chars      []Char   `json:"chars"`
	Kerning    [][3]int `json:"kerning"`
	Offsets    [][2]int `json:"offsets"`
}

// PageImage returns the file name of the first page texture.
func (f *Font) PageImage() string {
	if len(f.Pages) > 0 && f.Pages[0] != "" {
		return f.Pages[0]
	}
	return f.Name + ".png"
}

// ParseFile reads a .fnt file. The font is named after the file.
func ParseFile(path string) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Name = strings.TrimSuffix(filepath.Base(path), Ext)
	return f, nil
}

// Parse reads the text variant of the BMFont format.
func Parse(r io.Reader) (*Font, error) {
	f := &Font{
		Chars:   []Char{},
		Kerning: [][3]int{},
	}
	offsets := intern.New[[2]int]()
	common := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "info":
			f.Size = atoi(fields["size"])
			f.Spacing = pair(fields["spacing"])
		case "common":
			common = true
			f.LineHeight = atoi(fields["lineHeight"])
			f.Base = atoi(fields["base"])
		case "page":
			id := atoi(fields["id"])
			for len(f.Pages) <= id {
				f.Pages = append(f.Pages, "")
			}
			f.Pages[id] = fields["file"]
		case "char":
			offset := [2]int{atoi(fields["xoffset"]), atoi(fields["yoffset"])}
			f.Chars = append(f.Chars, Char{
				ID:   atoi(fields["id"]),
				Page: atoi(fields["page"]),
				Dimensions: [4]int{
					atoi(fields["x"]), atoi(fields["y"]),
					atoi(fields["width"]), atoi(fields["height"]),
				},
				Offset:  offsets.Intern(offset),
				Advance: atoi(fields["xadvance"]),
			})
		case "kerning":
			f.Kerning = append(f.Kerning, [3]int{
				atoi(fields["first"]), atoi(fields["second"]), atoi(fields["amount"]),
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("font: read descriptor: %w", err)
	}
	if !common {
		return nil, fmt.Errorf("%w: missing common line", ErrMalformed)
	}

	f.Offsets = offsets.Values()
	return f, nil
}

// splitTag splits a line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses key=value pairs. Quoted values may contain spaces.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t")
		eq := strings.IndexByte(s, '=')
		if eq == -1 {
			break
		}
		key := strings.TrimSpace(s[:eq])
		s = s[eq+1:]

		var val string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end == -1 {
				val, s = s[1:], ""
			} else {
				val, s = s[1:end+1], s[end+2:]
			}
		} else {
			end := strings.IndexAny(s, " \t")
			if end == -1 {
				val, s = s, ""
			} else {
				val, s = s[:end], s[end:]
			}
		}
		fields[key] = val
	}
	return fields
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func pair(s string) [2]int {
	a, b, _ := strings.Cut(s, ",")
	return [2]int{atoi(a), atoi(b)}
}
