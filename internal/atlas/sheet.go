package atlas

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SheetExt is the extension of Cocos Studio sprite sheet descriptors.
const SheetExt = ".csi"

// ReadSheet returns the image paths listed in a .csi descriptor, relative to
// the cocosstudio dir, in file order.
func ReadSheet(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	images, err := parseSheet(f)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", path, err)
	}
	return images, nil
}

func parseSheet(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var images []string
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return images, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "FilePathData" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "Path" && attr.Value != "" {
				images = append(images, filepath.ToSlash(attr.Value))
			}
		}
	}
}

// SheetName returns the atlas name of a descriptor.
func SheetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), SheetExt)
}
