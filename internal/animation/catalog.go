package animation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

// CatalogSuffix is appended to an element document name to locate its range
// catalog.
const CatalogSuffix = ".anim.yaml"

// Catalog is an editable list of the ranges to extract from one element.
type Catalog struct {
	Version string  `yaml:"version"`
	Element string  `yaml:"element"`
	FPS     int     `yaml:"fps,omitempty"`
	Ranges  []Range `yaml:"ranges"`
}

// WriteCatalog writes a catalog to a YAML file
func WriteCatalog(catalog *Catalog, path string) error {
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadCatalog reads a catalog from a YAML file
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	for _, r := range catalog.Ranges {
		if r.End < r.Start {
			return nil, fmt.Errorf("catalog %s: range %q ends before it starts", path, r.Name)
		}
	}
	return &catalog, nil
}

// CatalogPath returns the catalog location for an element document.
func CatalogPath(elementPath string) string {
	return strings.TrimSuffix(elementPath, ".json") + CatalogSuffix
}

// FindCatalog returns the catalog next to elementPath if there is one.
func FindCatalog(elementPath string) (string, bool) {
	path := CatalogPath(elementPath)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// DocumentRanges returns the ranges declared inside doc.
func DocumentRanges(doc *scene.Document) []Range {
	ranges := make([]Range, 0, len(doc.AnimationList))
	for _, a := range doc.AnimationList {
		ranges = append(ranges, Range{Name: a.Name, Start: a.StartIndex, End: a.EndIndex})
	}
	return ranges
}

// ResolveRanges prefers a catalog next to elementPath over the ranges
// declared in the document.
func ResolveRanges(doc *scene.Document, elementPath string) ([]Range, *Catalog, error) {
	path, ok := FindCatalog(elementPath)
	if !ok {
		return DocumentRanges(doc), nil, nil
	}
	catalog, err := ReadCatalog(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DocumentRanges(doc), nil, nil
		}
		return nil, nil, err
	}
	return catalog.Ranges, catalog, nil
}

// NewCatalog builds a catalog from the ranges declared in doc.
func NewCatalog(element string, doc *scene.Document) *Catalog {
	return &Catalog{
		Version: "1.0",
		Element: element,
		FPS:     doc.Animation.FrameRate(),
		Ranges:  DocumentRanges(doc),
	}
}
