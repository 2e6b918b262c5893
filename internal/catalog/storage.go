package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	itemsFile      = "items.json"
	promotionsFile = "promotions.json"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// FileSource reads items and promotions from JSON files in a directory
type FileSource struct {
	fsys fs.FS
}

// NewFileSource creates a FileSource rooted at basePath
func NewFileSource(basePath string) (*FileSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path is not a directory: %s", basePath)
	}
	return &FileSource{fsys: os.DirFS(basePath)}, nil
}

// Defaults returns the catalog bundled with the binary
func Defaults() *FileSource {
	fsys, err := fs.Sub(fixturesFS, "fixtures")
	if err != nil {
		panic(err)
	}
	return &FileSource{fsys: fsys}
}

// LoadAllItems reads items.json
func (f *FileSource) LoadAllItems() ([]Item, error) {
	items := make([]Item, 0)
	if err := f.readJSON(itemsFile, &items); err != nil {
		return nil, err
	}
	if err := ValidateItems(items); err != nil {
		return nil, fmt.Errorf("reading %s: %w", itemsFile, err)
	}
	return items, nil
}

// LoadPromotions reads promotions.json. A missing file means no promotions.
func (f *FileSource) LoadPromotions() ([]Promotion, error) {
	promotions := make([]Promotion, 0)
	if _, err := fs.Stat(f.fsys, promotionsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return promotions, nil
		}
		return nil, fmt.Errorf("reading %s: %w", promotionsFile, err)
	}
	if err := f.readJSON(promotionsFile, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (f *FileSource) readJSON(name string, v any) error {
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", name, err)
	}
	return nil
}

// WriteFiles writes items and promotions as JSON files under basePath
func WriteFiles(basePath string, items []Item, promotions []Promotion) error {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := writeJSON(filepath.Join(basePath, itemsFile), items); err != nil {
		return err
	}
	return writeJSON(filepath.Join(basePath, promotionsFile), promotions)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
