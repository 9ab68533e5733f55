package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk seed layout. Categories are always applied;
// the demo creator and their assets are optional.
type File struct {
	Categories []Category `yaml:"categories"`
	Creator    *Creator   `yaml:"creator,omitempty"`
	Assets     []Asset    `yaml:"assets,omitempty"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
}

type Creator struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
	Bio         string `yaml:"bio,omitempty"`
}

// Asset references its category by name so the file stays readable;
// the loader resolves names to ids at apply time.
type Asset struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	PreviewURL  string   `yaml:"preview_url"`
	Price       float64  `yaml:"price"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags,omitempty"`
	Featured    bool     `yaml:"featured,omitempty"`
	Thumbnails  []string `yaml:"thumbnails,omitempty"`
}

// Parse reads and parses a YAML seed file.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a seed file from bytes.
func ParseBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if len(f.Categories) == 0 {
		return fmt.Errorf("seed file has no categories")
	}
	for i, c := range f.Categories {
		if c.Name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
	}
	if f.Creator != nil {
		if f.Creator.Username == "" || f.Creator.Password == "" || f.Creator.DisplayName == "" {
			return fmt.Errorf("creator needs username, password and display_name")
		}
	}
	known := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		known[c.Name] = struct{}{}
	}
	for i, a := range f.Assets {
		if a.Title == "" {
			return fmt.Errorf("asset %d has no title", i)
		}
		if a.PreviewURL == "" {
			return fmt.Errorf("asset %q has no preview_url", a.Title)
		}
		if f.Creator == nil {
			return fmt.Errorf("asset %q needs a creator block", a.Title)
		}
		if _, ok := known[a.Category]; !ok {
			return fmt.Errorf("asset %q references unknown category %q", a.Title, a.Category)
		}
	}
	return nil
}
