package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validSeedYAML = `
categories:
  - name: Illustrations
    description: Hand drawn and digital illustrations
    icon: palette
  - name: Icons
    icon: shapes

creator:
  username: artcove
  password: artcove-demo
  display_name: ArtCove Studio
  bio: Demo creator

assets:
  - title: Coastal Watercolor Pack
    description: Twelve layered watercolor scenes
    preview_url: https://cdn.example.com/coastal.png
    price: 18.5
    category: Illustrations
    tags: [watercolor, coastal]
    featured: true
    thumbnails:
      - https://cdn.example.com/coastal_1.png
  - title: Hairline Icon Grid
    preview_url: https://cdn.example.com/icons.png
    price: 9
    category: Icons
`

func TestParseBytesValidFile(t *testing.T) {
	f, err := ParseBytes([]byte(validSeedYAML))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(f.Categories) != 2 {
		t.Fatalf("categories: want=2 got=%d", len(f.Categories))
	}
	if f.Categories[0].Name != "Illustrations" || f.Categories[0].Icon != "palette" {
		t.Fatalf("first category: got=%+v", f.Categories[0])
	}
	if f.Creator == nil || f.Creator.Username != "artcove" {
		t.Fatalf("creator: got=%+v", f.Creator)
	}
	if len(f.Assets) != 2 {
		t.Fatalf("assets: want=2 got=%d", len(f.Assets))
	}
	if !f.Assets[0].Featured || f.Assets[0].Price != 18.5 {
		t.Fatalf("first asset: got=%+v", f.Assets[0])
	}
	if f.Assets[1].Category != "Icons" {
		t.Fatalf("second asset category: want=%q got=%q", "Icons", f.Assets[1].Category)
	}
}

func TestParseReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(validSeedYAML), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	f, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Categories) != 2 {
		t.Fatalf("categories: want=2 got=%d", len(f.Categories))
	}
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Parse: expected error for missing file")
	}
}

func TestValidateRejectsBrokenFiles(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			"no categories",
			`creator: {username: a, password: b, display_name: c}`,
			"no categories",
		},
		{
			"unnamed category",
			"categories:\n  - description: nameless",
			"has no name",
		},
		{
			"creator missing fields",
			"categories:\n  - name: Icons\ncreator:\n  username: artcove",
			"creator needs",
		},
		{
			"asset without creator",
			"categories:\n  - name: Icons\nassets:\n  - title: X\n    preview_url: u\n    price: 1\n    category: Icons",
			"needs a creator block",
		},
		{
			"asset with unknown category",
			"categories:\n  - name: Icons\ncreator: {username: a, password: b, display_name: c}\nassets:\n  - title: X\n    preview_url: u\n    price: 1\n    category: Fonts",
			"unknown category",
		},
		{
			"asset without preview",
			"categories:\n  - name: Icons\ncreator: {username: a, password: b, display_name: c}\nassets:\n  - title: X\n    price: 1\n    category: Icons",
			"no preview_url",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("ParseBytes: expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error: want substring %q got=%q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestParseBytesRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseBytes([]byte("categories: [")); err == nil {
		t.Fatalf("ParseBytes: expected YAML error")
	}
}
