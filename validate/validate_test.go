package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePreset writes a preset next to an images folder holding imageCount pngs
func writePreset(t *testing.T, name, content string, imageCount int) string {
	t.Helper()
	dir := t.TempDir()

	images := filepath.Join(dir, "images")
	if err := os.MkdirAll(images, 0755); err != nil {
		t.Fatalf("Failed to create images dir: %v", err)
	}
	for i := 0; i < imageCount; i++ {
		path := filepath.Join(images, string(rune('a'+i))+".png")
		if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
			t.Fatalf("Failed to write image: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}
	return path
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `name: Test Config
description: Test configuration
language: pt-BR
pairs: 3
player_count: 2
media:
  images:
    folder: images
messages:
  match: "%s achou um par! Pontos: %d"
`
	path := writePreset(t, "test.yaml", validConfig, 4)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != "test.yaml" {
		t.Errorf("Expected file name test.yaml, got %s", result.File)
	}

	hasInfo := false
	for _, info := range result.Errors {
		if info == "✓ Board: 3 pairs on 2x3" {
			hasInfo = true
		}
	}
	if !hasInfo {
		t.Errorf("Expected board info, got %v", result.Errors)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writePreset(t, "bad.json", `{"name": "test", invalid json}`, 1)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Invalid preset") {
		t.Errorf("Expected parse error, got %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")

	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateConfig_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		images  int
		want    string
	}{
		{
			name:    "missing description",
			content: "name: x\nmedia:\n  images:\n    folder: images\n",
			images:  2,
			want:    "description is required",
		},
		{
			name:    "bad language",
			content: "name: x\ndescription: y\nlanguage: not a tag\nmedia:\n  images:\n    folder: images\n",
			images:  2,
			want:    "language",
		},
		{
			name:    "too many players",
			content: "name: x\ndescription: y\nplayer_count: 9\nmedia:\n  images:\n    folder: images\n",
			images:  2,
			want:    "player_count",
		},
		{
			name:    "match message without score",
			content: "name: x\ndescription: y\nmedia:\n  images:\n    folder: images\nmessages:\n  match: \"%s scored\"\n",
			images:  2,
			want:    "messages.match",
		},
		{
			name:    "no images",
			content: "name: x\ndescription: y\nmedia:\n  images:\n    folder: images\n",
			images:  0,
			want:    "No usable images in images",
		},
		{
			name:    "more pairs than images",
			content: "name: x\ndescription: y\npairs: 5\nmedia:\n  images:\n    folder: images\n",
			images:  2,
			want:    "pairs (5) exceeds available images (2)",
		},
		{
			name:    "unknown avatar",
			content: "name: x\ndescription: y\nplayers:\n  - name: Ana\n    avatar: avatars/ghost.png\nmedia:\n  images:\n    folder: images\n",
			images:  2,
			want:    "players[0] avatar not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConfig(writePreset(t, "preset.yaml", tt.content, tt.images))
			if result.Valid {
				t.Fatalf("Expected invalid result, got %v", result.Errors)
			}
			if !contains(strings.Join(result.Errors, "\n"), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateMedia_Avatars(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"images/a.png", "avatars/cat.png"} {
		path := filepath.Join(dir, p)
		os.MkdirAll(filepath.Dir(path), 0755)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	preset := `name: Avatars
description: Known avatar
players:
  - name: Ana
    avatar: avatars/cat.png
media:
  images:
    folder: images
  avatars:
    folder: avatars
`
	path := filepath.Join(dir, "avatars.yaml")
	if err := os.WriteFile(path, []byte(preset), 0644); err != nil {
		t.Fatal(err)
	}

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, got %v", result.Errors)
	}
	if !contains(strings.Join(result.Errors, "\n"), "✓ Avatars: 1") {
		t.Errorf("Expected avatar count, got %v", result.Errors)
	}
}

func TestPresetFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.yaml", "c.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := presetFiles(dir)
	if err != nil {
		t.Fatalf("presetFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 preset files, got %v", files)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
