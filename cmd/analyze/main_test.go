package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/memorygame/game/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// setupPresets creates a ready preset, one asking for too many pairs and one
// pointing at an empty folder
func setupPresets(t *testing.T) string {
	dir := t.TempDir()

	for _, name := range []string{"apple.png", "banana.png", "cherry.jpg"} {
		writeFile(t, filepath.Join(dir, "images", name), "img")
	}
	writeFile(t, filepath.Join(dir, "sounds", "ding.wav"), "snd")
	writeFile(t, filepath.Join(dir, "avatars", "cat.png"), "avatar")

	writeFile(t, filepath.Join(dir, "kids.yaml"), `name: Kids
description: Small board
pairs: 2
player_count: 3
media:
  images:
    folder: images
  sounds:
    folder: sounds
  avatars:
    folder: avatars
`)
	writeFile(t, filepath.Join(dir, "huge.json"), `{
		"name": "Huge",
		"description": "Too many pairs",
		"pairs": 10,
		"media": {"images": {"folder": "images"}}
	}`)
	writeFile(t, filepath.Join(dir, "empty.yaml"), `name: Empty
description: No media
media:
  images:
    folder: nothing-here
`)

	return dir
}

func TestAnalyzePreset(t *testing.T) {
	dir := setupPresets(t)
	manager, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		id       string
		images   int
		pairs    int
		rows     int
		cols     int
		players  int
		warnings []string
	}{
		{id: "kids", images: 3, pairs: 2, rows: 2, cols: 2, players: 3},
		{
			id: "huge", images: 3, pairs: 3, rows: 2, cols: 3, players: 1,
			warnings: []string{"asks for 10 pairs", "No sounds", "No avatars"},
		},
		{
			id: "empty", images: 0, pairs: 0, players: 1,
			warnings: []string{"No usable images"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a, err := analyzePreset(manager, tt.id)
			if err != nil {
				t.Fatalf("analyzePreset failed: %v", err)
			}
			if a.Images != tt.images || a.Pairs != tt.pairs {
				t.Errorf("Expected %d images and %d pairs, got %d and %d", tt.images, tt.pairs, a.Images, a.Pairs)
			}
			if a.Layout.Rows != tt.rows || a.Layout.Cols != tt.cols {
				t.Errorf("Expected %dx%d board, got %dx%d", tt.rows, tt.cols, a.Layout.Rows, a.Layout.Cols)
			}
			if len(a.Players) != tt.players {
				t.Errorf("Expected %d players, got %v", tt.players, a.Players)
			}

			joined := strings.Join(a.Warnings, "\n")
			for _, want := range tt.warnings {
				if !strings.Contains(joined, want) {
					t.Errorf("Expected warning containing %q, got %v", want, a.Warnings)
				}
			}
			if len(tt.warnings) == 0 && len(a.Warnings) > 0 {
				t.Errorf("Expected no warnings, got %v", a.Warnings)
			}
		})
	}
}

func TestAnalyzePreset_NotFound(t *testing.T) {
	manager, err := config.NewManager(setupPresets(t))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := analyzePreset(manager, "missing"); err == nil {
		t.Error("Expected error for missing preset")
	}
}

func TestCommand(t *testing.T) {
	dir := setupPresets(t)

	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), []string{"analyze", "--config-dir", dir, "--players", "kids"})
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"=== Analyzing kids ===",
		"Name: Kids",
		"Media: 3 images, 1 sounds, 1 avatars",
		"Pairs: 2 (requested 2)",
		"Board: 4 cards, 2 x 2",
		"Player 1, Player 2, Player 3",
		"✅ Preset is ready to play",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing %q:\n%s", want, text)
		}
	}
}

func TestCommand_AllPresets(t *testing.T) {
	dir := setupPresets(t)

	var out bytes.Buffer
	if err := newCommand(&out).Run(context.Background(), []string{"analyze", "--config-dir", dir}); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	text := out.String()
	for _, id := range []string{"empty", "huge", "kids"} {
		if !strings.Contains(text, "=== Analyzing "+id+" ===") {
			t.Errorf("Expected %s to be analyzed:\n%s", id, text)
		}
	}
	if !strings.Contains(text, "Pairs: 3 (requested 10)") {
		t.Errorf("Expected clamped pair count:\n%s", text)
	}
}

func TestCommand_MissingPreset(t *testing.T) {
	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), []string{"analyze", "--config-dir", setupPresets(t), "nope"})
	if err == nil {
		t.Fatal("Expected error for missing preset")
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("Expected error line in output:\n%s", out.String())
	}
}
