package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Language:    "en",
		Pairs:       4,
		PlayerCount: 2,
		Media: MediaConfig{
			Images: FolderConfig{Folder: "images"},
			Sounds: FolderConfig{Folder: "sounds"},
		},
		Messages: Messages{
			Match:   "%s scored! Score: %d",
			Victory: "%s wins with %d!",
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *GameConfig) {
	t.Helper()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "missing"))
		if err == nil {
			t.Fatal("Expected error for missing directory")
		}
	})

	t.Run("empty directory uses built-in default", func(t *testing.T) {
		dir := t.TempDir()
		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}

		def := manager.GetDefault()
		if def == nil || def.Name != "default" {
			t.Fatalf("Expected built-in default, got %#v", def)
		}
		if def.BaseDir != dir {
			t.Errorf("Expected base dir %s, got %s", dir, def.BaseDir)
		}
	})

	t.Run("prefers classic", func(t *testing.T) {
		dir := t.TempDir()
		other := createValidConfig()
		other.Name = "Another"
		writeConfigFile(t, dir, "another", other)

		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected Classic default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("falls back to first valid preset", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "zeta", createValidConfig())

		manager, err := NewManagerWithDefault(dir, "missing")
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Test Config" {
			t.Errorf("Expected first preset as default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "family", createValidConfig())

	yamlPreset := `name: Yaml Preset
description: Loaded from YAML
language: de
pairs: 6
players:
  - name: Ana
  - name: Bea
media:
  images:
    folder: pictures
    extensions: [png]
`
	if err := os.WriteFile(filepath.Join(dir, "yaml_preset.yaml"), []byte(yamlPreset), 0644); err != nil {
		t.Fatalf("Failed to write yaml preset: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		config, err := manager.LoadConfig("family")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Config" || config.Pairs != 4 {
			t.Errorf("Unexpected config %#v", config)
		}
		if config.Messages.Welcome == "" || config.ScoreIncrement != 1 {
			t.Error("Expected defaults to be applied")
		}
		if config.BaseDir != dir {
			t.Errorf("Expected base dir %s, got %s", dir, config.BaseDir)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		config, err := manager.LoadConfig("yaml_preset")
		if err != nil {
			t.Fatalf("Failed to load yaml config: %v", err)
		}
		if config.Name != "Yaml Preset" || config.Language != "de" || config.Pairs != 6 {
			t.Errorf("Unexpected config %#v", config)
		}
		if len(config.Players) != 2 || config.Players[1].Name != "Bea" {
			t.Errorf("Unexpected players %#v", config.Players)
		}

		sources := config.Sources()
		if sources[0].Folder != filepath.Join(dir, "pictures") {
			t.Errorf("Expected images folder resolved against %s, got %s", dir, sources[0].Folder)
		}
		if len(sources[0].Extensions) != 1 || sources[0].Extensions[0] != "png" {
			t.Errorf("Expected extension override, got %v", sources[0].Extensions)
		}
	})

	t.Run("with extension and case", func(t *testing.T) {
		a, err := manager.LoadConfig("family.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		b, err := manager.LoadConfig("FAMILY")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if a != b {
			t.Error("Expected cached preset for the same id")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := manager.LoadConfig("nope")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestManager_LoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }},
		{"missing description", func(c *GameConfig) { c.Description = "" }},
		{"bad language", func(c *GameConfig) { c.Language = "not a language" }},
		{"negative pairs", func(c *GameConfig) { c.Pairs = -1 }},
		{"too many players", func(c *GameConfig) { c.PlayerCount = 7 }},
		{"match without score verb", func(c *GameConfig) { c.Messages.Match = "%s scored" }},
		{"duplicate player ids", func(c *GameConfig) {
			c.Players = []PlayerConfig{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.mutate(config)
			name := strings.ReplaceAll(tt.name, " ", "_")
			writeConfigFile(t, dir, name, config)

			manager, err := NewManager(dir)
			if err != nil {
				t.Fatalf("Failed to create manager: %v", err)
			}
			_, err = manager.LoadConfig(name)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "beta", createValidConfig())
	writeConfigFile(t, dir, "alpha", createValidConfig())

	broken := createValidConfig()
	broken.Name = ""
	writeConfigFile(t, dir, "broken", broken)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "alpha" || configs[1].ConfigID != "beta" {
		t.Errorf("Expected sorted config ids, got %s and %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[0].Filename != "alpha.json" || configs[0].Pairs != 4 {
		t.Errorf("Unexpected info %#v", configs[0])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	if err := manager.SaveConfig("saved_yaml.yaml", config); err != nil {
		t.Fatalf("Failed to save yaml config: %v", err)
	}
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}
	loaded, err := manager.LoadConfig("saved_yaml")
	if err != nil {
		t.Fatalf("Failed to reload yaml config: %v", err)
	}
	if loaded.Name != config.Name || loaded.Pairs != config.Pairs {
		t.Errorf("Round trip changed config: %#v", loaded)
	}

	invalid := createValidConfig()
	invalid.Description = ""
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	if err := manager.SetDefault("saved"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != config.Name {
		t.Errorf("Expected saved preset as default")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("classic"); err != nil {
				t.Errorf("Failed to load config: %v", err)
			}
			manager.GetDefault()
		}()
	}
	wg.Wait()
}
