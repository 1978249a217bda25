// Command validate provides a small CLI that validates game presets (JSON or
// YAML) in a config directory, ../configs unless one is given. It checks:
//   - File structure and required fields
//   - Language tag, player counts and message format strings
//   - Media: the image folder holds at least one usable image
//   - Pairs: the preset does not ask for more pairs than there are images
//   - Players: configured avatars exist in the avatar folder
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single preset file.
// It performs structural checks through the config loader, then media checks.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	preset, err := config.ReadGameConfig(filePath)
	if err != nil {
		result.Valid = false
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %s", filePath))
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid preset: %v", err))
		}
		return result
	}

	mediaResult := validateMedia(preset)
	if !mediaResult.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, mediaResult.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", preset.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Language: %s", preset.Language))
	}

	return result
}

// validateMedia discovers the preset's media folders and checks that the
// deck and roster it describes can be dealt.
func validateMedia(preset *config.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	pool, err := media.Discover(preset.Sources()...)
	if err != nil {
		result.Valid = false
		if errors.Is(err, media.ErrEmptyPool) {
			result.Errors = append(result.Errors, fmt.Sprintf("No usable images in %s", preset.Media.Images.Folder))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("Media discovery failed: %v", err))
		}
		return result
	}

	images := pool.Count(media.KindImage)
	if preset.Pairs > images {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("pairs (%d) exceeds available images (%d)", preset.Pairs, images))
	}

	for i, p := range preset.Players {
		if p.Avatar == "" {
			continue
		}
		// Avatars may be written relative to the preset file
		resolved := p.Avatar
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(preset.BaseDir, resolved)
		}
		if !pool.Contains(media.KindAvatar, media.Ref(p.Avatar)) && !pool.Contains(media.KindAvatar, media.Ref(resolved)) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("players[%d] avatar not found: %s", i, p.Avatar))
		}
	}

	if result.Valid {
		pairs := preset.PairCount(0, images)
		layout := engine.GridFor(pairs * 2)
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Images: %d (max pairs %d)", images, engine.MaxPairs(images, 0)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %d pairs on %dx%d", pairs, layout.Rows, layout.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Sounds: %d", pool.Count(media.KindSound)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Avatars: %d", pool.Count(media.KindAvatar)))
	}

	return result
}

// presetFiles lists the JSON and YAML files in dir
func presetFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main scans the config directory for presets and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := presetFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No presets found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
