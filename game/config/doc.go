// Package config provides configuration management for the memory game.
//
// The config package handles:
//   - Loading game presets from JSON and YAML files
//   - Preset defaults and validation
//   - Turning a preset into media sources and an engine roster
//   - Reading process settings from the environment
//
// Preset Format:
//
// Presets are stored as .json, .yaml or .yml files in the configs directory.
// Each preset defines:
//   - The image, sound and avatar folders (relative to the preset file)
//   - The number of pairs to deal (0 deals every image)
//   - The players, or just how many should play
//   - Message templates shown for matches, turns and the final result
//   - The language tag of those messages
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific preset
//	preset, err := manager.LoadConfig("family")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := media.Discover(preset.Sources()...)
//	players, err := preset.Roster(nil, 0, pool.Avatars())
//
// Environment:
//
// ParseServerEnv reads PORT, HOST, CONFIG_DIR, DEFAULT_CONFIG, SESSION_TTL
// and the NGROK_* settings. The server uses them as flag defaults.
package config
