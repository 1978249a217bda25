package config

import (
	"path/filepath"

	"github.com/wricardo/mcp-training/memorygame/game/media"
)

const (
	DefaultLanguage    = "en"
	DefaultPlayerCount = 2
	DefaultPairs       = 8

	DefaultImageFolder  = "data/images"
	DefaultSoundFolder  = "data/sounds"
	DefaultAvatarFolder = "data/avatars"
)

// GameConfig is a game preset: where the media lives, who plays and what
// the players are told. It is resolved once when a session is created.
type GameConfig struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Language       string         `json:"language,omitempty" yaml:"language,omitempty"`
	Title          string         `json:"title,omitempty" yaml:"title,omitempty"`
	Pairs          int            `json:"pairs" yaml:"pairs"` // 0 uses every image
	PlayerCount    int            `json:"player_count,omitempty" yaml:"player_count,omitempty"`
	ScoreIncrement int            `json:"score_increment,omitempty" yaml:"score_increment,omitempty"`
	Players        []PlayerConfig `json:"players,omitempty" yaml:"players,omitempty"`
	Media          MediaConfig    `json:"media" yaml:"media"`
	Messages       Messages       `json:"messages" yaml:"messages"`

	// BaseDir anchors relative media folders, set by the loader
	BaseDir string `json:"-" yaml:"-"`
}

// MediaConfig lists the folders for each asset kind
type MediaConfig struct {
	Images  FolderConfig `json:"images" yaml:"images"`
	Sounds  FolderConfig `json:"sounds" yaml:"sounds"`
	Avatars FolderConfig `json:"avatars" yaml:"avatars"`
}

// FolderConfig is a media folder with optional extension filter
type FolderConfig struct {
	Folder     string   `json:"folder" yaml:"folder"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// PlayerConfig is a preset roster entry. Blank fields get defaults.
type PlayerConfig struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Messages are the texts shown for game events
type Messages struct {
	Welcome    string `json:"welcome" yaml:"welcome"`
	Match      string `json:"match" yaml:"match"`             // %s player, %d score
	Mismatch   string `json:"mismatch" yaml:"mismatch"`
	TurnPassed string `json:"turn_passed" yaml:"turn_passed"` // %s next player
	Victory    string `json:"victory" yaml:"victory"`         // %s winner, %d score
	Tie        string `json:"tie" yaml:"tie"`                 // %s winners
	PlayerName string `json:"player_name" yaml:"player_name"` // %d player number
}

// Info describes an available preset
type Info struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Pairs       int    `json:"pairs"`
	PlayerCount int    `json:"player_count"`
}

// Sources returns the media sources of this preset with relative folders
// resolved against BaseDir
func (c *GameConfig) Sources() []media.Source {
	images := media.DefaultSource(media.KindImage, c.resolve(c.Media.Images.Folder))
	sounds := media.DefaultSource(media.KindSound, c.resolve(c.Media.Sounds.Folder))
	avatars := media.DefaultSource(media.KindAvatar, c.resolve(c.Media.Avatars.Folder))

	if len(c.Media.Images.Extensions) > 0 {
		images.Extensions = c.Media.Images.Extensions
	}
	if len(c.Media.Sounds.Extensions) > 0 {
		sounds.Extensions = c.Media.Sounds.Extensions
	}
	if len(c.Media.Avatars.Extensions) > 0 {
		avatars.Extensions = c.Media.Avatars.Extensions
	}

	return []media.Source{images, sounds, avatars}
}

func (c *GameConfig) resolve(folder string) string {
	if folder == "" || filepath.IsAbs(folder) || c.BaseDir == "" {
		return folder
	}
	return filepath.Join(c.BaseDir, folder)
}

// Clone returns a copy that can be changed without touching the cached preset
func (c *GameConfig) Clone() *GameConfig {
	out := *c
	out.Players = append([]PlayerConfig(nil), c.Players...)
	out.Media.Images.Extensions = append([]string(nil), c.Media.Images.Extensions...)
	out.Media.Sounds.Extensions = append([]string(nil), c.Media.Sounds.Extensions...)
	out.Media.Avatars.Extensions = append([]string(nil), c.Media.Avatars.Extensions...)
	return &out
}

// Default returns the built-in preset used when no preset files exist
func Default() *GameConfig {
	c := &GameConfig{
		Name:        "default",
		Description: "Two players, eight pairs from the data folder",
		Pairs:       DefaultPairs,
		PlayerCount: DefaultPlayerCount,
		Media: MediaConfig{
			Images:  FolderConfig{Folder: DefaultImageFolder},
			Sounds:  FolderConfig{Folder: DefaultSoundFolder},
			Avatars: FolderConfig{Folder: DefaultAvatarFolder},
		},
	}
	ApplyDefaults(c)
	return c
}

// ApplyDefaults fills every blank optional field
func ApplyDefaults(c *GameConfig) {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Title == "" {
		c.Title = "Memory"
	}
	if c.ScoreIncrement == 0 {
		c.ScoreIncrement = 1
	}
	if c.Media.Images.Folder == "" {
		c.Media.Images.Folder = DefaultImageFolder
	}

	m := &c.Messages
	if m.Welcome == "" {
		m.Welcome = "Welcome to Memory! Find all the pairs."
	}
	if m.Match == "" {
		m.Match = "%s found a pair! Score: %d"
	}
	if m.Mismatch == "" {
		m.Mismatch = "No match. Acknowledge to continue."
	}
	if m.TurnPassed == "" {
		m.TurnPassed = "It's %s's turn."
	}
	if m.Victory == "" {
		m.Victory = "%s wins with %d points!"
	}
	if m.Tie == "" {
		m.Tie = "It's a tie between %s!"
	}
	if m.PlayerName == "" {
		m.PlayerName = "Player %d"
	}
}
