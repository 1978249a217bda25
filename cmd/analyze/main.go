// Command analyze prints quick, human-readable heuristics about the presets
// in a config directory. For each preset it discovers the media folders,
// counts images, sounds and avatars, and shows the board that would be dealt
// along with anything that would make sessions fail or feel incomplete.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// Analysis is the summary of one preset.
type Analysis struct {
	ConfigID  string
	Name      string
	Language  string
	Images    int
	Sounds    int
	Avatars   int
	Requested int // pairs asked for by the preset, 0 for all images
	Pairs     int // pairs actually dealt
	Layout    engine.Layout
	Players   []string
	Warnings  []string
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Summarize presets, their media and the board they deal",
		ArgsUsage: "[config_id...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "players",
				Usage: "List the default roster of each preset",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			ids := cmd.Args().Slice()
			if len(ids) == 0 {
				infos, err := manager.ListConfigs()
				if err != nil {
					return err
				}
				for _, info := range infos {
					ids = append(ids, info.ConfigID)
				}
			}
			if len(ids) == 0 {
				fmt.Fprintln(out, "No presets found")
				return nil
			}

			failed := 0
			for _, id := range ids {
				fmt.Fprintf(out, "\n=== Analyzing %s ===\n", id)
				analysis, err := analyzePreset(manager, id)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					failed++
					continue
				}
				printAnalysis(out, analysis, cmd.Bool("players"))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d presets could not be analyzed", failed, len(ids))
			}
			return nil
		},
	}
}

// analyzePreset loads a preset and measures its media. Missing or empty
// media folders are reported as warnings, not errors.
func analyzePreset(manager *config.Manager, id string) (*Analysis, error) {
	preset, err := manager.LoadConfig(id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	preset = preset.Clone()
	config.ApplyDefaults(preset)

	analysis := &Analysis{
		ConfigID:  id,
		Name:      preset.Name,
		Language:  preset.Language,
		Requested: preset.Pairs,
	}

	pool, err := media.Discover(preset.Sources()...)
	switch {
	case errors.Is(err, media.ErrEmptyPool):
		analysis.Warnings = append(analysis.Warnings, "No usable images found, sessions cannot be created")
		pool = media.NewPool(nil)
	case err != nil:
		return nil, fmt.Errorf("discover media for %s: %w", id, err)
	}

	analysis.Images = pool.Count(media.KindImage)
	analysis.Sounds = pool.Count(media.KindSound)
	analysis.Avatars = pool.Count(media.KindAvatar)
	analysis.Pairs = preset.PairCount(0, analysis.Images)
	analysis.Layout = engine.GridFor(analysis.Pairs * 2)

	players, err := preset.Roster(nil, 0, pool.Avatars())
	if err != nil {
		return nil, fmt.Errorf("roster for %s: %w", id, err)
	}
	for _, p := range players {
		analysis.Players = append(analysis.Players, p.Name)
	}

	if preset.Pairs > analysis.Images && analysis.Images > 0 {
		analysis.Warnings = append(analysis.Warnings,
			fmt.Sprintf("Preset asks for %d pairs but only %d images are available", preset.Pairs, analysis.Images))
	}
	if analysis.Sounds == 0 {
		analysis.Warnings = append(analysis.Warnings, "No sounds found, matches will be silent")
	}
	if analysis.Avatars == 0 {
		analysis.Warnings = append(analysis.Warnings, "No avatars found")
	}

	return analysis, nil
}

func printAnalysis(w io.Writer, a *Analysis, withPlayers bool) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	if a.Language != "" {
		fmt.Fprintf(w, "Language: %s\n", a.Language)
	}
	fmt.Fprintf(w, "Media: %d images, %d sounds, %d avatars\n", a.Images, a.Sounds, a.Avatars)

	requested := "all"
	if a.Requested > 0 {
		requested = fmt.Sprint(a.Requested)
	}
	fmt.Fprintf(w, "Pairs: %d (requested %s)\n", a.Pairs, requested)
	fmt.Fprintf(w, "Board: %d cards, %d x %d\n", a.Pairs*2, a.Layout.Rows, a.Layout.Cols)
	fmt.Fprintf(w, "Players: %d\n", len(a.Players))

	if withPlayers {
		fmt.Fprintf(w, "   %s\n", strings.Join(a.Players, ", "))
	}

	if len(a.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Preset is ready to play")
		return
	}
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
}
