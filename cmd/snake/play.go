package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
	"github.com/vovakirdan/drift-snake/internal/platform/tui"
	"github.com/vovakirdan/drift-snake/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD  - Steer
  P/Esc        - Pause
  Space/R      - Restart (after game over)
  ?            - Show all keys
  Q/Ctrl+C     - Quit

The screen owns the terminal while playing, so logs go to --log-file.

Examples:
  snake play
  snake play --difficulty easy
  snake play --seed 42 --record
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the recordings database")
}

func runPlay(cmd *cobra.Command, args []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Record: flagRecord,
		Logger: logger,
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fail("could not open recordings database: %v", err)
		}
		defer store.Close()
		opts.Store = store
	}

	rec, err := tui.Run(snake.New(rules), opts)
	if err != nil {
		closer.Close()
		fail("running game: %v", err)
	}
	if rec != nil {
		fmt.Printf("Saved recording %s (score %d, %d frames)\n", rec.ID, rec.Score, len(rec.Frames))
	}
}
