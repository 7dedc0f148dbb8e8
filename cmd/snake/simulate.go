package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
	"github.com/vovakirdan/drift-snake/internal/replay"
	"github.com/vovakirdan/drift-snake/internal/storage"
)

var (
	flagFrames    int
	flagFrameTime time.Duration
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by the autopilot",
	Long: `Run the simulation without a terminal UI. The autopilot steers towards
the food and restarts after each game over. Useful for soak tests and for
producing recordings that can be verified later.

Examples:
  snake simulate --seed 7
  snake simulate --frames 100000 --dt 10ms
  snake simulate --seed 7 --record`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 6000, "Number of frames to simulate")
	simulateCmd.Flags().DurationVar(&flagFrameTime, "dt", 16*time.Millisecond, "Simulated time per frame")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the recordings database")
}

func runSimulate(cmd *cobra.Command, args []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}
	if flagFrames <= 0 || flagFrameTime <= 0 {
		fail("--frames and --dt must be positive")
	}

	logger, closer, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, h := rules.Board.Width+2, rules.Board.Height+3
	game := snake.New(rules)
	game.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: flagFPS, Seed: seed})

	var rec *replay.Recorder
	if flagSimRecord {
		rec = replay.NewRecorder(rules, seed)
		game.Observe(rec.Record)
	}

	logger.Info("simulation started", "seed", seed, "frames", flagFrames, "dt", flagFrameTime)

	var (
		runs, best, food, pickups int
		causes                    = map[snake.DeathCause]int{}
	)
	for i := range flagFrames {
		game.Step(game.Autopilot(), flagFrameTime)
		for _, e := range game.Events() {
			switch ev := e.(type) {
			case snake.FoodEaten:
				food++
			case snake.PowerUpCollected:
				pickups++
			case snake.GameEnded:
				runs++
				best = max(best, ev.Score)
				causes[ev.Cause]++
				logger.Debug("game over", "frame", i, "score", ev.Score, "cause", ev.Cause)
			}
		}
	}

	final := game.Snapshot()
	best = max(best, final.Score)

	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Sim time:    %s\n", time.Duration(flagFrames)*flagFrameTime)
	fmt.Printf("Games over:  %d (self %d, obstacle %d, board full %d)\n",
		runs, causes[snake.CauseSelf], causes[snake.CauseObstacle], causes[snake.CauseBoardFull])
	fmt.Printf("Food eaten:  %d\n", food)
	fmt.Printf("Power-ups:   %d\n", pickups)
	fmt.Printf("Best score:  %d\n", best)
	fmt.Printf("Final board: score %d, length %d, %s\n", final.Score, len(final.Snake), final.Run)
	fmt.Printf("Digest:      %016x\n", final.Digest())

	if rec == nil {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		closer.Close()
		fail("could not open recordings database: %v", err)
	}
	defer store.Close()

	recording := rec.Finish(final)
	if err := store.SaveRecording(recording); err != nil {
		closer.Close()
		fail("%v", err)
	}
	logger.Info("recording saved", "id", recording.ID, "frames", len(recording.Frames))
	fmt.Printf("Recording:   %s\n", recording.ID)
}
