package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/drift-snake/internal/platform/tui"
	"github.com/vovakirdan/drift-snake/internal/replay"
	"github.com/vovakirdan/drift-snake/internal/storage"
)

var flagLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List, verify and browse recorded runs",
	Long: `Recorded runs store the seed, the rules and every input frame.
Verifying a recording replays it on a fresh simulation and compares the
final board with the one saved at record time.

Examples:
  snake replay list
  snake replay show 3f2c9a1e-...
  snake replay verify 3f2c9a1e-...
  snake replay verify --all
  snake replay browse`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recordings, newest first",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id|best>",
	Short: "Show details of a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var flagVerifyAll bool

var replayVerifyCmd = &cobra.Command{
	Use:   "verify [id]",
	Short: "Replay a recording and check it reaches the recorded board",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplayVerify,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

var replayBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recordings interactively",
	Args:  cobra.NoArgs,
	Run:   runReplayBrowse,
}

func init() {
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of recordings to list")
	replayVerifyCmd.Flags().BoolVar(&flagVerifyAll, "all", false, "Verify every stored recording")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayDeleteCmd)
	replayCmd.AddCommand(replayBrowseCmd)
}

// openStore opens the recordings database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening recordings database: %v", err)
	}
	return store
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.ListRecordings(flagLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Run 'snake play --record' or 'snake simulate --record' to make one.")
		return
	}

	fmt.Printf("  %-36s  %-7s  %-8s  %s\n", "ID", "Score", "Frames", "Date")
	fmt.Printf("  %-36s  %-7s  %-8s  %s\n", "--", "-----", "------", "----")
	for _, e := range entries {
		fmt.Printf("  %-36s  %-7d  %-8d  %s\n", e.ID, e.Score, e.Frames, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runReplayShow(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	var (
		rec *replay.Recording
		err error
	)
	if args[0] == "best" {
		rec, err = store.BestRecording()
	} else {
		rec, err = store.Recording(args[0])
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("ID:        %s\n", rec.ID)
	fmt.Printf("Created:   %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed:      %d\n", rec.Seed)
	fmt.Printf("Board:     %dx%d, %d obstacles\n", rec.Rules.Board.Width, rec.Rules.Board.Height, rec.Rules.Obstacles.Count)
	fmt.Printf("Frames:    %d (%s)\n", len(rec.Frames), rec.Duration())
	fmt.Printf("Moves:     %d\n", rec.Moves)
	fmt.Printf("Score:     %d\n", rec.Score)
	fmt.Printf("Digest:    %016x\n", rec.Digest)
}

func runReplayVerify(cmd *cobra.Command, args []string) {
	if flagVerifyAll == (len(args) == 1) {
		fail("pass a recording ID or --all")
	}

	logger, closer, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	store := openStore()
	defer store.Close()

	ids := args
	if flagVerifyAll {
		entries, err := store.ListRecordings(0)
		if err != nil {
			fail("%v", err)
		}
		ids = ids[:0]
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
	}

	failed := 0
	for _, id := range ids {
		rec, err := store.Recording(id)
		if err != nil {
			logger.Error("cannot load recording", "id", id, "error", err)
			failed++
			continue
		}
		snap, err := replay.Verify(rec)
		switch {
		case errors.Is(err, replay.ErrMismatch):
			logger.Error("recording diverged", "id", id, "recorded", rec.Score, "replayed", snap.Score)
			failed++
		case err != nil:
			logger.Error("cannot replay recording", "id", id, "error", err)
			failed++
		default:
			fmt.Printf("ok  %s  score %d  moves %d\n", id, snap.Score, snap.Moves)
		}
	}

	if failed > 0 {
		store.Close()
		closer.Close()
		fail("%d of %d recordings failed verification", failed, len(ids))
	}
}

func runReplayDelete(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteRecording(args[0]); err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
}

func runReplayBrowse(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunRecordings(store, width, height); err != nil {
		store.Close()
		fail("%v", err)
	}
}
