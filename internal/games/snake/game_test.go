package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/drift-snake/internal/config"
	"github.com/vovakirdan/drift-snake/internal/core"
)

const frameDt = 16 * time.Millisecond

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24}

	g1 := New(config.DefaultSnakeConfig())
	g1.Reset(cfg)
	g2 := New(config.DefaultSnakeConfig())
	g2.Reset(cfg)

	if g1.Snapshot().Digest() != g2.Snapshot().Digest() {
		t.Fatal("initial placement differs for the same seed")
	}

	for i := range 3000 {
		g1.Step(g1.Autopilot(), frameDt)
		g2.Step(g2.Autopilot(), frameDt)

		if i%100 == 0 && g1.Snapshot().Digest() != g2.Snapshot().Digest() {
			t.Fatalf("snapshots diverged at frame %d:\n%+v\n%+v", i, g1.Snapshot(), g2.Snapshot())
		}
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Moves != s2.Moves || s1.Head() != s2.Head() {
		t.Errorf("final state differs: %+v vs %+v", s1, s2)
	}
	if s1.Moves == 0 {
		t.Error("autopilot never moved the snake")
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := NewState(config.DefaultSnakeConfig(), 1).Snapshot()
	b := NewState(config.DefaultSnakeConfig(), 2).Snapshot()
	if a.Digest() == b.Digest() {
		t.Error("different seeds produced the same initial board")
	}
}

func TestInvariantsHoldOverLongRuns(t *testing.T) {
	tests := []struct {
		name     string
		powerUps bool
	}{
		{"without power-ups", false},
		{"with power-ups", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := config.DefaultSnakeConfig()
			if !tc.powerUps {
				rules.PowerUps.SpawnChance = 0
				rules.PowerUps.FoodSpawnChance = 0
			}

			for seed := int64(1); seed <= 5; seed++ {
				s := NewState(rules, seed)
				for range 4000 {
					in := Input{Turn: Steer(s), Restart: s.Run == GameOver}
					length, score := len(s.Snake), s.Score

					events := Step(s, in, Frame{Now: s.Now + frameDt, Elapsed: frameDt})
					checkDisjoint(t, s, tc.powerUps)

					if countEvents[Restarted](events) > 0 {
						continue
					}
					food := countEvents[FoodEaten](events)
					pickups := countEvents[PowerUpCollected](events)
					if len(s.Snake) != length+food {
						t.Fatalf("seed %d: length %d -> %d with %d food", seed, length, len(s.Snake), food)
					}
					if want := score + food*rules.Scoring.Food + pickups*rules.Scoring.PowerUp; s.Score != want {
						t.Fatalf("seed %d: score %d -> %d, expected %d", seed, score, s.Score, want)
					}
					if len(s.PowerUps) > rules.PowerUps.MaxActive {
						t.Fatalf("seed %d: %d power-ups on the board", seed, len(s.PowerUps))
					}
				}
			}
		})
	}
}

func TestTooSmallFreezesClock(t *testing.T) {
	g := New(quietRules())
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 20, ScreenH: 10})

	if !g.tooSmall {
		t.Fatal("20x10 should be too small for a 25x19 board")
	}
	g.Step(core.NewInputFrame(), time.Second)
	if snap := g.Snapshot(); snap.Moves != 0 || snap.Frames != 0 {
		t.Errorf("simulation advanced while too small: %+v", snap)
	}

	g.SetScreenSize(80, 24)
	res := g.Step(core.NewInputFrame(), 150*time.Millisecond)
	if g.Snapshot().Moves != 1 {
		t.Errorf("moves = %d, expected 1 after resize", g.Snapshot().Moves)
	}
	if res.Events != len(g.Events()) || res.Events == 0 {
		t.Errorf("step reported %d events, have %d", res.Events, len(g.Events()))
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 40, ScreenH: 24})
	scr := core.NewScreen(40, 24)

	g.Render(scr)

	offX := (40 - 27) / 2
	if got := scr.Get(offX, 1); got != '┌' {
		t.Errorf("top-left corner = %q, expected '┌'", got)
	}
	if got := scr.GetCell(offX, 1).Color; got != core.ColorBorder {
		t.Errorf("border color = %v, expected ColorBorder", got)
	}
	head := g.Snapshot().Head()
	if got := scr.Get(offX+1+head.X, 2+head.Y); got != 'O' {
		t.Errorf("head cell = %q, expected 'O'", got)
	}
	if !strings.Contains(scr.String(), "*") {
		t.Error("food glyph missing")
	}
	if !strings.HasPrefix(scr.Row(0), " Score: 0") {
		t.Errorf("HUD = %q", scr.Row(0))
	}

	g.state.PowerActive = true
	g.state.PowerRemaining = 2 * time.Second
	g.Render(scr)
	if got := scr.GetCell(offX, 1).Color; got != core.ColorBorderBoost {
		t.Errorf("border color while boosted = %v, expected ColorBorderBoost", got)
	}
	if !strings.Contains(scr.Row(0), "BOOST") {
		t.Errorf("HUD should show the boost, got %q", scr.Row(0))
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 40, ScreenH: 24})
	g.state.Run = GameOver

	scr := core.NewScreen(40, 24)
	g.Render(scr)

	if !strings.Contains(scr.String(), "Game Over") {
		t.Error("game over overlay missing")
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be set")
	}
}

func TestAutopilotRestartsAfterGameOver(t *testing.T) {
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	g.state.Run = GameOver

	in := g.Autopilot()
	if !in.Has(core.ActionRestart) {
		t.Fatal("autopilot should request a restart")
	}
	g.Step(in, frameDt)
	if g.State().GameOver {
		t.Error("game should be running after the restart")
	}
}

func TestObserverGetsOwnFrame(t *testing.T) {
	g := New(quietRules())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	var seen []core.InputFrame
	g.Observe(func(in core.InputFrame, _ time.Duration) {
		seen = append(seen, in)
	})

	in := core.NewInputFrame()
	in.Set(core.ActionDown)
	g.Step(in, frameDt)
	in.Clear()
	g.Step(in, frameDt)

	if len(seen) != 2 {
		t.Fatalf("observer saw %d frames, expected 2", len(seen))
	}
	if !seen[0].Has(core.ActionDown) || seen[0].Last != core.ActionDown {
		t.Errorf("clearing the caller's frame changed the observed one: %+v", seen[0])
	}
	if !seen[1].Empty() {
		t.Errorf("second frame should be empty, got %+v", seen[1])
	}
}
