package rail

import (
	"math"
	"testing"
	"time"

	"github.com/sjvrensburg/railreader2/model"
)

func TestNav_SnapEasing(t *testing.T) {
	config := DefaultConfig()
	config.SnapDuration = 100 * time.Millisecond
	nav := New(config)
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())
	nav.UpdateZoom(4.0, Camera{}, 600, 400)

	cam := Camera{}
	nav.StartSnapToCurrent(cam, 2.0, 600, 400)

	// Target framing: line y=60 centered vertically, block left edge
	// (x=50) at a 5% viewport margin.
	wantX := 600*0.05 - 50*2.0 // -70
	wantY := 400/2.0 - 60*2.0  // 80

	// Half the duration: cubic ease-out progress is 1-(1-0.5)^3 = 0.875.
	if !nav.Tick(&cam, 0.05, 2.0, 600) {
		t.Fatal("Tick mid-snap should request another frame")
	}
	if math.Abs(cam.X-wantX*0.875) > 1e-9 {
		t.Errorf("mid-snap cam.X = %v, want %v", cam.X, wantX*0.875)
	}
	if math.Abs(cam.Y-80*0.875) > 1e-9 {
		t.Errorf("mid-snap cam.Y = %v, want %v", cam.Y, 80*0.875)
	}

	// Completing the snap lands exactly on the target and stops.
	if nav.Tick(&cam, 0.05, 2.0, 600) {
		t.Error("Tick at snap completion should not request another frame")
	}
	if math.Abs(cam.X-wantX) > 1e-9 || math.Abs(cam.Y-wantY) > 1e-9 {
		t.Errorf("final cam = (%v, %v), want (%v, %v)", cam.X, cam.Y, wantX, wantY)
	}

	// Nothing left to animate.
	if nav.Tick(&cam, 0.05, 2.0, 600) {
		t.Error("Tick with no animation should return false")
	}
}

func TestNav_SnapSuperseded(t *testing.T) {
	config := DefaultConfig()
	config.SnapDuration = 100 * time.Millisecond
	nav := New(config)
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())
	nav.UpdateZoom(4.0, Camera{}, 600, 400)

	cam := Camera{}
	nav.StartSnapToCurrent(cam, 2.0, 600, 400)
	nav.Tick(&cam, 0.02, 2.0, 600)

	// A new snap restarts from the camera's current position.
	nav.NextLine()
	nav.StartSnapToCurrent(cam, 2.0, 600, 400)

	before := cam
	nav.Tick(&cam, 0.0, 2.0, 600)
	if cam != before {
		t.Errorf("zero-dt tick at snap start moved the camera: %+v -> %+v", before, cam)
	}
}

func TestNav_ClampCentersNarrowBlock(t *testing.T) {
	nav := activeNav(t)

	// Margined block spans [40, 260]; at zoom 1 that is 220 on screen,
	// narrower than the 600 viewport, so any candidate is centered.
	for _, candidate := range []float64{-1000, 0, 1000} {
		got := nav.ClampX(candidate, 1.0, 600)
		if math.Abs(got-150) > 1e-9 {
			t.Errorf("ClampX(%v) = %v, want centered 150", candidate, got)
		}
	}
}

func TestNav_ClampWideBlock(t *testing.T) {
	nav := activeNav(t)

	// At zoom 4 the margined block spans 880 on screen, wider than the
	// 600 viewport. Valid camera X range is [minX, maxX].
	maxX := -40.0 * 4     // left edge flush with left viewport edge
	minX := 600 - 260.0*4 // right edge flush with right viewport edge

	tests := []struct {
		candidate, want float64
	}{
		{0, maxX},
		{-1000, minX},
		{-300, -300}, // inside the range: untouched
		{maxX, maxX},
		{minX, minX},
	}
	for _, tt := range tests {
		if got := nav.ClampX(tt.candidate, 4.0, 600); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ClampX(%v) = %v, want %v", tt.candidate, got, tt.want)
		}
	}
}

func TestNav_ClampInvariant(t *testing.T) {
	nav := activeNav(t)

	// For any candidate and zoom, the clamped camera either centers the
	// margined block or leaves its screen extent covering the viewport.
	for _, zoom := range []float64{0.5, 1, 2, 3, 5, 8} {
		block := nav.CurrentBlock()
		margin := block.BBox.Width * 0.05
		left, right := block.BBox.X-margin, block.BBox.Right()+margin

		for candidate := -2000.0; candidate <= 2000; candidate += 97 {
			camX := nav.ClampX(candidate, zoom, 600)
			screenLeft := left*zoom + camX
			screenRight := right*zoom + camX

			if (right-left)*zoom <= 600 {
				center := (screenLeft + screenRight) / 2
				if math.Abs(center-300) > 1e-6 {
					t.Fatalf("zoom %v candidate %v: narrow block not centered (center %v)", zoom, candidate, center)
				}
			} else {
				if screenLeft > 1e-6 || screenRight < 600-1e-6 {
					t.Fatalf("zoom %v candidate %v: viewport left the block (%v, %v)", zoom, candidate, screenLeft, screenRight)
				}
			}
		}
	}
}

func TestNav_ClampWithoutBlocks(t *testing.T) {
	nav := New(DefaultConfig())
	if got := nav.ClampX(123, 2, 600); got != 123 {
		t.Errorf("ClampX without blocks = %v, want pass-through", got)
	}
}

func TestNav_ScrollRampAndClamp(t *testing.T) {
	config := DefaultConfig()
	config.ScrollSpeedStart = 10
	config.ScrollSpeedMax = 50
	config.ScrollRampTime = time.Second
	nav := New(config)
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())
	nav.UpdateZoom(4.0, Camera{}, 600, 400)

	// Start at the line-start clamp position of the wide-block case.
	cam := Camera{X: -160}
	nav.StartScroll(Forward)

	// Speed must ramp: equal dt steps move further as the hold grows.
	var deltas []float64
	prev := cam.X
	for i := 0; i < 10; i++ {
		if !nav.Tick(&cam, 0.1, 4.0, 600) {
			t.Fatal("Tick while scrolling should request frames")
		}
		deltas = append(deltas, prev-cam.X)
		prev = cam.X
	}
	for i := 1; i < len(deltas); i++ {
		if deltas[i] <= deltas[i-1] {
			t.Fatalf("scroll deltas not increasing: %v", deltas)
		}
	}

	// Forward scroll moves camera X negative, but never past the clamp.
	minX := 600 - 260.0*4
	for i := 0; i < 500; i++ {
		nav.Tick(&cam, 0.1, 4.0, 600)
	}
	if math.Abs(cam.X-minX) > 1e-6 {
		t.Errorf("long scroll stopped at %v, want clamp %v", cam.X, minX)
	}

	nav.StopScroll()
	if nav.Tick(&cam, 0.1, 4.0, 600) {
		t.Error("Tick after StopScroll should be idle")
	}
}

func TestNav_ScrollDirectionChangeRestartsRamp(t *testing.T) {
	nav := activeNav(t)
	nav.StartScroll(Forward)

	cam := Camera{X: -300}
	nav.Tick(&cam, 1.0, 4.0, 600) // fully ramped

	nav.StartScroll(Backward)
	if !nav.Scrolling() {
		t.Fatal("should still be scrolling after direction change")
	}

	// A fresh ramp starts slow: one short backward tick moves less than
	// a fully ramped one would.
	before := cam.X
	nav.Tick(&cam, 0.01, 4.0, 600)
	moved := cam.X - before
	fullyRamped := 50 * 0.01 * 4.0
	if moved <= 0 {
		t.Fatalf("backward scroll moved camera by %v, want positive", moved)
	}
	if moved >= fullyRamped {
		t.Errorf("direction change kept the old ramp: moved %v", moved)
	}
}
