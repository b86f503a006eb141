package rail

import (
	"testing"

	"github.com/sjvrensburg/railreader2/model"
)

// twoBlockAnalysis builds a page with two navigable text blocks (two
// lines and one line respectively) separated by a figure.
func twoBlockAnalysis() *model.PageAnalysis {
	return &model.PageAnalysis{
		Blocks: []model.LayoutBlock{
			{
				BBox:       model.NewBBox(50, 50, 200, 100),
				ClassID:    model.ClassText,
				Confidence: 0.9,
				Order:      0,
				Lines: []model.LineBand{
					{Y: 60, Height: 10},
					{Y: 80, Height: 10},
				},
			},
			{
				BBox:       model.NewBBox(50, 180, 200, 80),
				ClassID:    model.ClassFigure,
				Confidence: 0.9,
				Order:      1,
			},
			{
				BBox:       model.NewBBox(50, 300, 200, 100),
				ClassID:    model.ClassText,
				Confidence: 0.9,
				Order:      2,
				Lines: []model.LineBand{
					{Y: 310, Height: 10},
				},
			},
		},
		PageWidth:  600,
		PageHeight: 800,
	}
}

// activeNav returns a navigator seeded and activated on the first block.
func activeNav(t *testing.T) *Nav {
	t.Helper()
	nav := New(DefaultConfig())
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())
	nav.UpdateZoom(4.0, Camera{}, 600, 400)
	if !nav.Active() {
		t.Fatal("navigator should be active after zooming past the threshold")
	}
	return nav
}

func TestNav_ActivationTransition(t *testing.T) {
	nav := New(DefaultConfig())
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())

	if nav.Active() {
		t.Fatal("should start inactive")
	}

	// Below threshold: stays inactive.
	nav.UpdateZoom(2.0, Camera{}, 600, 400)
	if nav.Active() {
		t.Error("zoom below threshold must not activate")
	}

	// Crossing upward activates on the nearest block.
	nav.UpdateZoom(3.0, Camera{}, 600, 400)
	if !nav.Active() {
		t.Error("zoom at threshold should activate")
	}
	block, line := nav.Cursor()
	if block != 0 || line != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", block, line)
	}

	// Dropping below deactivates and cancels animations.
	nav.StartScroll(Forward)
	nav.UpdateZoom(1.0, Camera{}, 600, 400)
	if nav.Active() {
		t.Error("zoom below threshold should deactivate")
	}
	if nav.Scrolling() {
		t.Error("deactivation should cancel scroll state")
	}
}

func TestNav_NoActivationWithoutBlocks(t *testing.T) {
	nav := New(DefaultConfig())

	// No analysis at all.
	nav.UpdateZoom(5.0, Camera{}, 600, 400)
	if nav.Active() {
		t.Error("must not activate without an analysis")
	}

	// Analysis with no navigable blocks.
	nav.SetAnalysis(&model.PageAnalysis{
		Blocks:     []model.LayoutBlock{{ClassID: model.ClassImage}},
		PageWidth:  600,
		PageHeight: 800,
	}, model.DefaultNavigableClasses())
	nav.UpdateZoom(5.0, Camera{}, 600, 400)
	if nav.Active() {
		t.Error("must not activate with an empty navigable set")
	}
}

func TestNav_InactiveOperationsAreNoOps(t *testing.T) {
	nav := New(DefaultConfig())
	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())

	if got := nav.NextLine(); got != OK {
		t.Errorf("NextLine while inactive = %v, want OK", got)
	}
	if got := nav.PrevLine(); got != OK {
		t.Errorf("PrevLine while inactive = %v, want OK", got)
	}
	nav.StartScroll(Forward)
	if nav.Scrolling() {
		t.Error("StartScroll while inactive should be a no-op")
	}

	block, line := nav.Cursor()
	if block != 0 || line != 0 {
		t.Errorf("cursor moved to (%d, %d) while inactive", block, line)
	}
}

func TestNav_NextPrevReversibility(t *testing.T) {
	nav := activeNav(t)

	positions := [][2]int{{0, 0}, {0, 1}, {1, 0}}
	for _, pos := range positions {
		nav.currentBlock, nav.currentLine = pos[0], pos[1]

		startBlock, startLine := nav.Cursor()
		if nav.NextLine() == OK {
			if got := nav.PrevLine(); got != OK {
				t.Fatalf("PrevLine after NextLine = %v", got)
			}
			block, line := nav.Cursor()
			if block != startBlock || line != startLine {
				t.Errorf("from (%d,%d): next+prev landed on (%d,%d)",
					startBlock, startLine, block, line)
			}
		}
	}
}

func TestNav_BoundaryOnFinalCallOnly(t *testing.T) {
	nav := activeNav(t)

	// 3 navigable lines total: exactly the third call hits the boundary.
	total := 3
	for i := 1; i <= total; i++ {
		got := nav.NextLine()
		if i < total && got != OK {
			t.Fatalf("call %d = %v, want OK", i, got)
		}
		if i == total {
			if got != PageBoundaryNext {
				t.Fatalf("call %d = %v, want PageBoundaryNext", i, got)
			}
		}
	}

	// The boundary result must not move the cursor.
	block, line := nav.Cursor()
	if block != 1 || line != 0 {
		t.Errorf("cursor after boundary = (%d, %d), want (1, 0)", block, line)
	}

	// Repeated calls keep signalling.
	if got := nav.NextLine(); got != PageBoundaryNext {
		t.Errorf("repeated boundary call = %v", got)
	}
}

func TestNav_PrevAtStart(t *testing.T) {
	nav := activeNav(t)

	if got := nav.PrevLine(); got != PageBoundaryPrev {
		t.Errorf("PrevLine at (0,0) = %v, want PageBoundaryPrev", got)
	}
	block, line := nav.Cursor()
	if block != 0 || line != 0 {
		t.Errorf("cursor after boundary = (%d, %d), want (0, 0)", block, line)
	}
}

func TestNav_PrevRollsBackToLastLine(t *testing.T) {
	nav := activeNav(t)
	nav.currentBlock, nav.currentLine = 1, 0

	if got := nav.PrevLine(); got != OK {
		t.Fatalf("PrevLine = %v", got)
	}
	block, line := nav.Cursor()
	if block != 0 || line != 1 {
		t.Errorf("cursor = (%d, %d), want previous block's last line (0, 1)", block, line)
	}
}

func TestNav_JumpToEnd(t *testing.T) {
	nav := activeNav(t)

	nav.JumpToEnd()

	block, line := nav.Cursor()
	if block != 1 || line != 0 {
		t.Errorf("cursor = (%d, %d), want last block's last line (1, 0)", block, line)
	}

	// Jump followed by NextLine signals the boundary immediately.
	if got := nav.NextLine(); got != PageBoundaryNext {
		t.Errorf("NextLine after JumpToEnd = %v, want PageBoundaryNext", got)
	}
}

func TestNav_FindNearestBlock(t *testing.T) {
	nav := activeNav(t)

	// Pan the camera so the viewport centers on the lower block: with
	// zoom 2, page point (150, 350) maps to screen center when
	// cam = (300 - 300, 200 - 700).
	nav.FindNearestBlock(Camera{X: 0, Y: -500}, 2.0, 600, 400)

	block, line := nav.Cursor()
	if block != 1 {
		t.Errorf("nearest block = %d, want 1", block)
	}
	if line != 0 {
		t.Errorf("line after nearest-block selection = %d, want 0", line)
	}
}

func TestNav_SetAnalysisResetsState(t *testing.T) {
	nav := activeNav(t)
	nav.NextLine()
	nav.StartScroll(Forward)

	nav.SetAnalysis(twoBlockAnalysis(), model.DefaultNavigableClasses())

	block, line := nav.Cursor()
	if block != 0 || line != 0 {
		t.Errorf("cursor = (%d, %d) after re-seed, want (0, 0)", block, line)
	}
	if nav.Scrolling() {
		t.Error("re-seed should cancel scroll state")
	}
}

func TestNav_StatusAccessors(t *testing.T) {
	nav := activeNav(t)

	if got := nav.NavigableCount(); got != 2 {
		t.Errorf("NavigableCount = %d, want 2", got)
	}
	if got := nav.CurrentLineCount(); got != 2 {
		t.Errorf("CurrentLineCount = %d, want 2", got)
	}

	band := nav.CurrentLineBand()
	if band.Y != 60 || band.Height != 10 {
		t.Errorf("CurrentLineBand = %+v, want {60 10}", band)
	}

	block := nav.CurrentBlock()
	if block == nil || block.ClassID != model.ClassText {
		t.Errorf("CurrentBlock = %+v", block)
	}
}

func TestNav_EmptyNavigableAccessors(t *testing.T) {
	nav := New(DefaultConfig())

	if nav.CurrentBlock() != nil {
		t.Error("CurrentBlock without analysis should be nil")
	}
	if band := nav.CurrentLineBand(); band != (model.LineBand{}) {
		t.Errorf("CurrentLineBand without analysis = %+v", band)
	}
	if nav.CurrentLineCount() != 0 || nav.NavigableCount() != 0 {
		t.Error("counts without analysis should be 0")
	}
	nav.JumpToEnd()
	nav.FindNearestBlock(Camera{}, 2, 600, 400)
}

func TestResult_String(t *testing.T) {
	if OK.String() != "ok" ||
		PageBoundaryNext.String() != "page-boundary-next" ||
		PageBoundaryPrev.String() != "page-boundary-prev" {
		t.Error("unexpected Result string values")
	}
}
