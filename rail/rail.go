package rail

import (
	"time"

	"github.com/sjvrensburg/railreader2/model"
)

// Result reports the outcome of a cursor movement.
type Result int

const (
	// OK means the cursor moved (or the call was a no-op while inactive)
	OK Result = iota

	// PageBoundaryNext means the cursor is already on the last line of
	// the last block; the caller should load the next page and re-seed
	PageBoundaryNext

	// PageBoundaryPrev means the cursor is already on the first line of
	// the first block; the caller should load the previous page,
	// re-seed, and JumpToEnd
	PageBoundaryPrev
)

// String returns a string representation of the result
func (r Result) String() string {
	switch r {
	case PageBoundaryNext:
		return "page-boundary-next"
	case PageBoundaryPrev:
		return "page-boundary-prev"
	default:
		return "ok"
	}
}

// Dir is a horizontal scroll direction along the current line.
type Dir int

const (
	// Forward scrolls toward the end of the line
	Forward Dir = iota
	// Backward scrolls toward the start of the line
	Backward
)

// Camera is the camera offset in screen pixels. A page point p appears
// on screen at p*zoom + offset.
type Camera struct {
	X, Y float64
}

// Config holds the tunable navigation parameters. All of them may be
// changed at runtime without re-running detection.
type Config struct {
	// ZoomThreshold is the zoom level at which rail mode activates
	// Default: 3.0
	ZoomThreshold float64

	// SnapDuration is the length of a snap animation
	// Default: 300ms
	SnapDuration time.Duration

	// ScrollSpeedStart is the horizontal scroll speed in page points
	// per second at the start of a hold
	// Default: 10
	ScrollSpeedStart float64

	// ScrollSpeedMax is the horizontal scroll speed after a full ramp
	// Default: 50
	ScrollSpeedMax float64

	// ScrollRampTime is the hold duration over which speed ramps from
	// start to max
	// Default: 1.5s
	ScrollRampTime time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		ZoomThreshold:    3.0,
		SnapDuration:     300 * time.Millisecond,
		ScrollSpeedStart: 10.0,
		ScrollSpeedMax:   50.0,
		ScrollRampTime:   1500 * time.Millisecond,
	}
}

// Nav is the rail navigation state machine. It owns the cursor over the
// navigable subset of a page analysis, the zoom-based activation state,
// and the snap/scroll animation state, and computes camera targets each
// frame.
//
// Nav belongs to the foreground frame loop and is not safe for
// concurrent use. Every operation is total: calls while inactive, or
// with no navigable blocks, are no-ops returning a neutral result.
type Nav struct {
	config    Config
	analysis  *model.PageAnalysis
	navigable []int

	currentBlock int // index into navigable
	currentLine  int // index into the current block's Lines
	active       bool

	snap   *snapAnimation
	scroll *scrollState
}

// New creates a navigator with the given configuration
func New(config Config) *Nav {
	return &Nav{config: config}
}

// SetConfig replaces the navigation parameters. Takes effect on the
// next operation; a running snap keeps its original duration.
func (n *Nav) SetConfig(config Config) {
	n.config = config
}

// SetAnalysis seeds the navigator with a new page structure and derives
// the navigable index from the given class set. The cursor and all
// animation state are reset.
func (n *Nav) SetAnalysis(analysis *model.PageAnalysis, navigable map[int]bool) {
	n.analysis = analysis
	if analysis != nil {
		n.navigable = analysis.NavigableIndices(navigable)
	} else {
		n.navigable = nil
	}
	n.currentBlock = 0
	n.currentLine = 0
	n.snap = nil
	n.scroll = nil
}

// HasAnalysis reports whether the navigator holds an analysis with at
// least one navigable block.
func (n *Nav) HasAnalysis() bool {
	return n.analysis != nil && len(n.navigable) > 0
}

// Active reports whether rail mode is currently engaged.
func (n *Nav) Active() bool {
	return n.active
}

// Cursor returns the current (block, line) position within the
// navigable subset.
func (n *Nav) Cursor() (block, line int) {
	return n.currentBlock, n.currentLine
}

// NavigableCount returns the number of navigable blocks.
func (n *Nav) NavigableCount() int {
	return len(n.navigable)
}

// CurrentBlock returns the active navigable block, or nil when there is
// none.
func (n *Nav) CurrentBlock() *model.LayoutBlock {
	if !n.HasAnalysis() {
		return nil
	}
	idx := n.navigable[clampInt(n.currentBlock, 0, len(n.navigable)-1)]
	return &n.analysis.Blocks[idx]
}

// CurrentLineBand returns the active line band, or a zero band when
// there is none.
func (n *Nav) CurrentLineBand() model.LineBand {
	block := n.CurrentBlock()
	if block == nil || len(block.Lines) == 0 {
		return model.LineBand{}
	}
	return block.Lines[clampInt(n.currentLine, 0, len(block.Lines)-1)]
}

// CurrentLineCount returns the number of lines in the active block.
func (n *Nav) CurrentLineCount() int {
	block := n.CurrentBlock()
	if block == nil {
		return 0
	}
	return len(block.Lines)
}

// UpdateZoom drives the activation state machine. Crossing the zoom
// threshold upward (with navigable blocks present) activates rail mode
// on the block nearest the viewport center; dropping below it
// deactivates and cancels any running animation.
func (n *Nav) UpdateZoom(zoom float64, cam Camera, viewWidth, viewHeight float64) {
	shouldBeActive := zoom >= n.config.ZoomThreshold && n.HasAnalysis()

	if shouldBeActive && !n.active {
		n.active = true
		n.FindNearestBlock(cam, zoom, viewWidth, viewHeight)
	} else if !shouldBeActive && n.active {
		n.active = false
		n.snap = nil
		n.scroll = nil
	}
}

// FindNearestBlock moves the cursor to the navigable block whose
// centroid is nearest the current viewport center, resetting the line
// to 0. O(navigable count).
func (n *Nav) FindNearestBlock(cam Camera, zoom, viewWidth, viewHeight float64) {
	if !n.HasAnalysis() || zoom <= 0 {
		return
	}

	// Viewport center in page coordinates
	center := model.Point{
		X: (viewWidth/2 - cam.X) / zoom,
		Y: (viewHeight/2 - cam.Y) / zoom,
	}

	bestDist := -1.0
	bestIdx := 0
	for i, blockIdx := range n.navigable {
		d := n.analysis.Blocks[blockIdx].BBox.Center().Distance(center)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	n.currentBlock = bestIdx
	n.currentLine = 0
}

// NextLine advances the cursor to the next line, rolling over to the
// next block's first line. At the last line of the last block it
// returns PageBoundaryNext without moving.
func (n *Nav) NextLine() Result {
	if !n.active || len(n.navigable) == 0 {
		return OK
	}

	lineCount := len(n.CurrentBlock().Lines)

	switch {
	case n.currentLine+1 < lineCount:
		n.currentLine++
		return OK
	case n.currentBlock+1 < len(n.navigable):
		n.currentBlock++
		n.currentLine = 0
		return OK
	default:
		return PageBoundaryNext
	}
}

// PrevLine moves the cursor to the previous line, rolling back to the
// previous block's last line. At the first line of the first block it
// returns PageBoundaryPrev without moving.
func (n *Nav) PrevLine() Result {
	if !n.active || len(n.navigable) == 0 {
		return OK
	}

	switch {
	case n.currentLine > 0:
		n.currentLine--
		return OK
	case n.currentBlock > 0:
		n.currentBlock--
		lines := len(n.CurrentBlock().Lines)
		if lines > 0 {
			n.currentLine = lines - 1
		} else {
			n.currentLine = 0
		}
		return OK
	default:
		return PageBoundaryPrev
	}
}

// JumpToEnd puts the cursor on the last line of the last navigable
// block. Used after a backward page transition so reading resumes at
// the end of the new page.
func (n *Nav) JumpToEnd() {
	if len(n.navigable) == 0 {
		return
	}
	n.currentBlock = len(n.navigable) - 1
	lines := len(n.CurrentBlock().Lines)
	if lines > 0 {
		n.currentLine = lines - 1
	} else {
		n.currentLine = 0
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
