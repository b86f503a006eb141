package model

// LineBand represents one detected text line within a block. Y is the
// vertical center of the band in page points; Height is the band height.
type LineBand struct {
	Y      float64
	Height float64
}

// LayoutBlock is a single detected layout region on a page.
type LayoutBlock struct {
	// BBox is the block's bounding box in page points
	BBox BBox

	// ClassID identifies the layout class (see LayoutClasses)
	ClassID int

	// Confidence is the detector's confidence score (0 to 1)
	Confidence float64

	// Order is the block's position in reading order, assigned once
	// during analysis and stable thereafter
	Order int

	// Lines holds the detected text-line bands. Populated only for
	// blocks whose class is navigable under the active configuration;
	// nil otherwise.
	Lines []LineBand
}

// PageAnalysis is the ordered, line-annotated block structure for one
// page. It is immutable once produced; navigation takes it by value.
type PageAnalysis struct {
	// Blocks in reading order (ascending Order)
	Blocks []LayoutBlock

	// Page dimensions in points
	PageWidth  float64
	PageHeight float64
}

// NavigableIndices returns the indices of blocks whose class is in the
// given navigable set, preserving reading order. The result is a fresh
// slice; it must be recomputed whenever the set changes.
func (a *PageAnalysis) NavigableIndices(navigable map[int]bool) []int {
	var indices []int
	for i, b := range a.Blocks {
		if navigable[b.ClassID] {
			indices = append(indices, i)
		}
	}
	return indices
}

// BlockCount returns the number of blocks on the page.
func (a *PageAnalysis) BlockCount() int {
	return len(a.Blocks)
}

// TotalLineCount returns the number of line bands across the blocks
// selected by the navigable set.
func (a *PageAnalysis) TotalLineCount(navigable map[int]bool) int {
	total := 0
	for _, b := range a.Blocks {
		if navigable[b.ClassID] {
			total += len(b.Lines)
		}
	}
	return total
}
