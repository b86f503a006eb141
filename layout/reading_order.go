package layout

import (
	"sort"

	"github.com/sjvrensburg/railreader2/model"
)

// OrderConfig holds configuration for reading-order assignment
type OrderConfig struct {
	// ColumnThresholdRatio is the maximum left-edge distance for two
	// blocks to share a column, as a ratio of page width
	// Default: 0.15
	ColumnThresholdRatio float64

	// OverlapRatio is the minimum horizontal overlap, as a fraction of
	// the narrower block's width, for two blocks to share a column
	// Default: 0.3
	OverlapRatio float64

	// PreferModelOrder when true uses the detector's own reading-order
	// column when every detection carried one; geometric clustering
	// remains the fallback
	// Default: true
	PreferModelOrder bool
}

// DefaultOrderConfig returns sensible default configuration
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		ColumnThresholdRatio: 0.15,
		OverlapRatio:         0.3,
		PreferModelOrder:     true,
	}
}

// OrderAssigner assigns a total top-to-bottom, left-to-right reading
// order to layout blocks.
type OrderAssigner struct {
	config OrderConfig
}

// NewOrderAssigner creates an order assigner with default configuration
func NewOrderAssigner() *OrderAssigner {
	return &OrderAssigner{config: DefaultOrderConfig()}
}

// NewOrderAssignerWithConfig creates an order assigner with custom configuration
func NewOrderAssignerWithConfig(config OrderConfig) *OrderAssigner {
	return &OrderAssigner{config: config}
}

// Assign sets the Order field of every block to a gap-free sequence
// 0..n-1. When modelOrdered is true (every source detection carried a
// well-formed order hint, already copied onto the blocks) and the
// configuration prefers it, blocks are stable-sorted by (order, y) and
// renumbered. Otherwise the geometric column clustering is used.
func (a *OrderAssigner) Assign(blocks []model.LayoutBlock, pageWidth float64, modelOrdered bool) {
	if len(blocks) == 0 {
		return
	}

	if modelOrdered && a.config.PreferModelOrder {
		sort.SliceStable(blocks, func(i, j int) bool {
			if blocks[i].Order != blocks[j].Order {
				return blocks[i].Order < blocks[j].Order
			}
			return blocks[i].BBox.Y < blocks[j].BBox.Y
		})
		for i := range blocks {
			blocks[i].Order = i
		}
		return
	}

	a.assignGeometric(blocks, pageWidth)
}

// assignGeometric clusters blocks into left-to-right columns with a
// union-find and numbers members top-to-bottom within each column.
//
// Two blocks share a column when their left edges are close, or when
// their horizontal overlap exceeds a fraction of the narrower block's
// width. The mixed rule keeps a full-width paragraph and a narrow
// footnote in one column where naive x-center clustering would split
// them.
func (a *OrderAssigner) assignGeometric(blocks []model.LayoutBlock, pageWidth float64) {
	n := len(blocks)
	columnThreshold := pageWidth * a.config.ColumnThresholdRatio

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[ri] = rj
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ba := blocks[i].BBox
			bb := blocks[j].BBox

			leftClose := absFloat(ba.X-bb.X) < columnThreshold

			overlap := ba.HorizontalOverlap(bb)
			minWidth := minFloat(ba.Width, bb.Width)
			hasOverlap := minWidth > 0 && overlap/minWidth > a.config.OverlapRatio

			if leftClose || hasOverlap {
				union(i, j)
			}
		}
	}

	columnsByRoot := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		columnsByRoot[root] = append(columnsByRoot[root], i)
	}

	columns := make([][]int, 0, len(columnsByRoot))
	for _, members := range columnsByRoot {
		columns = append(columns, members)
	}

	// Columns left to right by minimum member x
	sort.Slice(columns, func(i, j int) bool {
		return columnMinX(blocks, columns[i]) < columnMinX(blocks, columns[j])
	})

	order := 0
	for _, col := range columns {
		// Members top to bottom within the column
		sort.Slice(col, func(i, j int) bool {
			return blocks[col[i]].BBox.Y < blocks[col[j]].BBox.Y
		})
		for _, idx := range col {
			blocks[idx].Order = order
			order++
		}
	}
}

func columnMinX(blocks []model.LayoutBlock, members []int) float64 {
	minX := blocks[members[0]].BBox.X
	for _, idx := range members[1:] {
		if blocks[idx].BBox.X < minX {
			minX = blocks[idx].BBox.X
		}
	}
	return minX
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
