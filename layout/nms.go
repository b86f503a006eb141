package layout

import (
	"sort"

	"github.com/sjvrensburg/railreader2/model"
)

// DefaultNMSThreshold is the IoU above which two boxes are considered
// duplicates of the same region.
const DefaultNMSThreshold = 0.5

// SuppressOverlaps performs greedy non-maximum suppression over candidate
// blocks. Blocks are considered in descending confidence order; each
// surviving block suppresses every later block whose IoU with it exceeds
// the threshold. Within any cluster of mutually overlapping boxes the
// highest-confidence member therefore survives, and no two survivors
// overlap beyond the threshold.
//
// The returned slice is freshly allocated and sorted by descending
// confidence. Complexity is O(n^2), acceptable for the tens of detections
// a page produces.
func SuppressOverlaps(blocks []model.LayoutBlock, iouThreshold float64) []model.LayoutBlock {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]model.LayoutBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	keep := make([]bool, len(sorted))
	for i := range keep {
		keep[i] = true
	}

	for i := 0; i < len(sorted); i++ {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			if !keep[j] {
				continue
			}
			if sorted[i].BBox.IoU(sorted[j].BBox) > iouThreshold {
				keep[j] = false
			}
		}
	}

	result := make([]model.LayoutBlock, 0, len(sorted))
	for i, b := range sorted {
		if keep[i] {
			result = append(result, b)
		}
	}
	return result
}
