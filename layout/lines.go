package layout

import (
	"math"

	"github.com/sjvrensburg/railreader2/model"
)

// LineConfig holds configuration for text-line segmentation
type LineConfig struct {
	// DarkLuminance is the luminance (0-255) below which a pixel counts
	// as ink
	// Default: 160
	DarkLuminance float64

	// MinDensity is the row-density floor; rows at or below it are
	// treated as blank and excluded from the adaptive threshold
	// Default: 0.005
	MinDensity float64

	// MeanFraction scales the mean non-blank density into the adaptive
	// threshold. A fraction of the mean generalises across font weights
	// and sizes where a fixed cutoff does not.
	// Default: 0.15
	MeanFraction float64

	// MinRunRows is the minimum height in pixel rows for a contiguous
	// dark run to count as a line; shorter runs are noise
	// Default: 3
	MinRunRows int
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		DarkLuminance: 160.0,
		MinDensity:    0.005,
		MeanFraction:  0.15,
		MinRunRows:    3,
	}
}

// LineSegmenter finds horizontal text-line bands inside layout blocks by
// row-density profiling of the rendered page pixels.
type LineSegmenter struct {
	config LineConfig
}

// NewLineSegmenter creates a line segmenter with default configuration
func NewLineSegmenter() *LineSegmenter {
	return &LineSegmenter{config: DefaultLineConfig()}
}

// NewLineSegmenterWithConfig creates a line segmenter with custom configuration
func NewLineSegmenterWithConfig(config LineConfig) *LineSegmenter {
	return &LineSegmenter{config: config}
}

// Segment populates the Lines of every block whose class is in the
// navigable set, scanning the RGB888 row-major pixel buffer the page was
// rendered to. Non-navigable blocks are left untouched. scaleX and scaleY
// convert bitmap pixels to page points.
func (s *LineSegmenter) Segment(blocks []model.LayoutBlock, pixels []uint8, pixelWidth, pixelHeight int, scaleX, scaleY float64, navigable map[int]bool) {
	for i := range blocks {
		if !navigable[blocks[i].ClassID] {
			continue
		}
		blocks[i].Lines = s.segmentBlock(&blocks[i], pixels, pixelWidth, pixelHeight, scaleX, scaleY)
	}
}

// segmentBlock returns the line bands for one block. A block mapping to a
// zero-area pixel region, or one where no dark run survives, yields a
// single synthetic band spanning the block.
func (s *LineSegmenter) segmentBlock(block *model.LayoutBlock, pixels []uint8, pixelWidth, pixelHeight int, scaleX, scaleY float64) []model.LineBand {
	// Map the page-point bbox back to bitmap pixels
	px := int(math.Round(block.BBox.X / scaleX))
	py := int(math.Round(block.BBox.Y / scaleY))
	pw := int(math.Round(block.BBox.Width / scaleX))
	ph := int(math.Round(block.BBox.Height / scaleY))

	// Clamp to bitmap bounds
	if px > pixelWidth-1 {
		px = pixelWidth - 1
	}
	if py > pixelHeight-1 {
		py = pixelHeight - 1
	}
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	if pw > pixelWidth-px {
		pw = pixelWidth - px
	}
	if ph > pixelHeight-py {
		ph = pixelHeight - py
	}

	if pw <= 0 || ph <= 0 {
		return []model.LineBand{syntheticBand(block)}
	}

	// Horizontal projection profile: fraction of dark pixels per row
	profile := make([]float64, ph)
	for row := 0; row < ph; row++ {
		darkCount := 0
		for col := 0; col < pw; col++ {
			idx := ((py+row)*pixelWidth + (px + col)) * 3
			if idx+2 >= len(pixels) {
				continue
			}
			r := float64(pixels[idx])
			g := float64(pixels[idx+1])
			b := float64(pixels[idx+2])
			lum := r*0.299 + g*0.587 + b*0.114
			if lum < s.config.DarkLuminance {
				darkCount++
			}
		}
		profile[row] = float64(darkCount) / float64(pw)
	}

	// Radius-1 moving average
	smoothed := make([]float64, ph)
	for r := 0; r < ph; r++ {
		start := r - 1
		if start < 0 {
			start = 0
		}
		end := r + 2
		if end > ph {
			end = ph
		}
		sum := 0.0
		for _, v := range profile[start:end] {
			sum += v
		}
		smoothed[r] = sum / float64(end-start)
	}

	// Adaptive threshold: a fraction of the mean non-blank density
	sum := 0.0
	count := 0
	for _, v := range smoothed {
		if v > s.config.MinDensity {
			sum += v
			count++
		}
	}
	threshold := s.config.MinDensity
	if count > 0 {
		threshold = math.Max(sum/float64(count)*s.config.MeanFraction, s.config.MinDensity)
	}

	// Contiguous above-threshold runs become line bands
	var lines []model.LineBand
	runStart := -1
	emit := func(start, end int) {
		runRows := end - start
		if runRows < s.config.MinRunRows {
			return
		}
		centerPx := float64(start) + float64(runRows)/2
		lines = append(lines, model.LineBand{
			Y:      block.BBox.Y + centerPx*scaleY,
			Height: float64(runRows) * scaleY,
		})
	}
	for r := 0; r < ph; r++ {
		if smoothed[r] > threshold {
			if runStart < 0 {
				runStart = r
			}
		} else if runStart >= 0 {
			emit(runStart, r)
			runStart = -1
		}
	}
	if runStart >= 0 {
		emit(runStart, ph)
	}

	if len(lines) == 0 {
		return []model.LineBand{syntheticBand(block)}
	}
	return lines
}

// syntheticBand returns one band vertically centered on the block and
// spanning its full height.
func syntheticBand(block *model.LayoutBlock) model.LineBand {
	return model.LineBand{
		Y:      block.BBox.Y + block.BBox.Height/2,
		Height: block.BBox.Height,
	}
}
