package layout

import (
	"math"

	"github.com/sjvrensburg/railreader2/model"
)

// FilterConfig holds configuration for detection filtering
type FilterConfig struct {
	// MinConfidence is the confidence floor below which detections
	// are discarded
	// Default: 0.4
	MinConfidence float64

	// MinPixelSize is the minimum box width and height in source-bitmap
	// pixels; smaller detections are treated as noise
	// Default: 5
	MinPixelSize float64
}

// DefaultFilterConfig returns sensible default configuration
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinConfidence: 0.4,
		MinPixelSize:  5.0,
	}
}

// BoxFilter discards low-confidence and degenerate detections and maps
// the survivors from bitmap-pixel space into page-point space.
type BoxFilter struct {
	config FilterConfig
}

// NewBoxFilter creates a box filter with default configuration
func NewBoxFilter() *BoxFilter {
	return &BoxFilter{config: DefaultFilterConfig()}
}

// NewBoxFilterWithConfig creates a box filter with custom configuration
func NewBoxFilterWithConfig(config FilterConfig) *BoxFilter {
	return &BoxFilter{config: config}
}

// Filter converts raw detections into candidate layout blocks in page
// points. Rejected rows: confidence below the floor, unknown class,
// non-positive extent after clamping to the bitmap bounds, or either
// dimension under the pixel noise floor. Surviving blocks have Order 0
// (unset, unless the detection carried a model order hint) and nil Lines.
func (f *BoxFilter) Filter(detections []Detection, pixelWidth, pixelHeight int, pageWidth, pageHeight float64) []model.LayoutBlock {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return nil
	}

	scaleX := pageWidth / float64(pixelWidth)
	scaleY := pageHeight / float64(pixelHeight)

	var blocks []model.LayoutBlock
	for _, det := range detections {
		if det.Confidence < f.config.MinConfidence {
			continue
		}
		if !model.KnownClass(det.ClassID) {
			continue
		}

		// Clamp to bitmap bounds before computing extents
		x := math.Max(det.XMin, 0)
		y := math.Max(det.YMin, 0)
		w := math.Min(det.XMax, float64(pixelWidth)) - x
		h := math.Min(det.YMax, float64(pixelHeight)) - y

		if w <= 0 || h <= 0 {
			continue
		}
		if w < f.config.MinPixelSize || h < f.config.MinPixelSize {
			continue
		}

		block := model.LayoutBlock{
			BBox: model.BBox{
				X:      x * scaleX,
				Y:      y * scaleY,
				Width:  w * scaleX,
				Height: h * scaleY,
			},
			ClassID:    det.ClassID,
			Confidence: det.Confidence,
		}
		if det.HasOrder {
			block.Order = det.Order
		}
		blocks = append(blocks, block)
	}

	return blocks
}
