package layout

import (
	"sort"

	"github.com/sjvrensburg/railreader2/model"
)

// FallbackStripCount is the number of equal horizontal strips the
// deterministic fallback analysis divides a page into.
const FallbackStripCount = 8

// AnalyzerConfig aggregates the configuration of every pipeline stage
type AnalyzerConfig struct {
	// Filter configures detection filtering
	Filter FilterConfig

	// NMSThreshold is the IoU above which overlapping detections are
	// suppressed
	// Default: 0.5
	NMSThreshold float64

	// Order configures reading-order assignment
	Order OrderConfig

	// Line configures text-line segmentation
	Line LineConfig

	// Navigable is the set of class IDs considered navigable; only
	// these blocks receive line segmentation
	Navigable map[int]bool
}

// DefaultAnalyzerConfig returns sensible default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Filter:       DefaultFilterConfig(),
		NMSThreshold: DefaultNMSThreshold,
		Order:        DefaultOrderConfig(),
		Line:         DefaultLineConfig(),
		Navigable:    model.DefaultNavigableClasses(),
	}
}

// AnalysisInput carries everything one page analysis needs: the raw
// detection rows, the RGB888 row-major buffer of the page rendered at the
// detection resolution, the buffer's pixel dimensions, and the page's
// point dimensions.
type AnalysisInput struct {
	Detections  []Detection
	Pixels      []uint8
	PixelWidth  int
	PixelHeight int
	PageWidth   float64
	PageHeight  float64
}

// Analyzer runs the full detection post-processing pipeline: filtering,
// non-maximum suppression, reading-order assignment, and per-block
// text-line segmentation.
type Analyzer struct {
	config    AnalyzerConfig
	filter    *BoxFilter
	order     *OrderAssigner
	segmenter *LineSegmenter
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	if config.Navigable == nil {
		config.Navigable = model.DefaultNavigableClasses()
	}
	return &Analyzer{
		config:    config,
		filter:    NewBoxFilterWithConfig(config.Filter),
		order:     NewOrderAssignerWithConfig(config.Order),
		segmenter: NewLineSegmenterWithConfig(config.Line),
	}
}

// Analyze transforms raw detections plus page pixels into an ordered,
// line-annotated page structure. It is a pure function of its input:
// no I/O, no shared state, safe to run on a background goroutine.
func (a *Analyzer) Analyze(input AnalysisInput) *model.PageAnalysis {
	blocks := a.filter.Filter(input.Detections, input.PixelWidth, input.PixelHeight, input.PageWidth, input.PageHeight)

	blocks = SuppressOverlaps(blocks, a.config.NMSThreshold)

	a.order.Assign(blocks, input.PageWidth, AllOrdered(input.Detections))

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Order < blocks[j].Order
	})

	if input.PixelWidth > 0 && input.PixelHeight > 0 {
		scaleX := input.PageWidth / float64(input.PixelWidth)
		scaleY := input.PageHeight / float64(input.PixelHeight)
		a.segmenter.Segment(blocks, input.Pixels, input.PixelWidth, input.PixelHeight, scaleX, scaleY, a.config.Navigable)
	}

	return &model.PageAnalysis{
		Blocks:     blocks,
		PageWidth:  input.PageWidth,
		PageHeight: input.PageHeight,
	}
}

// Resegment rebuilds line bands for a previously analyzed page under a
// new navigable set, without re-running detection. The input analysis is
// not mutated; a copy with fresh blocks is returned. Blocks outside the
// new set lose their lines.
func (a *Analyzer) Resegment(analysis *model.PageAnalysis, pixels []uint8, pixelWidth, pixelHeight int, navigable map[int]bool) *model.PageAnalysis {
	blocks := make([]model.LayoutBlock, len(analysis.Blocks))
	copy(blocks, analysis.Blocks)
	for i := range blocks {
		blocks[i].Lines = nil
	}

	if pixelWidth > 0 && pixelHeight > 0 {
		scaleX := analysis.PageWidth / float64(pixelWidth)
		scaleY := analysis.PageHeight / float64(pixelHeight)
		a.segmenter.Segment(blocks, pixels, pixelWidth, pixelHeight, scaleX, scaleY, navigable)
	}

	return &model.PageAnalysis{
		Blocks:     blocks,
		PageWidth:  analysis.PageWidth,
		PageHeight: analysis.PageHeight,
	}
}

// Fallback returns a deterministic page structure used when the detector
// is unavailable: the page split into equal horizontal strips, each a
// single-line navigable text block. Rail mode stays usable without any
// model output.
func Fallback(pageWidth, pageHeight float64) *model.PageAnalysis {
	stripHeight := pageHeight / FallbackStripCount

	blocks := make([]model.LayoutBlock, 0, FallbackStripCount)
	for i := 0; i < FallbackStripCount; i++ {
		top := float64(i) * stripHeight
		blocks = append(blocks, model.LayoutBlock{
			BBox: model.BBox{
				X:      0,
				Y:      top,
				Width:  pageWidth,
				Height: stripHeight,
			},
			ClassID:    model.ClassText,
			Confidence: 1.0,
			Order:      i,
			Lines: []model.LineBand{{
				Y:      top + stripHeight/2,
				Height: stripHeight,
			}},
		})
	}

	return &model.PageAnalysis{
		Blocks:     blocks,
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
	}
}
