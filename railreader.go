// Package railreader turns raw document layout detections and rendered
// page pixels into ordered, line-annotated page structures, and drives
// line-by-line camera navigation over them.
//
// Basic usage:
//
//	analysis := railreader.AnalyzeImage(img, rows, cols, pageW, pageH)
//	nav := rail.New(rail.DefaultConfig())
//	nav.SetAnalysis(analysis, navigable)
//
// The lower-level layout, rail, raster, and worker packages are also
// available for hosts that need finer control.
package railreader

import (
	"image"

	"github.com/sjvrensburg/railreader2/layout"
	"github.com/sjvrensburg/railreader2/model"
	"github.com/sjvrensburg/railreader2/raster"
)

// Analyze runs the full layout pipeline with default configuration.
//
// For custom thresholds or navigable classes, build a layout.Analyzer
// directly.
func Analyze(input layout.AnalysisInput) *model.PageAnalysis {
	return layout.NewAnalyzer().Analyze(input)
}

// AnalyzeImage runs the full layout pipeline over a rendered page image
// and the detector's raw output rows. rows is the flat row-major
// detection tensor and cols its stride; pageWidth and pageHeight are
// the page's dimensions in points.
func AnalyzeImage(img image.Image, rows []float32, cols int, pageWidth, pageHeight float64) *model.PageAnalysis {
	buf := raster.FromImage(img)
	return Analyze(layout.AnalysisInput{
		Detections:  layout.ParseDetections(rows, cols),
		Pixels:      buf.Pix,
		PixelWidth:  buf.Width,
		PixelHeight: buf.Height,
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
	})
}

// Fallback returns the deterministic strip analysis used when no
// detector output is available. See layout.Fallback.
func Fallback(pageWidth, pageHeight float64) *model.PageAnalysis {
	return layout.Fallback(pageWidth, pageHeight)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
