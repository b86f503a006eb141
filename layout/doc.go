// Package layout turns raw machine-learning layout detections into an
// ordered, navigable page structure.
//
// # Pipeline
//
// The [Analyzer] orchestrates four stages:
//
//	analyzer := layout.NewAnalyzer()
//	analysis := analyzer.Analyze(layout.AnalysisInput{
//	    Detections:  layout.ParseDetections(tensor, cols),
//	    Pixels:      rgb,
//	    PixelWidth:  pw,
//	    PixelHeight: ph,
//	    PageWidth:   pageW,
//	    PageHeight:  pageH,
//	})
//
//   - [BoxFilter] - drops low-confidence, unknown-class, and degenerate
//     detections and maps the survivors into page points
//   - [SuppressOverlaps] - greedy confidence-ordered non-maximum
//     suppression of duplicate boxes
//   - [OrderAssigner] - assigns a total reading order, either from the
//     detector's own order column or by union-find column clustering
//   - [LineSegmenter] - finds text-line bands inside navigable blocks by
//     row-density profiling of the rendered pixels
//
// The stages are pure transformations of immutable inputs; the whole
// pipeline is safe to run on a background goroutine.
//
// # Fallback
//
// When no detector is available, [Fallback] produces a deterministic
// structure (equal horizontal strips) so rail navigation keeps working.
//
// # Configuration
//
// Each stage can be configured independently through [AnalyzerConfig]:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Filter.MinConfidence = 0.5
//	config.Navigable = model.DefaultNavigableClasses()
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// A change to the navigable set only requires [Analyzer.Resegment], not a
// fresh detection run.
package layout
