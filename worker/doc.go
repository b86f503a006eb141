// Package worker runs page layout analysis on a background goroutine so
// the foreground can keep driving navigation on the previous page.
//
// The [Worker] serializes analyses (one page at a time), suppresses
// duplicate submissions for a page already in flight, and caches
// finished analyses in a bounded LRU keyed by page number. A small
// lookahead queue supports prefetching a handful of upcoming pages;
// unbounded prefetch is deliberately not possible.
//
//	w, _ := worker.New(func(in layout.AnalysisInput) (*model.PageAnalysis, error) {
//	    dets, err := backend.Detect(in.Pixels, in.PixelWidth, in.PixelHeight)
//	    if err != nil {
//	        return nil, err
//	    }
//	    in.Detections = dets
//	    return analyzer.Analyze(in), nil
//	})
//	w.Submit(worker.Request{Page: 3, Input: input})
//	// each frame:
//	if res, ok := w.Poll(); ok { ... }
//
// A failed backend still yields a usable result: the worker substitutes
// the deterministic strip fallback and reports the error alongside it.
package worker
