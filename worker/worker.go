package worker

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sjvrensburg/railreader2/layout"
	"github.com/sjvrensburg/railreader2/model"
)

const (
	// DefaultCacheSize bounds the per-page analysis cache
	DefaultCacheSize = 16

	// queueDepth is the request channel capacity; with in-flight
	// deduplication and a handful of lookahead pages this never fills
	// in practice
	queueDepth = 32
)

// AnalyzeFunc runs one page analysis. The layout pipeline is pure and
// side-effect free, so implementations are safe to call from the worker
// goroutine; errors come from the detection backend, not the pipeline.
type AnalyzeFunc func(input layout.AnalysisInput) (*model.PageAnalysis, error)

// Request asks the worker to analyze one page.
type Request struct {
	Page  int
	Input layout.AnalysisInput
}

// Result delivers one finished analysis. When the backend failed, Err is
// set and Analysis holds the deterministic fallback so rail mode stays
// usable.
type Result struct {
	Page     int
	Analysis *model.PageAnalysis
	Err      error
}

// Worker runs page analyses on a single background goroutine, one page
// at a time. Duplicate submissions for an in-flight page are suppressed,
// finished analyses land in a bounded LRU cache keyed by page number,
// and a small lookahead queue lets the host prefetch a few pages ahead
// without unbounded memory growth.
//
// Submit and Poll are called from the foreground loop; both are
// non-blocking.
type Worker struct {
	analyze AnalyzeFunc
	logger  *log.Logger

	requests chan Request
	results  chan Result
	done     chan struct{}

	mu       sync.Mutex
	inFlight map[int]struct{}
	pending  []int
	closed   bool

	cache *lru.Cache[int, *model.PageAnalysis]
}

// Option configures a Worker
type Option func(*Worker)

// WithLogger sets the worker's logger
func WithLogger(logger *log.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// New starts a worker around the given analysis function.
func New(analyze AnalyzeFunc, opts ...Option) (*Worker, error) {
	if analyze == nil {
		return nil, fmt.Errorf("worker: analyze function is required")
	}

	cache, err := lru.New[int, *model.PageAnalysis](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("worker: create cache: %w", err)
	}

	w := &Worker{
		analyze:  analyze,
		logger:   log.Default(),
		requests: make(chan Request, queueDepth),
		results:  make(chan Result, queueDepth),
		done:     make(chan struct{}),
		inFlight: make(map[int]struct{}),
		cache:    cache,
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.run()
	return w, nil
}

func (w *Worker) run() {
	defer close(w.done)

	for req := range w.requests {
		analysis, err := w.analyze(req.Input)
		if err != nil {
			w.logger.Warn("page analysis failed, using fallback",
				"page", req.Page, "err", err)
			analysis = layout.Fallback(req.Input.PageWidth, req.Input.PageHeight)
		}
		w.results <- Result{Page: req.Page, Analysis: analysis, Err: err}
	}
}

// Submit queues a page for analysis. It returns false without queueing
// when the page is already in flight or the worker has been closed.
func (w *Worker) Submit(req Request) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	if _, ok := w.inFlight[req.Page]; ok {
		w.mu.Unlock()
		return false
	}
	w.inFlight[req.Page] = struct{}{}
	w.mu.Unlock()

	select {
	case w.requests <- req:
		w.logger.Debug("submitted page analysis", "page", req.Page)
		return true
	default:
		w.mu.Lock()
		delete(w.inFlight, req.Page)
		w.mu.Unlock()
		return false
	}
}

// Poll returns one finished result if any is ready, caching its
// analysis by page number. Results arriving for pages the user has
// already left are still cached for their next visit.
func (w *Worker) Poll() (Result, bool) {
	select {
	case res := <-w.results:
		w.mu.Lock()
		delete(w.inFlight, res.Page)
		w.mu.Unlock()
		w.cache.Add(res.Page, res.Analysis)
		return res, true
	default:
		return Result{}, false
	}
}

// Cached returns the cached analysis for a page, if present.
func (w *Worker) Cached(page int) (*model.PageAnalysis, bool) {
	return w.cache.Get(page)
}

// AddCached stores an analysis produced outside the worker (e.g. a
// fallback built on the foreground) in the page cache.
func (w *Worker) AddCached(page int, analysis *model.PageAnalysis) {
	w.cache.Add(page, analysis)
}

// InFlight reports whether a page is currently being analyzed.
func (w *Worker) InFlight(page int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inFlight[page]
	return ok
}

// Idle reports whether no analyses are pending.
func (w *Worker) Idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.inFlight) == 0
}

// QueueLookahead replaces the lookahead queue with up to count uncached
// pages following current. Zero count disables prefetch.
func (w *Worker) QueueLookahead(current, count, pageCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = w.pending[:0]
	for i := 1; i <= count; i++ {
		page := current + i
		if page >= pageCount {
			break
		}
		if _, ok := w.cache.Get(page); ok {
			continue
		}
		w.pending = append(w.pending, page)
	}
}

// SubmitPendingLookahead submits at most one queued lookahead page, and
// only while the worker is idle, keeping prefetch to one page at a
// time. The prepare callback renders the page and builds its analysis
// input; pages whose preparation fails are skipped. Returns true when a
// request was submitted.
func (w *Worker) SubmitPendingLookahead(prepare func(page int) (layout.AnalysisInput, error)) bool {
	if !w.Idle() {
		return false
	}

	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.mu.Unlock()
			return false
		}
		page := w.pending[0]
		w.pending = w.pending[1:]
		w.mu.Unlock()

		if _, ok := w.cache.Get(page); ok {
			continue
		}

		input, err := prepare(page)
		if err != nil {
			w.logger.Warn("lookahead preparation failed", "page", page, "err", err)
			continue
		}
		if w.Submit(Request{Page: page, Input: input}) {
			w.logger.Debug("submitted lookahead analysis", "page", page)
			return true
		}
		return false
	}
}

// Close stops the worker goroutine. Pending requests are drained before
// it exits; Close does not wait for them. Submit after Close returns
// false.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()
	close(w.requests)
}
