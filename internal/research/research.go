// Package research fans a company lookup out to the configured sources
// concurrently and merges the partial results into one record.
package research

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/company-research/internal/merge"
	"github.com/sells-group/company-research/internal/model"
	"github.com/sells-group/company-research/internal/source"
)

// ErrAllSourcesFailed reports that every configured source errored for a
// company. The HTTP boundary maps it to an error response; partial source
// failures never surface here.
var ErrAllSourcesFailed = eris.New("research: all sources failed")

// Researcher coordinates the source fan-out and the merge. The order of
// sources is the merge priority order.
type Researcher struct {
	sources       []source.Source
	merger        *merge.Merger
	sourceTimeout time.Duration
	concurrency   int
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithSourceTimeout bounds each individual source call.
func WithSourceTimeout(d time.Duration) Option {
	return func(r *Researcher) {
		if d > 0 {
			r.sourceTimeout = d
		}
	}
}

// WithConcurrency bounds how many companies a batch researches at once.
func WithConcurrency(n int) Option {
	return func(r *Researcher) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithMerger replaces the default merger. Used by tests to fix the clock.
func WithMerger(m *merge.Merger) Option {
	return func(r *Researcher) {
		r.merger = m
	}
}

// New creates a Researcher over the given sources in priority order.
func New(sources []source.Source, opts ...Option) *Researcher {
	r := &Researcher{
		sources:       sources,
		merger:        merge.New(),
		sourceTimeout: 30 * time.Second,
		concurrency:   5,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Research looks a company up in every source concurrently and merges the
// results. A source that fails or times out degrades to an absent slot; only
// when every source errors does Research fail, with ErrAllSourcesFailed.
func (r *Researcher) Research(ctx context.Context, companyName string) (model.Record, error) {
	log := zap.L().With(zap.String("company", companyName))

	slots := make([]merge.Slot, len(r.sources))
	errs := make([]error, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		slots[i].Source = src.Name()
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, r.sourceTimeout)
			defer cancel()

			rec, err := src.Fetch(sctx, companyName)
			if err != nil {
				errs[i] = err
				log.Warn("research: source failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				return nil // degraded slot, not fatal
			}
			slots[i].Record = rec
			return nil
		})
	}
	_ = g.Wait() // goroutines only report via slots and errs

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(r.sources) > 0 && failed == len(r.sources) {
		return model.Record{}, ErrAllSourcesFailed
	}

	rec := r.merger.Merge(companyName, slots)
	log.Info("research: merged record",
		zap.String("status", string(rec.Status)),
		zap.Int("sources_failed", failed),
	)
	return rec, nil
}

// FailedRecord builds the failed-status record the boundary returns for a
// company whose every source errored.
func (r *Researcher) FailedRecord(companyName string) model.Record {
	return r.merger.Failed(companyName)
}

// BatchResult holds the outcome of researching several companies.
type BatchResult struct {
	Results []model.Record `json:"results"`
	Errors  []string       `json:"errors,omitempty"`
}

// ResearchAll researches companies concurrently, bounded by the configured
// batch concurrency. A company whose sources all fail yields a failed-status
// record and an entry in Errors; the rest of the batch is unaffected.
func (r *Researcher) ResearchAll(ctx context.Context, companyNames []string) BatchResult {
	results := make([]model.Record, len(companyNames))

	var mu sync.Mutex
	var errMsgs []string

	g := &errgroup.Group{}
	g.SetLimit(r.concurrency)
	for i, name := range companyNames {
		g.Go(func() error {
			rec, err := r.Research(ctx, name)
			if err != nil {
				rec = r.FailedRecord(name)
				mu.Lock()
				errMsgs = append(errMsgs, name+": "+err.Error())
				mu.Unlock()
			}
			results[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	return BatchResult{Results: results, Errors: errMsgs}
}
