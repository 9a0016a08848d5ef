package signal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codeberg.org/mutker/syshealth/internal/logger"
)

// Orchestrator runs collectors concurrently, each under its own timeout,
// and assembles the name-to-result map the scoring layer consumes. A
// panicking or hanging collector degrades its own signal, never the run.
type Orchestrator struct {
	collectors []Collector
	budget     time.Duration
}

// NewOrchestrator builds an orchestrator over the given collectors.
// budget is the global collection budget; zero means no global limit
// beyond the per-collector timeouts.
func NewOrchestrator(collectors []Collector, budget time.Duration) *Orchestrator {
	sorted := make([]Collector, len(collectors))
	copy(sorted, collectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	return &Orchestrator{
		collectors: sorted,
		budget:     budget,
	}
}

// Run executes all collectors and returns one result per collector name.
// Every collector yields a result: a timeout produces an unavailable
// result with a timeout reason, a panic an unavailable result with the
// panic description.
func (o *Orchestrator) Run(ctx context.Context) map[string]Result {
	if o.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.budget)
		defer cancel()
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(o.collectors))
	)

	for _, c := range o.collectors {
		wg.Add(1)
		go func(c Collector) {
			defer wg.Done()

			result := o.collectOne(ctx, c)

			mu.Lock()
			results[c.Name()] = result
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) collectOne(ctx context.Context, c Collector) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Msgf("Collector %s panicked: %v", c.Name(), r)
			result = Unavailable(c.Name(), fmt.Sprintf("collector panicked: %v", r), "orchestrator")
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.DefaultTimeout())
	defer cancel()

	start := time.Now()
	result = c.Collect(cctx)
	logger.Debug().
		Str("collector", c.Name()).
		Str("quality", string(result.Quality)).
		Dur("elapsed", time.Since(start)).
		Msg("Collector finished")

	return result
}

// Errors extracts the collector-error descriptions from a result map,
// sorted by collector name for deterministic reports.
func Errors(results map[string]Result) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		r := results[name]
		if r.Quality == QualityError {
			errs = append(errs, fmt.Sprintf("%s: %s", r.Name, r.Reason))
		}
	}

	return errs
}
