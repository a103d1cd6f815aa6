package batch

import (
	"context"
	"os"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Pair names two files to compare.
type Pair struct {
	OriginalPath string
	ModifiedPath string
}

// PairResult is the outcome of comparing one pair. Err is set when either
// file could not be read; the comparison itself cannot fail.
type PairResult struct {
	Pair     Pair
	Result   *differ.Result
	Insights differ.Insights
	Err      error
}

// Runner fans out independent comparisons across a bounded worker pool.
// Each engine invocation owns its own state, so no coordination between
// pairs is needed beyond the result slot.
type Runner struct {
	engine      *differ.Engine
	concurrency int
	logger      zerolog.Logger
}

// NewRunner creates a batch runner.
func NewRunner(engine *differ.Engine, cfg config.BatchConfig, logger zerolog.Logger) *Runner {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = config.DefaultBatchConcurrency
	}
	return &Runner{
		engine:      engine,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "BatchRunner").Logger(),
	}
}

// Run compares every pair and returns results in input order. File read
// failures are reported per pair rather than aborting the batch.
func (r *Runner) Run(ctx context.Context, pairs []Pair, opts differ.Options) ([]PairResult, error) {
	results := make([]PairResult, len(pairs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for idx, pair := range pairs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[idx] = r.comparePair(pair, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, errorwrapper.WrapError(err, "batch comparison interrupted")
	}

	r.logger.Info().Int("pairs", len(pairs)).Msg("Batch comparison finished")
	return results, nil
}

func (r *Runner) comparePair(pair Pair, opts differ.Options) PairResult {
	original, err := os.ReadFile(pair.OriginalPath)
	if err != nil {
		return PairResult{Pair: pair, Err: errorwrapper.WrapError(err, "failed to read original file")}
	}
	modified, err := os.ReadFile(pair.ModifiedPath)
	if err != nil {
		return PairResult{Pair: pair, Err: errorwrapper.WrapError(err, "failed to read modified file")}
	}

	result := r.engine.Diff(string(original), string(modified), opts)
	return PairResult{
		Pair:     pair,
		Result:   result,
		Insights: differ.BuildInsights(result),
	}
}
