// Package rollout plays many episodes of a policy in parallel and
// summarizes the outcome.
package rollout

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/agent"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/env"
)

// PolicyFactory builds a fresh policy for one episode.
type PolicyFactory func(seed int64) (agent.Policy, error)

// NamedPolicy returns a factory for one of the agent package policies.
func NamedPolicy(name string, w config.HeuristicWeights) PolicyFactory {
	return func(seed int64) (agent.Policy, error) {
		return agent.New(name, seed, w)
	}
}

// Job describes a batch of episodes.
type Job struct {
	Policy    string        // label stored with every result
	NewPolicy PolicyFactory // builds the policy for each episode
	Episodes  int
	Workers   int   // <1 means GOMAXPROCS
	BaseSeed  int64 // episode i uses BaseSeed+i
}

// Result is the outcome of one episode.
type Result struct {
	Episode   int     `csv:"episode"`
	Policy    string  `csv:"policy"`
	Seed      int64   `csv:"seed"`
	Steps     int     `csv:"steps"`
	Pieces    int     `csv:"pieces"`
	Lines     int     `csv:"lines"`
	Score     int     `csv:"score"`
	Return    float64 `csv:"return"`
	Truncated bool    `csv:"truncated"`
}

// Runner plays episodes with a shared set of environment options.
type Runner struct {
	opts   env.Options
	logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(opts env.Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{opts: opts, logger: logger}
}

// Run plays job.Episodes episodes across job.Workers goroutines. Each worker
// owns its environment; policies are built per episode. Results are ordered by
// episode index. It returns the first error encountered, including context
// cancellation.
func (r *Runner) Run(ctx context.Context, job Job) ([]Result, error) {
	if job.NewPolicy == nil {
		return nil, fmt.Errorf("rollout: job %q has no policy factory", job.Policy)
	}
	if job.Episodes <= 0 {
		return nil, nil
	}
	workers := workerCount(job.Workers, job.Episodes)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.logger.Debug("rollout started", "policy", job.Policy, "episodes", job.Episodes, "workers", workers)

	jobs := make(chan int, workers*2)
	results := make([]Result, job.Episodes)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			e := env.New(r.opts)
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					seed := job.BaseSeed + int64(i)
					p, err := job.NewPolicy(seed)
					if err != nil {
						fail(fmt.Errorf("rollout: episode %d: %w", i, err))
						return
					}
					stats, err := Play(ctx, e, p, seed)
					if err != nil {
						fail(err)
						return
					}
					results[i] = resultFrom(i, job.Policy, stats)
					r.logger.Debug("episode finished", "episode", i, "seed", seed, "lines", stats.Lines, "steps", stats.Length)
				}
			}
		}()
	}

feed:
	for i := 0; i < job.Episodes; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rollout: %w", err)
	}
	return results, nil
}

// workerCount resolves the requested worker count. Values below one use
// GOMAXPROCS; the result never exceeds the number of episodes.
func workerCount(requested, episodes int) int {
	workers := requested
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(min(workers, episodes), 1)
}

// Play runs one episode to its end and returns its statistics.
func Play(ctx context.Context, e *env.Env, p agent.Policy, seed int64) (env.EpisodeStats, error) {
	if _, _, err := e.Reset(&seed); err != nil {
		return env.EpisodeStats{}, err
	}
	for !e.Done() {
		if e.Engine().Steps()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return env.EpisodeStats{}, fmt.Errorf("rollout: %w", err)
			}
		}
		e.Step(p.Act(agent.ViewOf(e.Engine())))
	}
	return e.Stats(), nil
}

func resultFrom(i int, policy string, s env.EpisodeStats) Result {
	return Result{
		Episode:   i,
		Policy:    policy,
		Seed:      s.Seed,
		Steps:     s.Length,
		Pieces:    s.Pieces,
		Lines:     s.Lines,
		Score:     s.Score,
		Return:    s.Return,
		Truncated: s.Truncated,
	}
}
