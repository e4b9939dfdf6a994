package runner

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dredge/domain/core"
	"dredge/domain/sim"
	"dredge/internal"
	"dredge/internal/config"
	"dredge/internal/errors"
	"dredge/ports"
)

// Runner drives N independent trials: generate a null dataset, run the
// battery, record the flag. Trials share nothing but the partitioned random
// source; the accumulated outcomes are the runner's explicit return value.
type Runner struct {
	cfg       config.SimulationConfig
	generator ports.GeneratorPort
	battery   ports.BatteryPort
	streams   ports.RNGPort
	logger    *internal.Logger
}

// New creates a runner for the given configuration and collaborators.
func New(cfg config.SimulationConfig, generator ports.GeneratorPort, battery ports.BatteryPort, streams ports.RNGPort) *Runner {
	return &Runner{
		cfg:       cfg,
		generator: generator,
		battery:   battery,
		streams:   streams,
		logger:    internal.DefaultLogger,
	}
}

// Run executes every configured trial and returns one outcome per trial, in
// trial order. Evaluator failures inside a trial fail closed and never abort
// the run; a generator failure aborts it outright, since partial results are
// not meaningful for an aggregate rate.
func (r *Runner) Run(ctx context.Context) (*sim.RunResult, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	startedAt := time.Now()
	outcomes := make([]sim.TrialOutcome, r.cfg.Trials)

	if r.cfg.Workers > 1 {
		if err := r.runParallel(ctx, outcomes); err != nil {
			return nil, err
		}
	} else {
		for i := range outcomes {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "run cancelled")
			}
			outcome, err := r.runTrial(i)
			if err != nil {
				return nil, err
			}
			outcomes[i] = outcome
		}
	}

	result := &sim.RunResult{
		RunID: core.RunID(core.NewID()),
		Config: sim.RunConfig{
			Trials:       r.cfg.Trials,
			Observations: r.cfg.Observations,
			Covariates:   r.cfg.Covariates,
			Alpha:        r.cfg.Alpha,
			Seed:         r.cfg.Seed,
		},
		Outcomes:  outcomes,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}
	r.logger.Info("run %s complete: %d/%d trials flagged (%.1f%%) in %v",
		result.RunID, result.FlaggedCount(), r.cfg.Trials, 100*result.Fraction(), result.Duration)
	return result, nil
}

// runParallel fans trials over bounded workers. Each trial's substream is a
// pure function of (seed, index), so the outcome sequence is identical to the
// sequential path.
func (r *Runner) runParallel(ctx context.Context, outcomes []sim.TrialOutcome) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workers)

	for i := range outcomes {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "run cancelled")
			}
			outcome, err := r.runTrial(i)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	return group.Wait()
}

func (r *Runner) runTrial(index int) (sim.TrialOutcome, error) {
	stream := r.streams.TrialStream(index)

	ds, err := r.generator.Generate(stream, r.cfg.Observations, r.cfg.Covariates)
	if err != nil {
		return sim.TrialOutcome{}, errors.Wrapf(err, "trial %d: dataset generation failed", index+1)
	}

	outcome := r.battery.Run(ds, stream)
	outcome.Index = index + 1
	if outcome.Flagged {
		r.logger.Debug("trial %d flagged by %v", outcome.Index, outcome.TriggeredBy())
	}
	return outcome, nil
}
