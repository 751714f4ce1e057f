package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/arc-language/spralpkg/pkg/registry"
	"github.com/arc-language/spralpkg/pkg/source"
)

// Config wires the collaborators of a pipeline. Zero fields get defaults.
type Config struct {
	Runner   core.Runner
	Host     *platform.Platform
	Data     *source.Data
	Fetcher  *source.Fetcher
	Registry *registry.Registry
	Metrics  *Metrics
	Jobs     int
}

// Pipeline runs recipe stages against the filesystem and external tools
type Pipeline struct {
	runner   core.Runner
	host     *platform.Platform
	data     *source.Data
	fetcher  *source.Fetcher
	registry *registry.Registry
	metrics  *Metrics
	jobs     int
	stages   []Stage
}

// New creates a pipeline for recipe r
func New(r *Recipe, cfg Config) (*Pipeline, error) {
	p := &Pipeline{
		runner:   cfg.Runner,
		host:     cfg.Host,
		data:     cfg.Data,
		fetcher:  cfg.Fetcher,
		registry: cfg.Registry,
		metrics:  cfg.Metrics,
		jobs:     cfg.Jobs,
		stages:   Stages(),
	}

	if p.runner == nil {
		p.runner = &core.ExecRunner{}
	}
	if p.host == nil {
		host, err := platform.Detect()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrPlatformNotSupported, err)
		}
		p.host = host
	}
	if p.data == nil {
		data, err := source.LoadData("")
		if err != nil {
			return nil, err
		}
		p.data = data
	}
	if p.fetcher == nil {
		p.fetcher = source.NewFetcher(r.Paths.Cache, 0)
	}
	if p.registry == nil {
		p.registry = registry.New(r.Paths.Deps)
	}
	if p.metrics == nil {
		p.metrics = NewMetrics()
	}

	return p, nil
}

// Metrics returns the stage metrics of the pipeline
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Run executes every stage of r in order. The first failing stage aborts
// the run.
func (p *Pipeline) Run(ctx context.Context, r *Recipe) (*State, error) {
	return p.RunUntil(ctx, r, p.stages[len(p.stages)-1].Name)
}

// RunUntil executes the stages of r up to and including last
func (p *Pipeline) RunUntil(ctx context.Context, r *Recipe, last string) (*State, error) {
	end, err := stageIndex(p.stages, last)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := logging.FromContext(ctx).With("run_id", runID, "ref", r.Ref())
	ctx = logging.WithLogger(ctx, logger)

	logger.Info("starting recipe", "options", r.Options.String(), "settings", r.Settings.String())

	st := &State{Recipe: r, done: map[string]bool{}}
	total := end + 1
	for i, stage := range p.stages[:total] {
		if err := p.runStage(ctx, logger, stage, st, i+1, total); err != nil {
			return st, err
		}
	}

	logger.Info("recipe finished", "stages", total)
	return st, nil
}

func (p *Pipeline) runStage(ctx context.Context, logger *slog.Logger, stage Stage, st *State, step, total int) error {
	logger.Info(fmt.Sprintf("Step %d/%d: %s", step, total, stage.Name))

	start := time.Now()
	err := stage.Run(logging.WithLogger(ctx, logger.With("stage", stage.Name)), p, st)
	p.metrics.observe(stage.Name, time.Since(start), err)

	if err != nil {
		logger.Error("stage failed", "stage", stage.Name, "error", err)
		return &core.Error{Op: stage.Name, Package: st.Recipe.Ref(), Err: err}
	}

	st.done[stage.Name] = true
	logger.Debug("stage done", "stage", stage.Name, "duration", time.Since(start))
	return nil
}
