// Package orchestrator drives the capture, decide, sleep and notify loop
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator/analysis"
	"github.com/GriffinCanCode/workout-buddy/internal/syncx"
	"github.com/GriffinCanCode/workout-buddy/internal/trace"
)

// Analyzer runs one capture-and-infer cycle.
type Analyzer interface {
	Run(ctx context.Context) (*analysis.Result, error)
}

// Notifier alerts the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Orchestrator owns the single control loop.
type Orchestrator struct {
	analyzer Analyzer
	notifier Notifier
	policy   Policy
	sleep    func(context.Context, time.Duration) error
	status   *syncx.Guard[Status]
}

// New creates an orchestrator.
func New(analyzer Analyzer, notifier Notifier, policy Policy) *Orchestrator {
	return &Orchestrator{
		analyzer: analyzer,
		notifier: notifier,
		policy:   policy,
		sleep:    syncx.Sleep,
		status:   syncx.NewGuard(Status{}),
	}
}

// Status returns a snapshot of the loop state.
func (o *Orchestrator) Status() Status {
	return o.status.Get()
}

// Run repeats cycles until ctx is cancelled or a cycle fails with a fatal
// error. Cancellation is a clean stop and returns nil.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := o.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Info("stopping", "reason", ctx.Err())
				return nil
			}
			if !apperrors.KindOf(err).Fatal() {
				slog.Warn("cycle failed, continuing", "error", err)
				continue
			}
			return err
		}
	}
}

// Cycle runs one analysis and acts on it.
func (o *Orchestrator) Cycle(ctx context.Context) (Decision, error) {
	ctx, span := trace.StartSpan(ctx, "cycle")
	log := trace.Logger(ctx)
	defer func() {
		span.End()
		log.Debug("cycle finished", "span", span)
	}()

	o.status.Update(func(s *Status) {
		s.State = StateCapturing
		s.Cycles++
	})
	log.Info("starting analysis")

	result, err := o.analyzer.Run(ctx)
	if err != nil {
		o.setState(StateIdle)
		return Decision{}, err
	}

	o.setState(StateDeciding)
	d := Decide(result.Response, result.Estimate, o.policy)
	o.status.Update(func(s *Status) {
		s.LastAction = d.Action
		s.LastEstimate = result.Estimate
	})
	span.SetAttr("action", d.Action.String())
	if result.Estimate != nil {
		log.Info("compensated time remaining", "remaining", seconds(*result.Estimate), "latency", seconds(result.Latency.Seconds()))
	}

	switch d.Action {
	case ActionIrrelevant:
		log.Info("images are not relevant, according to the model",
			"reasoning", result.Response.Reasoning,
			"analysis", result.Response.ImageComparisonAndAnalysis)
	case ActionNoEstimate:
		log.Info("no time remaining provided in the response", "reasoning", result.Response.Reasoning)
	case ActionAboveThreshold:
		log.Info("time remaining is higher than threshold, reprocessing",
			"remaining", seconds(d.Estimate), "threshold", seconds(o.policy.Threshold))
	case ActionOvertime:
		log.Info("the workout element has ended", "remaining", seconds(d.Estimate))
		if d.Notify {
			if err := o.notify(ctx, d.Message); err != nil {
				return d, err
			}
		}
	case ActionWait:
		log.Info("the workout element is still ongoing", "remaining", seconds(d.Estimate))
		o.setState(StateSleeping)
		if err := o.sleep(ctx, d.Sleep); err != nil {
			return d, err
		}
		if err := o.notify(ctx, d.Message); err != nil {
			return d, err
		}
	}

	return d, nil
}

func (o *Orchestrator) notify(ctx context.Context, message string) error {
	if err := o.notifier.Notify(ctx, message); err != nil {
		return err
	}
	o.setState(StateNotified)
	return nil
}

func (o *Orchestrator) setState(s State) {
	o.status.Update(func(st *Status) { st.State = s })
}

func seconds(v float64) string {
	return fmt.Sprintf("%.2fs", v)
}
