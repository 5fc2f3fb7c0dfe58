package orchestrator

import (
	"time"

	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator/analysis"
)

// Action is what the loop does with one analysis result.
type Action uint8

const (
	// ActionIrrelevant: the model says the frames show no countdown.
	ActionIrrelevant Action = iota
	// ActionNoEstimate: relevant frames but no number reported.
	ActionNoEstimate
	// ActionAboveThreshold: the estimate is treated as spurious.
	ActionAboveThreshold
	// ActionOvertime: the countdown ended before the response arrived.
	ActionOvertime
	// ActionWait: sleep for the estimate, then notify.
	ActionWait
)

func (a Action) String() string {
	switch a {
	case ActionIrrelevant:
		return "irrelevant"
	case ActionNoEstimate:
		return "no_estimate"
	case ActionAboveThreshold:
		return "above_threshold"
	case ActionOvertime:
		return "overtime"
	case ActionWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Policy holds the user's thresholds.
type Policy struct {
	// Threshold is the largest estimate, in seconds, worth acting on.
	Threshold float64
	// NotifyOvertime enables the alert for estimates at or below zero.
	NotifyOvertime bool
}

// Decision is the outcome of Decide.
type Decision struct {
	Action   Action
	Estimate float64
	Sleep    time.Duration
	Message  string
	Notify   bool
}

// Decide applies the loop rules in order: relevance, presence of an
// estimate, threshold, overtime, wait.
func Decide(resp *analysis.ModelResponse, estimate *float64, p Policy) Decision {
	switch {
	case resp == nil || !resp.ImagesAreRelevant:
		return Decision{Action: ActionIrrelevant}
	case estimate == nil:
		return Decision{Action: ActionNoEstimate}
	}

	est := *estimate
	switch {
	case est > p.Threshold:
		return Decision{Action: ActionAboveThreshold, Estimate: est}
	case est <= 0:
		d := Decision{Action: ActionOvertime, Estimate: est, Notify: p.NotifyOvertime}
		if d.Notify {
			d.Message = OvertimeMessage
		}
		return d
	default:
		return Decision{
			Action:   ActionWait,
			Estimate: est,
			Sleep:    time.Duration(est * float64(time.Second)),
			Message:  EndedMessage,
			Notify:   true,
		}
	}
}
