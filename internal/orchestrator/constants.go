// Package orchestrator drives the capture, decide, sleep and notify loop
package orchestrator

import "time"

// Notification texts
const (
	EndedMessage    = "The workout element has ended."
	OvertimeMessage = "The workout element has ended, which the model didn't process on time."
)

// DefaultStartDelay gives the user time to bring the workout video up.
const DefaultStartDelay = 5 * time.Second
