// Package analysis runs one capture-and-infer cycle and compensates the
// reported countdown for the time the round trip took.
package analysis

// Task is the user-turn instruction sent ahead of the images.
const Task = "Perform the analysis in accordance with the system prompt."

const fieldTimeRemaining = "time_remaining_in_seconds"

// softKeywords are schema keywords whose violations only produce warnings.
var softKeywords = map[string]bool{
	"minLength": true,
	"minimum":   true,
}
