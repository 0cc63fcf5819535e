package model

import "time"

// ProjectDirectory is the path of one repository working copy.
type ProjectDirectory string

func (p ProjectDirectory) String() string {
	return string(p)
}

// Operation names a git subcommand run by the sync engine.
type Operation string

const (
	OperationFetch  Operation = "fetch"
	OperationStatus Operation = "status"
	OperationPull   Operation = "pull"
)

// SyncOutcome is the result of one operation against one repository.
type SyncOutcome struct {
	// RunID identifies the batch that produced the outcome
	RunID string `json:"run_id,omitempty"`

	// Project is the repository the operation ran against
	Project ProjectDirectory `json:"project"`

	// Operation is the git subcommand that was run
	Operation Operation `json:"operation"`

	// Output is the captured standard output of a successful operation
	Output string `json:"output,omitempty"`

	// Failed marks the outcome as a failure
	Failed bool `json:"failed,omitempty"`

	// Message is the human readable failure message
	Message string `json:"message,omitempty"`

	// Detail carries the underlying error text of a failure
	Detail string `json:"detail,omitempty"`

	// At is when the operation completed
	At time.Time `json:"at"`
}

// Succeeded builds a successful outcome.
func Succeeded(project ProjectDirectory, op Operation, output string) SyncOutcome {
	return SyncOutcome{
		Project:   project,
		Operation: op,
		Output:    output,
		At:        time.Now(),
	}
}

// FailedOutcome builds a failure-marked outcome. err may be nil.
func FailedOutcome(project ProjectDirectory, op Operation, message string, err error) SyncOutcome {
	o := SyncOutcome{
		Project:   project,
		Operation: op,
		Failed:    true,
		Message:   message,
		At:        time.Now(),
	}

	if err != nil {
		o.Detail = err.Error()
	}

	return o
}
