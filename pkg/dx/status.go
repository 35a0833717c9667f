package dx

import (
	"errors"
	"strings"
)

// Status is the outcome of a workflow job, step or needed job
type Status int

const (
	// Unknown is used when no job context was provided or the value is not recognized
	Unknown Status = iota
	// Success means the job or step passed
	Success
	// Failure means the job or step failed
	Failure
	// Cancelled means the run was cancelled before the job or step finished
	Cancelled
	// Skipped means the job or step did not run
	Skipped
)

func (s Status) String() string {
	return statusToString[s]
}

// StatusFromString parses a status string case-insensitively
func StatusFromString(statusString string) (Status, error) {
	if status, ok := statusToID[strings.ToLower(statusString)]; ok {
		return status, nil
	}
	return Unknown, errors.New("wrong input")
}

// Statuses returns every status value
func Statuses() []Status {
	return []Status{Success, Failure, Cancelled, Skipped, Unknown}
}

var statusToString = map[Status]string{
	Unknown:   "unknown",
	Success:   "success",
	Failure:   "failure",
	Cancelled: "cancelled",
	Skipped:   "skipped",
}

var statusToID = map[string]Status{
	"unknown":   Unknown,
	"success":   Success,
	"failure":   Failure,
	"cancelled": Cancelled,
	"skipped":   Skipped,
}
