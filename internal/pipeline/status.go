package pipeline

import (
	"fmt"
	"net/http"
	"strings"
)

// Status is a pipeline state. StatusRejected is terminal.
type Status string

const (
	StatusNew       Status = "new"
	StatusApproved  Status = "approved"
	StatusContacted Status = "contacted"
	StatusBackup    Status = "backup"
	StatusRejected  Status = "rejected"
)

// transitions lists the allowed targets per state, in display order.
var transitions = map[Status][]Status{
	StatusNew:       {StatusApproved, StatusBackup, StatusRejected},
	StatusApproved:  {StatusContacted, StatusBackup, StatusRejected},
	StatusContacted: {StatusApproved, StatusBackup, StatusRejected},
	StatusBackup:    {StatusContacted, StatusApproved, StatusRejected},
	StatusRejected:  {},
}

// Statuses returns every state in workflow order.
func Statuses() []Status {
	return []Status{StatusNew, StatusApproved, StatusContacted, StatusBackup, StatusRejected}
}

// ParseStatus validates a client supplied status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.TrimSpace(raw))
	_, ok := transitions[s]
	return s, ok
}

// Allowed returns the states reachable from s.
func Allowed(s Status) []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// CanTransition reports whether from -> to is in the table.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionError is returned for a move the state machine forbids. Its
// message is safe to show to API clients.
type TransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *TransitionError) Error() string {
	allowed := "none (terminal state)"
	if len(e.Allowed) > 0 {
		names := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			names[i] = string(s)
		}
		allowed = strings.Join(names, ", ")
	}
	return fmt.Sprintf("Invalid status transition from '%s' to '%s'. Allowed transitions: %s", e.From, e.To, allowed)
}

// StatusCode maps the error to HTTP 400.
func (e *TransitionError) StatusCode() int {
	return http.StatusBadRequest
}

// ValidateTransition returns a *TransitionError when from -> to is not allowed.
func ValidateTransition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	return &TransitionError{From: from, To: to, Allowed: Allowed(from)}
}
