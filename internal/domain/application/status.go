package application

import "fmt"

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is accepted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	case StatusSubmitted, StatusUnderReview:
		return false
	}
	return false
}

// Next returns the quick-action targets offered to a reviewer.
func (s Status) Next() []Status {
	switch s {
	case StatusSubmitted, StatusUnderReview:
		return []Status{StatusUnderReview, StatusApproved, StatusRejected}
	case StatusApproved, StatusRejected:
		return nil
	}
	return nil
}

// CanTransition reports whether the server accepts moving from s to to.
// Resubmitting the current status is always accepted so notes can be saved.
func (s Status) CanTransition(to Status) bool {
	if !to.Valid() {
		return false
	}
	if s == to {
		return true
	}
	switch s {
	case StatusSubmitted:
		return true
	case StatusUnderReview:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	}
	return false
}

func (s Status) String() string { return string(s) }
