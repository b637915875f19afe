package issue

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// TimeLayout is the timestamp format persisted for created_at/updated_at.
// Values are always UTC; consumers append "Z" after swapping the space for "T".
const TimeLayout = "2006-01-02 15:04:05"

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Issue struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   *string  `json:"updated_at"`
}

type CreateIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// Validate checks the request in a fixed order so each failure produces a
// stable, distinct message. Title and description are required after
// trimming; title additionally must not start with whitespace even when
// the rest of it is non-empty.
func (r CreateIssueRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ValidationError("Title required")
	}
	if strings.TrimLeftFunc(r.Title, unicode.IsSpace) != r.Title {
		return ValidationError("Title must not start with whitespace")
	}
	if strings.TrimSpace(r.Description) == "" {
		return ValidationError("Description required")
	}
	if !r.Priority.Valid() {
		return ValidationError(fmt.Sprintf("Priority must be one of: %s, %s, %s", PriorityLow, PriorityMedium, PriorityHigh))
	}
	if !r.ResolvedStatus().Valid() {
		return ValidationError(fmt.Sprintf("Status must be one of: %s, %s, %s", StatusOpen, StatusInProgress, StatusResolved))
	}
	return nil
}

// ResolvedStatus applies the creation default: an absent status means Open.
func (r CreateIssueRequest) ResolvedStatus() Status {
	if r.Status == "" {
		return StatusOpen
	}
	return r.Status
}

type UpdateStatusRequest struct {
	NewStatus *Status `json:"newStatus"`
}

func Timestamp() string {
	return time.Now().UTC().Format(TimeLayout)
}
