package domain

import "strings"

type IssuePriority int

// Values follow the tracker's numeric priority order.
const (
	IssuePriorityNone IssuePriority = iota
	IssuePriorityUrgent
	IssuePriorityHigh
	IssuePriorityMedium
	IssuePriorityLow
)

func ParseIssuePriority(raw string) IssuePriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urgent":
		return IssuePriorityUrgent
	case "high":
		return IssuePriorityHigh
	case "low":
		return IssuePriorityLow
	case "none", "no priority":
		return IssuePriorityNone
	default:
		return IssuePriorityMedium
	}
}

func (p IssuePriority) String() string {
	switch p {
	case IssuePriorityUrgent:
		return "Urgent"
	case IssuePriorityHigh:
		return "High"
	case IssuePriorityMedium:
		return "Medium"
	case IssuePriorityLow:
		return "Low"
	default:
		return "No priority"
	}
}

type IntentKind string

const (
	IntentChat        IntentKind = "chat"
	IntentCreateIssue IntentKind = "create_issue"
)

type Intent struct {
	Kind        IntentKind
	Title       string
	Description string
	Priority    IssuePriority
}

// IssueDraft is what the agent files in the tracker.
type IssueDraft struct {
	Title       string
	Description string
	Priority    IssuePriority
}

func (i Intent) Draft() IssueDraft {
	return IssueDraft{Title: i.Title, Description: i.Description, Priority: i.Priority}
}
