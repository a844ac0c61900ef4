package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskToDo       TaskStatus = "to_do"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is an opaque payload from the remote API. The console validates form
// input before submit but enforces no rules of its own.
type Task struct {
	ID            int64        `json:"id,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	StartDate     *Timestamp   `json:"start_date,omitempty"`
	DueDate       *Timestamp   `json:"due_date,omitempty"`
	Status        TaskStatus   `json:"status"`
	CompletedDate *Timestamp   `json:"completed_date,omitempty"`
	Priority      TaskPriority `json:"priority"`
	AssigneeID    int64        `json:"assignee_id,omitempty"`
	CreatedBy     int64        `json:"created_by,omitempty"`
	CreatedTime   *Timestamp   `json:"created_time,omitempty"`
	UpdatedBy     int64        `json:"updated_by,omitempty"`
	UpdatedTime   *Timestamp   `json:"updated_time,omitempty"`
}

// dateLayout is the layout of HTML date inputs and of date-only API values.
const dateLayout = "2006-01-02"

// Timestamp accepts both RFC 3339 and date-only values from the API.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// ParseDate parses an HTML date input value. An empty value yields nil.
func ParseDate(s string) (*Timestamp, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &Timestamp{Time: t}, nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported time value %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// DateValue formats the timestamp for an HTML date input.
func (t *Timestamp) DateValue() string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Display formats the timestamp for tables, "Not set" when absent.
func (t *Timestamp) Display() string {
	if t == nil || t.IsZero() {
		return "Not set"
	}
	return t.Format("Jan 2, 2006")
}
