package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskTextLength is the longest task text accepted, in characters.
const MaxTaskTextLength = 1000

// Common validation errors for Task. Each wraps ErrValidation.
var (
	ErrEmptyTaskUserID  = fmt.Errorf("%w: task user ID cannot be empty", ErrValidation)
	ErrEmptyTaskText    = fmt.Errorf("%w: task text cannot be empty", ErrValidation)
	ErrTaskTextTooLong  = fmt.Errorf("%w: task text must be at most 1000 characters long", ErrValidation)
	ErrInvalidTaskTagID = fmt.Errorf("%w: invalid tag ID", ErrValidation)
)

// Task is a single study item owned by exactly one user.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TagID     *int64    `json:"tag_id,omitempty"`
	TagName   string    `json:"tag_name,omitempty"` // Populated on reads that join tags
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a pending task for userID. The text is trimmed; a nil or
// sentinel tag ID leaves the task untagged.
func NewTask(userID int64, text string, tagID *int64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UserID:    userID,
		TagID:     normalizeTagID(tagID),
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return NewValidationError("user_id", "", ErrEmptyTaskUserID)
	}
	if err := validateTaskText(t.Text); err != nil {
		return err
	}
	if t.TagID != nil && *t.TagID <= 0 {
		return NewValidationError("tag_id", "", ErrInvalidTaskTagID)
	}
	return nil
}

// SetText replaces the task text after trimming and validating it.
func (t *Task) SetText(text string) error {
	text = strings.TrimSpace(text)
	if err := validateTaskText(text); err != nil {
		return err
	}
	t.Text = text
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkDone moves the task to done. It reports whether the state changed;
// marking a done task again is a no-op.
func (t *Task) MarkDone() bool {
	if t.Done {
		return false
	}
	t.Done = true
	t.UpdatedAt = time.Now().UTC()
	return true
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID int64) bool {
	return t.UserID == userID
}

// NormalizeTaskText trims text and validates it as task content.
func NormalizeTaskText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := validateTaskText(text); err != nil {
		return "", err
	}
	return text, nil
}

func validateTaskText(text string) error {
	if text == "" {
		return NewValidationError("text", "", ErrEmptyTaskText)
	}
	if utf8.RuneCountInString(text) > MaxTaskTextLength {
		return NewValidationError("text", "", ErrTaskTextTooLong)
	}
	return nil
}

func normalizeTagID(tagID *int64) *int64 {
	if tagID == nil || *tagID == AllTagID {
		return nil
	}
	id := *tagID
	return &id
}
