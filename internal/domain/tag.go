package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// The "All" tag is a filter sentinel meaning "no tag restriction". It is
// never persisted.
const (
	AllTagName       = "All"
	AllTagID   int64 = 0
)

// MaxTagNameLength is the longest tag name accepted, in characters.
const MaxTagNameLength = 32

// DefaultSeedTags is the tag set created at startup when absent.
var DefaultSeedTags = []string{"DSA", "TSP", "EYC", AllTagName}

// Common validation errors for Tag. Each wraps ErrValidation.
var (
	ErrEmptyTagName    = fmt.Errorf("%w: tag name cannot be empty", ErrValidation)
	ErrTagNameTooLong  = fmt.Errorf("%w: tag name must be at most 32 characters long", ErrValidation)
	ErrReservedTagName = fmt.Errorf("%w: tag name is reserved", ErrValidation)
)

// Tag classifies tasks. Tags are global and not owned by any user.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTag creates a Tag with a trimmed name.
func NewTag(name string) (*Tag, error) {
	tag := &Tag{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "", ErrEmptyTagName)
	}
	if utf8.RuneCountInString(t.Name) > MaxTagNameLength {
		return NewValidationError("name", "", ErrTagNameTooLong)
	}
	if IsAllTagName(t.Name) {
		return NewValidationError("name", "", ErrReservedTagName)
	}
	return nil
}

// IsAll reports whether t is the sentinel tag.
func (t Tag) IsAll() bool {
	return t.ID == AllTagID && IsAllTagName(t.Name)
}

// AllTag returns the sentinel tag as it appears in tag listings.
func AllTag() Tag {
	return Tag{ID: AllTagID, Name: AllTagName}
}

// IsAllTagName reports whether name refers to the sentinel tag.
func IsAllTagName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), AllTagName)
}
