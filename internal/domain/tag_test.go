package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTag(t *testing.T) {
	tag, err := NewTag("  DSA ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tag.Name != "DSA" {
		t.Errorf("Expected trimmed name, got %q", tag.Name)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "  ", ErrEmptyTagName},
		{"too long", strings.Repeat("t", MaxTagNameLength+1), ErrTagNameTooLong},
		{"sentinel", "All", ErrReservedTagName},
		{"sentinel any case", "all", ErrReservedTagName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTag(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAllTag(t *testing.T) {
	all := AllTag()
	if !all.IsAll() {
		t.Error("Expected AllTag to be the sentinel")
	}
	if (Tag{ID: 3, Name: "DSA"}).IsAll() {
		t.Error("Expected a real tag not to be the sentinel")
	}
	if !AnyTag().IsAll() || OnlyTag(3).IsAll() {
		t.Error("Unexpected TagFilter.IsAll result")
	}
}

func TestSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s, err := NewSession(1, now, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.IsExpired(now.Add(59 * time.Minute)) {
		t.Error("Expected session to be live before its expiry")
	}
	if !s.IsExpired(now.Add(time.Hour)) {
		t.Error("Expected session to be expired at its expiry")
	}

	if _, err := NewSession(0, now, time.Hour); !errors.Is(err, ErrEmptySessionUserID) {
		t.Errorf("Expected ErrEmptySessionUserID, got %v", err)
	}
	if _, err := NewSession(1, now, 0); !errors.Is(err, ErrInvalidSessionTTL) {
		t.Errorf("Expected ErrInvalidSessionTTL, got %v", err)
	}
}
