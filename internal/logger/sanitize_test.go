package logger

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"empty", "", 100, ""},
		{"plain", "/api/v1/tasks", 100, "/api/v1/tasks"},
		{"strips control characters", "a\x00b\x1bc", 100, "abc"},
		{"keeps whitespace", "a b\tc", 100, "a b\tc"},
		{"invalid utf8 dropped", "ok\xffend", 100, "okend"},
		{"zero max uses default", "x", 0, "x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeString(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeStringTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 50)
	got := SanitizeString(long, 10)
	if got != strings.Repeat("a", 10)+"..." {
		t.Errorf("Expected truncated string with ellipsis, got %q", got)
	}
}

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	long := "/" + strings.Repeat("p", MaxPathLength*2)
	got := SanitizePath(long)
	if len(got) != MaxPathLength+3 {
		t.Errorf("Expected path truncated to %d+ellipsis, got length %d", MaxPathLength, len(got))
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError(nil); got != "" {
		t.Errorf("Expected empty string for nil error, got %q", got)
	}
	if got := SanitizeError(errors.New("boom\x00")); got != "boom" {
		t.Errorf("Expected sanitized message, got %q", got)
	}
}
