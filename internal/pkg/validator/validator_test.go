package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-04-30"); !ok {
		t.Error("IsValidDate(\"2025-04-30\") = false, want true")
	}
	for _, bad := range []string{"2025-13-01", "30-04-2025", "2025/04/30", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	for _, good := range []string{"08:00", "23:59", "14:30:45"} {
		if !IsValidClockTime(good) {
			t.Errorf("IsValidClockTime(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"24:00", "08:60", "0800", ""} {
		if IsValidClockTime(bad) {
			t.Errorf("IsValidClockTime(%q) = true, want false", bad)
		}
	}
}
