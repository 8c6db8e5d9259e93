package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	cases := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{" on ", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv("TEST_BOOL_ENV", tc.value)
		if got := ParseBoolEnv("TEST_BOOL_ENV", tc.def); got != tc.expected {
			t.Errorf("value %q default %v: expected %v, got %v", tc.value, tc.def, tc.expected, got)
		}
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_STRING_ENV", "set")
	if got := GetEnvOrDefault("TEST_STRING_ENV", "fallback"); got != "set" {
		t.Errorf("expected %q, got %q", "set", got)
	}
	t.Setenv("TEST_STRING_ENV", "")
	if got := GetEnvOrDefault("TEST_STRING_ENV", "fallback"); got != "fallback" {
		t.Errorf("expected %q, got %q", "fallback", got)
	}
}
