package utils

import "testing"

func TestIsEmailValid(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "UPPER@EXAMPLE.COM"}
	for _, e := range valid {
		if !IsEmailValid(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	invalid := []string{"", "plain", "@example.com", "a@b", "a b@example.com", "a@@example.com"}
	for _, e := range invalid {
		if IsEmailValid(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestIsPasswordValid(t *testing.T) {
	valid := []string{"Sup3r-secret!", "eightch!", "longer password with spaces!"}
	for _, p := range valid {
		if !IsPasswordValid(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "short!", "nospecialchars1", "Ab1defg"}
	for _, p := range invalid {
		if IsPasswordValid(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestIsPseudoValid(t *testing.T) {
	valid := []string{"abc", "alice_q", "user-42", "aB3_-x"}
	for _, p := range valid {
		if !IsPseudoValid(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "ab", "has space", "emoji🎬name", "way_too_long_pseudo_over_thirty_chars"}
	for _, p := range invalid {
		if IsPseudoValid(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
