package utils

import (
	"testing"
)

func TestStringToUint(t *testing.T) {
	cases := map[string]uint{
		"42":  42,
		"0":   0,
		"":    0,
		"abc": 0,
		"-5":  0,
	}
	for in, want := range cases {
		if got := StringToUint(in); got != want {
			t.Errorf("StringToUint(%q) = %d, want %d", in, got, want)
		}
	}
}
