package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenerateInviteCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateInviteCode()
		if len(code) != inviteCodeLen {
			t.Fatalf("code %q has length %d, want %d", code, len(code), inviteCodeLen)
		}
		for _, ch := range code {
			if !strings.ContainsRune(inviteAlphabet, ch) {
				t.Fatalf("code %q contains %q, not in alphabet", code, ch)
			}
		}
	}
}

func TestInviteAlphabetExcludesLookAlikes(t *testing.T) {
	for _, ch := range "IO01" {
		if strings.ContainsRune(inviteAlphabet, ch) {
			t.Errorf("alphabet contains ambiguous character %q", ch)
		}
	}
	if len(inviteAlphabet) != 32 {
		t.Errorf("alphabet has %d characters, want 32", len(inviteAlphabet))
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	cases := map[string]string{
		"  abc2de ":  "ABC2DE",
		"ABC2DE":     "ABC2DE",
		"\tqrs7tu\n": "QRS7TU",
	}
	for raw, want := range cases {
		if got := NormalizeInviteCode(raw); got != want {
			t.Errorf("NormalizeInviteCode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormatInviteCode(t *testing.T) {
	if got := FormatInviteCode("ABC2DE"); got != "ABC-2DE" {
		t.Errorf("FormatInviteCode = %q, want ABC-2DE", got)
	}
	// Anything off-length passes through untouched.
	if got := FormatInviteCode("AB"); got != "AB" {
		t.Errorf("FormatInviteCode(short) = %q, want AB", got)
	}
}

func TestTruncateRelationshipNote(t *testing.T) {
	short := "my brother"
	if got := TruncateRelationshipNote("  " + short + "  "); got != short {
		t.Errorf("short note: got %q, want %q", got, short)
	}

	long := strings.Repeat("a", 300)
	got := TruncateRelationshipNote(long)
	if utf8.RuneCountInString(got) != 158 {
		t.Errorf("truncated note has %d runes, want 157 + ellipsis", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated note %q does not end with an ellipsis", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 157)) {
		t.Error("truncated note should keep the first 157 characters")
	}
}
