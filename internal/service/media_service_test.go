package service

import (
	"strings"
	"testing"
)

func TestExtractShortcodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain text without embeds", nil},
		{"single", "before [img:a1b2c] after", []string{"a1b2c"}},
		{"multiple", "[img:a1b2c] middle [img:zzzzz]", []string{"a1b2c", "zzzzz"}},
		{"duplicates collapse", "[img:a1b2c] and again [img:a1b2c]", []string{"a1b2c"}},
		{"wrong length ignored", "[img:abcd] [img:abcdef]", nil},
		{"upper case ignored", "[img:A1B2C]", nil},
		{"malformed ignored", "[img a1b2c] [image:a1b2c] img:a1b2c", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractShortcodes(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractShortcodes(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractShortcodes(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRandomShortcode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomShortcode()
		if err != nil {
			t.Fatalf("randomShortcode failed: %v", err)
		}
		if len(code) != shortcodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), shortcodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(shortcodeAlphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("fifty draws should not all collide")
	}
}
