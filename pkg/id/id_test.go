package id

import (
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestHex32(t *testing.T) {
	got := Hex32()
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestHex32_Unique(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := Hex32()
		if _, ok := seen[v]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, ext string
	}{
		{"photo.JPG", ".jpg"},
		{"degree certificate.pdf", ".pdf"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"../../etc/passwd.png", ".png"},
	}
	for _, tc := range tests {
		got := FileName(tc.in)
		if !strings.HasSuffix(got, tc.ext) {
			t.Fatalf("FileName(%q) = %q, want suffix %q", tc.in, got, tc.ext)
		}
		if base := strings.TrimSuffix(got, tc.ext); !reHex32.MatchString(base) {
			t.Fatalf("FileName(%q) base = %q, want hex32", tc.in, base)
		}
	}
}
