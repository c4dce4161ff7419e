package utils

import (
	"strings"
	"testing"
)

func TestGenerateGroupCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateGroupCode()
		if len(code) != GroupCodeLength {
			t.Fatalf("expected code of length %d, got %q", GroupCodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("code %q contains invalid character %q", code, c)
			}
		}
	}
}

func TestNormalizeGroupCode(t *testing.T) {
	if got := NormalizeGroupCode("  ab2cde "); got != "AB2CDE" {
		t.Fatalf("expected AB2CDE, got %q", got)
	}
}
