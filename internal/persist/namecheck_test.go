package persist

import "testing"

func TestValidateNameCharset_PassesNonMS950Unchecked(t *testing.T) {
	if err := ValidateNameCharset("anything_goes", "UTF8"); err != nil {
		t.Fatalf("expected non-MS950 codepages to skip the check, got %v", err)
	}
}

func TestValidateNameCharset_AcceptsAsciiUnderMS950(t *testing.T) {
	if err := ValidateNameCharset("DragonSlayer", "MS950"); err != nil {
		t.Fatalf("expected ascii name to round-trip through MS950, got %v", err)
	}
}

func TestValidateNameCharset_RejectsUnencodableRunesUnderMS950(t *testing.T) {
	if err := ValidateNameCharset("กขฃ", "MS950"); err == nil {
		t.Fatalf("expected Thai script to fail MS950 encoding")
	}
}
