package model

import (
	"testing"
)

func TestFileTypeFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", FileTypeImage},
		{"image/jpeg", FileTypeImage},
		{"image/svg+xml", FileTypeImage},
		{"application/pdf", FileTypePDF},
		{"text/csv", FileTypeCSV},
		{"application/vnd.ms-excel", FileTypeCSV},
		{"application/zip", FileTypeOther},
		{"", FileTypeOther},
	}

	for _, tt := range tests {
		got := FileTypeFromContentType(tt.contentType)
		if got != tt.want {
			t.Errorf("FileTypeFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestUserScopeChecks(t *testing.T) {
	user := &User{
		TokenIdentifier: "https://id.test|user_1",
		OrgIDs:          OrgIDs{"org_a"},
	}

	if !user.IsOrgMember("org_a") {
		t.Error("expected org_a membership")
	}
	if user.IsOrgMember("org_b") {
		t.Error("unexpected org_b membership")
	}
	if !user.IsPersonalScope("user_1") {
		t.Error("expected personal scope access")
	}
	if user.IsPersonalScope("") {
		t.Error("empty scope must never be personal")
	}
}

func TestOrgIDsRoundTrip(t *testing.T) {
	orig := OrgIDs{"org_a", "org_b"}

	v, err := orig.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	var got OrgIDs
	err = got.Scan(v)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(got) != 2 || got[0] != "org_a" || got[1] != "org_b" {
		t.Fatalf("round trip = %v", got)
	}

	var empty OrgIDs
	err = empty.Scan("[]")
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty round trip = %v", empty)
	}
}
