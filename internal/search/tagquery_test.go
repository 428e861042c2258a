package search

import "testing"

func TestDetectTag(t *testing.T) {
	tests := []struct {
		in   string
		tag  string
		want bool
	}{
		{"@tag:school", "school", true},
		{"  @tag:School_2  ", "School_2", true},
		{"@TAG:gym", "gym", true},
		{"@tag:", "", false},
		{"@tag:self care", "", false},
		{"@tag:self-care", "", false},
		{"find @tag:school", "", false},
		{"@tag:school now", "", false},
		{"tag:school", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		tag, ok := DetectTag(tt.in)
		if ok != tt.want || tag != tt.tag {
			t.Errorf("DetectTag(%q) = %q, %v; want %q, %v", tt.in, tag, ok, tt.tag, tt.want)
		}
	}
}

func TestTagPattern(t *testing.T) {
	p := TagPattern("school")
	if p.Scope() != ScopeTag {
		t.Fatal("tag pattern should be tag scoped")
	}
	if p.CaseSensitive() {
		t.Error("tag pattern must be case-insensitive")
	}
	for _, s := range []string{"school", "School", "SCHOOL"} {
		if !p.MatchString(s) {
			t.Errorf("expected match on %q", s)
		}
	}
	for _, s := range []string{"schools", "high school", ""} {
		if p.MatchString(s) {
			t.Errorf("unexpected match on %q", s)
		}
	}
	if p.AppliesTo(FieldTitle) || !p.AppliesTo(FieldTag) {
		t.Error("tag pattern should apply only to the tag field")
	}
}
