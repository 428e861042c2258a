package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/rcliao/task-planner/internal/model"
)

func fixNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Math Homework", true},
		{"A", true},
		{"", false},
		{" leading", false},
		{"trailing ", false},
		{"double  space", false},
		{"tab\t\there", false},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.want {
			t.Errorf("Title(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHasDuplicateWords(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"the the plan", true},
		{"Read read notes", true},
		{"is isn't", false},
		{"cat catalog", false},
		{"go, go", false},
		{"plan for the week", false},
	}
	for _, tt := range tests {
		if got := HasDuplicateWords(tt.in); got != tt.want {
			t.Errorf("HasDuplicateWords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimesInTitle(t *testing.T) {
	got := TimesInTitle("Call at 9:30 then 23:15, not 24:00")
	if len(got) != 2 || got[0] != "9:30" || got[1] != "23:15" {
		t.Errorf("got %v", got)
	}
}

func TestDueDate(t *testing.T) {
	fixNow(t, time.Date(2025, 10, 15, 13, 0, 0, 0, time.UTC))
	tests := []struct {
		in   string
		want bool
	}{
		{"2025-10-15", true},
		{"2025-12-31", true},
		{"2025-10-14", false},
		{"2025-02-30", false},
		{"2025-13-01", false},
		{"25-10-15", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := DueDate(tt.in); got != tt.want {
			t.Errorf("DueDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"1440", true},
		{"1441", false},
		{"0", false},
		{"007", false},
		{"-5", false},
		{"1.5", false},
	}
	for _, tt := range tests {
		if got := Duration(tt.in); got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"School", true},
		{"Self Care", true},
		{"self-care", true},
		{"a  b", false},
		{"tag1", false},
		{"-x", false},
		{"abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk", false},
	}
	for _, tt := range tests {
		if got := Tag(tt.in); got != tt.want {
			t.Errorf("Tag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForm(t *testing.T) {
	fixNow(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))

	res := Form(Input{Title: "Lab at 14:00", DueDate: "2025-10-20", Duration: "90", Tag: "School"})
	if !res.Valid() || res.Err() != nil {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "Time formats detected: 14:00" {
		t.Errorf("warnings = %v", res.Warnings)
	}

	res = Form(Input{Title: "the the", DueDate: "2020-01-01", Duration: "0", Tag: "x1"})
	if res.Valid() {
		t.Fatal("expected invalid")
	}
	for _, f := range []string{"title", "dueDate", "duration", "tag"} {
		if _, ok := res.Errors[f]; !ok {
			t.Errorf("missing error for %s", f)
		}
	}
	if res.Errors["title"] != msgDuplicate {
		t.Errorf("title error = %q", res.Errors["title"])
	}
	if !errors.Is(res.Err(), ErrInvalid) {
		t.Error("expected errors.Is ErrInvalid")
	}
}

func TestImportedTask(t *testing.T) {
	fixNow(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))

	ok := model.Task{ID: "x", Title: "Old task", Tag: "School", DueDate: "2020-01-01", Duration: 30}
	if err := ImportedTask(ok); err != nil {
		t.Errorf("past due dates should import: %v", err)
	}

	err := ImportedTask(model.Task{ID: "x", Title: "No tag", DueDate: "2020-01-01", Duration: 30})
	var fe Errors
	if !errors.As(err, &fe) || fe["tag"] == "" {
		t.Errorf("expected missing tag error, got %v", err)
	}

	bad := ok
	bad.Duration = 5000
	if err := ImportedTask(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected invalid duration, got %v", err)
	}
}

func TestChanges(t *testing.T) {
	fixNow(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))

	title := "New title"
	if res := Changes(Patch{Title: &title}); !res.Valid() {
		t.Errorf("expected valid, got %v", res.Errors)
	}

	due, dur := "2020-01-01", "0"
	res := Changes(Patch{DueDate: &due, Duration: &dur})
	if len(res.Errors) != 2 || res.Errors["dueDate"] == "" || res.Errors["duration"] == "" {
		t.Errorf("unexpected errors %v", res.Errors)
	}
	if _, ok := res.Errors["title"]; ok {
		t.Error("absent fields must not be checked")
	}
}
