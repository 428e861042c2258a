package model

import "testing"

func TestConvertDuration(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		from, to Unit
		want     float64
	}{
		{"same unit", 90, Minutes, Minutes, 90},
		{"minutes to hours", 90, Minutes, Hours, 1.5},
		{"minutes to hours rounds", 100, Minutes, Hours, 1.7},
		{"hours to minutes", 1.5, Hours, Minutes, 90},
		{"hours to minutes rounds", 0.33, Hours, Minutes, 20},
		{"unknown pair", 42, Unit("days"), Minutes, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertDuration(tt.v, tt.from, tt.to); got != tt.want {
				t.Errorf("ConvertDuration(%v, %s, %s) = %v, want %v", tt.v, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(90, Minutes); got != "90 min" {
		t.Errorf("got %q", got)
	}
	if got := FormatDuration(90, Hours); got != "1.5 h" {
		t.Errorf("got %q", got)
	}
}

func TestTaskDue(t *testing.T) {
	d, ok := Task{DueDate: "2025-03-01"}.Due()
	if !ok || d.Day() != 1 || d.Month() != 3 {
		t.Fatalf("unexpected due %v ok=%v", d, ok)
	}
	if _, ok := (Task{DueDate: "03/01/2025"}).Due(); ok {
		t.Fatal("expected invalid due date")
	}
}
