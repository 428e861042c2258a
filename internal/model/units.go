package model

import (
	"math"
	"strconv"
)

// Unit is a duration display unit.
type Unit string

const (
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
)

// ValidUnits are the allowed duration display units.
var ValidUnits = map[Unit]bool{
	Minutes: true,
	Hours:   true,
}

// ConvertDuration converts v between units. Hours are rounded to one decimal place,
// minutes to a whole number. Unknown unit pairs return v unchanged.
func ConvertDuration(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	switch {
	case from == Minutes && to == Hours:
		return math.Round(v/60*10) / 10
	case from == Hours && to == Minutes:
		return math.Round(v * 60)
	}
	return v
}

// FormatDuration renders a minute count in the given display unit.
func FormatDuration(minutes int, unit Unit) string {
	if unit == Hours {
		h := ConvertDuration(float64(minutes), Minutes, Hours)
		return strconv.FormatFloat(h, 'f', 1, 64) + " h"
	}
	return strconv.Itoa(minutes) + " min"
}
