// Package model defines the core planner data types.
package model

import "time"

// DateLayout is the calendar-date rendering used for due dates everywhere.
const DateLayout = "2006-01-02"

// Task is a planned unit of work.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Tag       string    `json:"tag" yaml:"tag"`
	DueDate   string    `json:"dueDate" yaml:"dueDate"`
	Duration  int       `json:"duration" yaml:"duration"` // minutes
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Due parses DueDate. ok is false when the stored value is not a calendar date.
func (t Task) Due() (due time.Time, ok bool) {
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Settings holds the user-adjustable planner settings.
type Settings struct {
	DailyCap      int    `json:"dailyCap" yaml:"dailyCap"` // minutes
	DurationUnits Unit   `json:"durationUnits" yaml:"durationUnits"`
	Version       string `json:"version" yaml:"version"`
}

// SettingsVersion is written into fresh settings and exports.
const SettingsVersion = "1.0"

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		DailyCap:      480,
		DurationUnits: Minutes,
		Version:       SettingsVersion,
	}
}

// Export is the portable snapshot of all planner data.
type Export struct {
	Tasks      []Task    `json:"tasks" yaml:"tasks"`
	Settings   *Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	Version    string    `json:"version" yaml:"version"`
}
