package search

import (
	"strconv"
	"strings"

	"github.com/rcliao/task-planner/internal/model"
)

// SearchableText joins the fields a general pattern is evaluated against.
func SearchableText(t model.Task) string {
	return strings.Join([]string{
		t.Title,
		t.Tag,
		t.DueDate,
		strconv.Itoa(t.Duration),
	}, " ")
}

// Matches reports whether p selects t. A nil pattern selects everything.
func Matches(t model.Task, p *Pattern) bool {
	if p == nil {
		return true
	}
	if p.scope == ScopeTag {
		return p.MatchString(t.Tag)
	}
	return p.MatchString(SearchableText(t))
}

// FilterPattern returns the tasks p selects, in input order. With a nil pattern the input
// slice itself is returned.
func FilterPattern(tasks []model.Task, p *Pattern) []model.Task {
	if p == nil {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, p) {
			out = append(out, t)
		}
	}
	return out
}

// Filter applies the session's active pattern to tasks.
func Filter(tasks []model.Task, s *Session) []model.Task {
	if s == nil {
		return tasks
	}
	return FilterPattern(tasks, s.Pattern())
}
