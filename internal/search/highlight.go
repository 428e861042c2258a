package search

import (
	"html"
	"strconv"
	"strings"

	"github.com/rcliao/task-planner/internal/model"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

var markStripper = strings.NewReplacer(markOpen, "", markClose, "")

func mark(s string) string { return markOpen + s + markClose }

// HighlightFunc wraps every non-overlapping, non-empty match of p in text with wrap,
// scanning left to right. A nil pattern returns text unchanged.
func HighlightFunc(text string, p *Pattern, wrap func(string) string) string {
	return highlightSegments(text, p, func(s string) string { return s }, wrap)
}

// Highlight wraps matches of p in <mark> delimiters. text must already be HTML-escaped;
// escaping after highlighting would escape the delimiters too.
func Highlight(text string, p *Pattern) string {
	return HighlightFunc(text, p, mark)
}

// HighlightHTML escapes raw for HTML and marks matches of p. Matching runs on the raw text
// so a match never splits an entity.
func HighlightHTML(raw string, p *Pattern) string {
	if p == nil {
		return html.EscapeString(raw)
	}
	return highlightSegments(raw, p, html.EscapeString, func(s string) string {
		return mark(html.EscapeString(s))
	})
}

// RemoveHighlighting strips the delimiters inserted by Highlight and HighlightHTML.
func RemoveHighlighting(marked string) string {
	return markStripper.Replace(marked)
}

func highlightSegments(text string, p *Pattern, plain, wrap func(string) string) string {
	if p == nil || text == "" {
		return text
	}
	locs := p.re.FindAllStringIndex(text, -1)
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(plain(text[last:loc[0]]))
		b.WriteString(wrap(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(plain(text[last:]))
	return b.String()
}

// HighlightedTask holds the rendered fields of a task.
type HighlightedTask struct {
	Title    string `json:"title"`
	Tag      string `json:"tag"`
	DueDate  string `json:"dueDate"`
	Duration string `json:"duration"`
}

// HighlightTask renders each field of t with wrap applied to matches of p. Fields the
// pattern does not apply to are rendered plain.
func HighlightTask(t model.Task, p *Pattern, wrap func(string) string) HighlightedTask {
	field := func(f Field, s string) string {
		if p == nil || !p.AppliesTo(f) {
			return s
		}
		return HighlightFunc(s, p, wrap)
	}
	return HighlightedTask{
		Title:    field(FieldTitle, t.Title),
		Tag:      field(FieldTag, t.Tag),
		DueDate:  field(FieldDueDate, t.DueDate),
		Duration: field(FieldDuration, strconv.Itoa(t.Duration)),
	}
}

// HighlightTaskHTML is HighlightTask for HTML output: every field is escaped and matches
// are wrapped in <mark>.
func HighlightTaskHTML(t model.Task, p *Pattern) HighlightedTask {
	field := func(f Field, s string) string {
		if p == nil || !p.AppliesTo(f) {
			return html.EscapeString(s)
		}
		return HighlightHTML(s, p)
	}
	return HighlightedTask{
		Title:    field(FieldTitle, t.Title),
		Tag:      field(FieldTag, t.Tag),
		DueDate:  field(FieldDueDate, t.DueDate),
		Duration: field(FieldDuration, strconv.Itoa(t.Duration)),
	}
}
