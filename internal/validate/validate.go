// Package validate checks task input before it reaches the store.
package validate

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/task-planner/internal/model"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid task")

const (
	MaxDuration  = 1440 // one day, in minutes
	MaxTagLength = 50
)

const (
	msgTitle      = "Title cannot have leading/trailing spaces or double spaces"
	msgDuplicate  = "Title contains duplicate words"
	msgDate       = "Please enter a valid date in YYYY-MM-DD format"
	msgDuration   = "Duration must be a positive whole number"
	msgTag        = "Tag can only contain letters, spaces, and hyphens"
	msgMissingFmt = "missing required field: "
)

var (
	titleRe    = regexp.MustCompile(`^\S(?:.*\S)?$`)
	spaceRunRe = regexp.MustCompile(`\s{2,}`)
	wordRe     = regexp.MustCompile(`\w+`)
	timeRe     = regexp.MustCompile(`\b([01]?[0-9]|2[0-3]):([0-5][0-9])\b`)
	dateRe     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	durationRe = regexp.MustCompile(`^(0|[1-9]\d*)$`)
	tagRe      = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)

	timeNow = time.Now
)

// Errors maps a field name to its message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool { return target == ErrInvalid }

// Input is raw form input; every field is text as typed.
type Input struct {
	Title    string
	DueDate  string
	Duration string
	Tag      string
}

// Result is the outcome of validating an Input.
type Result struct {
	Errors   Errors
	Warnings []string
}

// Valid reports whether no field failed.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Err returns the field errors, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// Form validates user input for a new or edited task.
func Form(in Input) Result {
	return check(in, true)
}

func check(in Input, requireFuture bool) Result {
	res := Result{Errors: Errors{}}
	res.title(in.Title)
	res.dueDate(in.DueDate, requireFuture)
	res.duration(in.Duration)
	res.tag(in.Tag)
	return res
}

// Patch is a partial edit; nil fields are not checked.
type Patch struct {
	Title    *string
	DueDate  *string
	Duration *string
	Tag      *string
}

// Changes validates only the fields present in p.
func Changes(p Patch) Result {
	res := Result{Errors: Errors{}}
	if p.Title != nil {
		res.title(*p.Title)
	}
	if p.DueDate != nil {
		res.dueDate(*p.DueDate, true)
	}
	if p.Duration != nil {
		res.duration(*p.Duration)
	}
	if p.Tag != nil {
		res.tag(*p.Tag)
	}
	return res
}

func (r *Result) title(s string) {
	if !Title(s) {
		r.Errors["title"] = msgTitle
	}
	if HasDuplicateWords(s) {
		r.Errors["title"] = msgDuplicate
	}
	if times := TimesInTitle(s); len(times) > 0 {
		r.Warnings = append(r.Warnings, "Time formats detected: "+strings.Join(times, ", "))
	}
}

func (r *Result) dueDate(s string, requireFuture bool) {
	if !date(s, requireFuture) {
		r.Errors["dueDate"] = msgDate
	}
}

func (r *Result) duration(s string) {
	if !Duration(s) {
		r.Errors["duration"] = msgDuration
	}
}

func (r *Result) tag(s string) {
	if !Tag(s) {
		r.Errors["tag"] = msgTag
	}
}

// Title rejects empty titles, surrounding whitespace, and runs of whitespace.
func Title(s string) bool {
	return titleRe.MatchString(s) && !spaceRunRe.MatchString(s)
}

// HasDuplicateWords reports an immediately repeated word, ignoring case ("the the").
func HasDuplicateWords(s string) bool {
	locs := wordRe.FindAllStringIndex(s, -1)
	for i := 1; i < len(locs); i++ {
		prev, cur := locs[i-1], locs[i]
		gap := s[prev[1]:cur[0]]
		if strings.TrimSpace(gap) != "" {
			continue
		}
		if strings.EqualFold(s[prev[0]:prev[1]], s[cur[0]:cur[1]]) {
			return true
		}
	}
	return false
}

// TimesInTitle returns HH:MM occurrences; these warrant a warning, not an error.
func TimesInTitle(s string) []string {
	return timeRe.FindAllString(s, -1)
}

// DueDate accepts a real YYYY-MM-DD calendar date that is not before today.
func DueDate(s string) bool {
	return date(s, true)
}

func date(s string, requireFuture bool) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return false
	}
	if !requireFuture {
		return true
	}
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// Duration accepts whole minutes from 1 to MaxDuration.
func Duration(s string) bool {
	if !durationRe.MatchString(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n <= MaxDuration
}

// Tag accepts letters separated by single spaces or hyphens.
func Tag(s string) bool {
	return tagRe.MatchString(s) && len(s) <= MaxTagLength
}

// ImportedTask checks a task read from an export. Past due dates are accepted.
func ImportedTask(t model.Task) error {
	missing := Errors{}
	if t.ID == "" {
		missing["id"] = msgMissingFmt + "id"
	}
	if t.Title == "" {
		missing["title"] = msgMissingFmt + "title"
	}
	if t.DueDate == "" {
		missing["dueDate"] = msgMissingFmt + "dueDate"
	}
	if t.Duration == 0 {
		missing["duration"] = msgMissingFmt + "duration"
	}
	if t.Tag == "" {
		missing["tag"] = msgMissingFmt + "tag"
	}
	if len(missing) > 0 {
		return missing
	}
	return check(Input{
		Title:    t.Title,
		DueDate:  t.DueDate,
		Duration: strconv.Itoa(t.Duration),
		Tag:      t.Tag,
	}, false).Err()
}
