package store

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rcliao/task-planner/internal/model"
)

// NoTopTag is reported when there are no tasks.
const NoTopTag = "None"

// Stats holds dashboard statistics.
type Stats struct {
	TotalTasks    int        `json:"totalTasks"`
	TotalDuration int        `json:"totalDuration"`
	TopTag        string     `json:"topTag"`
	WeekTasks     int        `json:"weekTasks"`
	DailyUsage    []DayUsage `json:"dailyUsage"`
	TodayDuration int        `json:"todayDuration"`
	DailyCap      int        `json:"dailyCap"`
	CapPercentage float64    `json:"capPercentage"`
	IsOverCap     bool       `json:"isOverCap"`
	Tags          []TagCount `json:"tags"`
	Units         model.Unit `json:"durationUnits"`
}

// DayUsage counts tasks due on one calendar day.
type DayUsage struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TagCount holds per-tag counts.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats returns dashboard statistics computed at the current time.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	tasks, err := s.List(ctx, ListParams{})
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(tasks, settings, timeNow()), nil
}

// ComputeStats derives dashboard statistics from tasks as of now.
func ComputeStats(tasks []model.Task, settings model.Settings, now time.Time) *Stats {
	st := &Stats{
		TotalTasks: len(tasks),
		TopTag:     NoTopTag,
		DailyCap:   settings.DailyCap,
		Units:      settings.DurationUnits,
	}

	today := now.Format(model.DateLayout)
	weekAgo := now.AddDate(0, 0, -7).Format(model.DateLayout)

	counts := map[string]int{}
	for _, t := range tasks {
		st.TotalDuration += t.Duration
		counts[t.Tag]++
		if t.DueDate >= weekAgo {
			st.WeekTasks++
		}
		if t.DueDate == today {
			st.TodayDuration += t.Duration
		}
	}

	for tag, n := range counts {
		st.Tags = append(st.Tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Tag < st.Tags[j].Tag
	})
	if len(st.Tags) > 0 {
		st.TopTag = st.Tags[0].Tag
	}

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(model.DateLayout)
		n := 0
		for _, t := range tasks {
			if t.DueDate == day {
				n++
			}
		}
		st.DailyUsage = append(st.DailyUsage, DayUsage{Date: day, Count: n})
	}

	if settings.DailyCap > 0 {
		pct := float64(st.TodayDuration) / float64(settings.DailyCap) * 100
		st.CapPercentage = math.Min(pct, 100)
	}
	st.IsOverCap = st.TodayDuration > settings.DailyCap

	return st
}
