package store

import (
	"context"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/search"
)

// SearchParams holds parameters for searching tasks.
type SearchParams struct {
	Query         string
	CaseSensitive bool
	Sort          string
	Limit         int

	// Render produces the highlighted fields. Nil means HTML with <mark> delimiters.
	Render func(model.Task, *search.Pattern) search.HighlightedTask
}

// SearchResult wraps a task with its highlighted fields.
type SearchResult struct {
	model.Task
	Highlight search.HighlightedTask `json:"highlight"`
}

// SearchResponse is the outcome of one query.
type SearchResponse struct {
	Status  search.Status  `json:"status"`
	Results []SearchResult `json:"results"`
}

// Search applies the query to sess, then lists tasks and keeps those the session selects.
func (s *SQLiteStore) Search(ctx context.Context, sess *search.Session, p SearchParams) (*SearchResponse, error) {
	tasks, err := s.List(ctx, ListParams{Sort: p.Sort})
	if err != nil {
		return nil, err
	}

	sess.UpdateFromInput(p.Query, p.CaseSensitive)
	matched := search.Filter(tasks, sess)
	if p.Limit > 0 && len(matched) > p.Limit {
		matched = matched[:p.Limit]
	}

	render := p.Render
	if render == nil {
		render = search.HighlightTaskHTML
	}

	resp := &SearchResponse{Status: sess.Status(), Results: []SearchResult{}}
	for _, t := range matched {
		resp.Results = append(resp.Results, SearchResult{
			Task:      t,
			Highlight: render(t, sess.Pattern()),
		})
	}
	return resp, nil
}
