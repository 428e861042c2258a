// Package store provides the task storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/task-planner/internal/model"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("ambiguous task id")
	ErrInvalid   = errors.New("invalid parameters")
)

// AddParams holds parameters for creating a task.
type AddParams struct {
	Title    string
	Tag      string
	DueDate  string
	Duration int
}

// UpdateParams holds a partial task update. Nil fields are left unchanged.
type UpdateParams struct {
	Title    *string
	Tag      *string
	DueDate  *string
	Duration *int
}

// ListParams holds parameters for listing tasks.
type ListParams struct {
	Sort  string // field-direction, e.g. "date-desc"
	Tag   string // exact tag, case-insensitive
	Limit int    // 0 means no limit
}

// SettingsPatch holds a partial settings update.
type SettingsPatch struct {
	DailyCap      *int
	DurationUnits *model.Unit
}

// Store defines the task storage interface.
type Store interface {
	// Add creates a task and returns it with its generated ID.
	Add(ctx context.Context, p AddParams) (*model.Task, error)

	// Get retrieves a task by full ID or unique ID prefix.
	Get(ctx context.Context, id string) (*model.Task, error)

	// Update applies a partial update and returns the updated task.
	Update(ctx context.Context, id string, p UpdateParams) (*model.Task, error)

	// Delete removes a task permanently.
	Delete(ctx context.Context, id string) error

	// List lists tasks in the requested order.
	List(ctx context.Context, p ListParams) ([]model.Task, error)

	// Settings returns the stored settings, or defaults.
	Settings(ctx context.Context) (model.Settings, error)

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, p SettingsPatch) (model.Settings, error)

	// Close closes the store.
	Close() error
}
