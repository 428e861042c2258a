package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/validate"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportAll returns a snapshot of every task and the current settings.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*model.Export, error) {
	tasks, err := s.List(ctx, ListParams{})
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Export{
		Tasks:      tasks,
		Settings:   &settings,
		ExportedAt: timeNow(),
		Version:    model.SettingsVersion,
	}, nil
}

// Import replaces all tasks, and the settings when the export carries them, in one
// transaction. Every task is validated first; nothing is written if any task is invalid.
func (s *SQLiteStore) Import(ctx context.Context, e *model.Export) (int, error) {
	for i, t := range e.Tasks {
		if err := validate.ImportedTask(t); err != nil {
			return 0, fmt.Errorf("task %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return 0, fmt.Errorf("clear tasks: %w", err)
	}

	now := timeNow()
	for _, t := range e.Tasks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		if err := insertTask(ctx, tx, t); err != nil {
			return 0, err
		}
	}

	if e.Settings != nil {
		if err := saveSettings(ctx, tx, *e.Settings); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.logger.Info("import complete", "tasks", len(e.Tasks), "settings", e.Settings != nil)
	return len(e.Tasks), nil
}

// EncodeExport writes e in the given format.
func EncodeExport(w io.Writer, e *model.Export, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unknown export format %q", ErrInvalid, format)
}

// DecodeExport parses an export in JSON or YAML. JSON is detected by a leading '{'.
func DecodeExport(data []byte) (*model.Export, error) {
	var e model.Export
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty import", ErrInvalid)
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return &e, nil
	}
	if err := yaml.Unmarshal(trimmed, &e); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &e, nil
}
