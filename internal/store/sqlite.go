package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/task-planner/internal/model"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
	logger  *slog.Logger
}

// NewSQLiteStore opens or creates a SQLite database at the given path. logger may be nil.
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(timeNow()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		tag         TEXT NOT NULL,
		due_date    TEXT NOT NULL,
		duration    INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);
	CREATE INDEX IF NOT EXISTS idx_tasks_tag ON tasks(tag COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS settings (
		id              INTEGER PRIMARY KEY CHECK (id = 1),
		daily_cap       INTEGER NOT NULL,
		duration_units  TEXT NOT NULL,
		version         TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const taskColumns = `id, title, tag, due_date, duration, created_at, updated_at`

func (s *SQLiteStore) Add(ctx context.Context, p AddParams) (*model.Task, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" || p.Duration <= 0 {
		return nil, fmt.Errorf("add: %w: title and positive duration are required", ErrInvalid)
	}

	now := timeNow()
	t := &model.Task{
		ID:        s.newID(),
		Title:     title,
		Tag:       p.Tag,
		DueDate:   p.DueDate,
		Duration:  p.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := insertTask(ctx, s.db, *t); err != nil {
		return nil, err
	}
	s.logger.Debug("task added", "id", t.ID)
	return t, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertTask(ctx context.Context, db execer, t model.Task) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Tag, t.DueDate, t.Duration,
		t.CreatedAt.UTC().Format(time.RFC3339Nano), t.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Task, error) {
	prefix := strings.ToUpper(strings.TrimSpace(id))
	if prefix == "" {
		return nil, fmt.Errorf("get: %w: empty id", ErrInvalid)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE upper(substr(id, 1, ?)) = ? ORDER BY id LIMIT 2`,
		len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(tasks) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &tasks[0], nil
	}
	// An exact ID always wins over a longer ID sharing it as prefix.
	if strings.EqualFold(tasks[0].ID, prefix) {
		return &tasks[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

func (s *SQLiteStore) Update(ctx context.Context, id string, p UpdateParams) (*model.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Tag != nil {
		t.Tag = *p.Tag
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if t.Title == "" || t.Duration <= 0 {
		return nil, fmt.Errorf("update: %w: title and positive duration are required", ErrInvalid)
	}
	t.UpdatedAt = timeNow()

	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, tag = ?, due_date = ?, duration = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Tag, t.DueDate, t.Duration, t.UpdatedAt.Format(time.RFC3339Nano), t.ID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	s.logger.Debug("task updated", "id", t.ID)
	return t, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.logger.Debug("task deleted", "id", t.ID)
	return nil
}

// DefaultSort is the list order used when none is requested.
const DefaultSort = "date-desc"

var sortColumns = map[string]string{
	"date":     "due_date",
	"title":    "title COLLATE NOCASE",
	"duration": "duration",
}

// orderBy turns "field-direction" into an ORDER BY clause.
func orderBy(sortBy string) (string, error) {
	if sortBy == "" {
		sortBy = DefaultSort
	}
	field, dir, _ := strings.Cut(sortBy, "-")
	col, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", ErrInvalid, field)
	}
	switch dir {
	case "", "desc":
		dir = "DESC"
	case "asc":
		dir = "ASC"
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", ErrInvalid, dir)
	}
	return fmt.Sprintf("%s %s, created_at %s, id %s", col, dir, dir, dir), nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Task, error) {
	order, err := orderBy(p.Sort)
	if err != nil {
		return nil, err
	}

	var where []string
	var args []interface{}
	if p.Tag != "" {
		where = append(where, "tag = ? COLLATE NOCASE")
		args = append(args, p.Tag)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY ` + order
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) Settings(ctx context.Context) (model.Settings, error) {
	var st model.Settings
	var units string
	err := s.db.QueryRowContext(ctx,
		`SELECT daily_cap, duration_units, version FROM settings WHERE id = 1`).
		Scan(&st.DailyCap, &units, &st.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return st, err
	}
	st.DurationUnits = model.Unit(units)
	return st, nil
}

func (s *SQLiteStore) UpdateSettings(ctx context.Context, p SettingsPatch) (model.Settings, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return st, err
	}
	if p.DailyCap != nil {
		if *p.DailyCap < 0 {
			return st, fmt.Errorf("%w: daily cap must not be negative", ErrInvalid)
		}
		st.DailyCap = *p.DailyCap
	}
	if p.DurationUnits != nil {
		if !model.ValidUnits[*p.DurationUnits] {
			return st, fmt.Errorf("%w: unknown duration unit %q", ErrInvalid, *p.DurationUnits)
		}
		st.DurationUnits = *p.DurationUnits
	}
	if err := saveSettings(ctx, s.db, st); err != nil {
		return st, err
	}
	return st, nil
}

func saveSettings(ctx context.Context, db execer, st model.Settings) error {
	if st.Version == "" {
		st.Version = model.SettingsVersion
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (id, daily_cap, duration_units, version) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET daily_cap = excluded.daily_cap,
		   duration_units = excluded.duration_units, version = excluded.version`,
		st.DailyCap, string(st.DurationUnits), st.Version)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Clear removes every task and resets settings to defaults.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("all data cleared")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (model.Task, error) {
	var t model.Task
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Title, &t.Tag, &t.DueDate, &t.Duration, &createdAt, &updatedAt)
	if err != nil {
		return t, err
	}

	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return t, nil
}
