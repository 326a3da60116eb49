package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// TaskRepo persists care tasks in SQLite.
type TaskRepo struct{ db *sqlx.DB }

type taskRow struct {
	ID        string `db:"id"`
	AnimalID  string `db:"animal_id"`
	Type      string `db:"type"`
	DueDate   string `db:"due_date"`
	Notes     string `db:"notes"`
	Done      bool   `db:"done"`
	CreatedAt string `db:"created_at"`
}

// Create inserts a new task and returns its id (generates one if empty).
func (r *TaskRepo) Create(ctx domain.Context, t domain.Task) (string, error) {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.Create")
	defer span.End()
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO tasks (id, animal_id, type, due_date, notes, done, created_at) VALUES (?,?,?,?,?,?,?)`
	if _, err := r.db.ExecContext(ctx, q, id, t.AnimalID, string(t.Type), t.DueDate, t.Notes, boolInt(t.Done), formatTime(t.CreatedAt)); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("op=task.create: %w", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=task.create: %w", err)
	}
	return id, nil
}

// List loads tasks matching the filter in insertion order.
func (r *TaskRepo) List(ctx domain.Context, f domain.TaskFilter) ([]domain.Task, error) {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.List")
	defer span.End()
	var where []string
	var args []any
	if f.AnimalID != "" {
		where = append(where, "animal_id = ?")
		args = append(args, f.AnimalID)
	}
	if f.PendingOnly {
		where = append(where, "done = 0")
	}
	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY rowid"
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("op=task.list: %w", err)
	}
	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.task())
	}
	return out, nil
}

const taskColumns = `id, animal_id, type, due_date, notes, done, created_at`

func (r *TaskRepo) Get(ctx domain.Context, id string) (domain.Task, error) {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.Get")
	defer span.End()
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("op=task.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("op=task.get: %w", err)
	}
	return row.task(), nil
}

// Update rewrites the mutable columns of an existing task.
func (r *TaskRepo) Update(ctx domain.Context, t domain.Task) error {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.Update")
	defer span.End()
	q := `UPDATE tasks SET animal_id=?, type=?, due_date=?, notes=?, done=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, t.AnimalID, string(t.Type), t.DueDate, t.Notes, boolInt(t.Done), t.ID)
	if err != nil {
		return fmt.Errorf("op=task.update: %w", err)
	}
	return requireRow(res, "op=task.update")
}

func (r *TaskRepo) Delete(ctx domain.Context, id string) error {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.Delete")
	defer span.End()
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("op=task.delete: %w", err)
	}
	return requireRow(res, "op=task.delete")
}

func (r *TaskRepo) DeleteByAnimal(ctx domain.Context, animalID string) (int, error) {
	ctx, span := otel.Tracer("repo.sqlite.tasks").Start(ctx, "tasks.DeleteByAnimal")
	defer span.End()
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE animal_id = ?`, animalID)
	if err != nil {
		return 0, fmt.Errorf("op=task.delete_by_animal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("op=task.delete_by_animal: %w", err)
	}
	return int(n), nil
}

func (row taskRow) task() domain.Task {
	typ, ok := domain.ParseTaskType(row.Type)
	if !ok {
		typ = domain.TaskType(row.Type)
	}
	return domain.Task{
		ID:        row.ID,
		AnimalID:  row.AnimalID,
		Type:      typ,
		DueDate:   row.DueDate,
		Notes:     row.Notes,
		Done:      row.Done,
		CreatedAt: parseTime(row.CreatedAt),
	}
}
