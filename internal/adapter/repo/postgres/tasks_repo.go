package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// TaskRepo persists care tasks in PostgreSQL.
type TaskRepo struct{ Pool PgxPool }

// NewTaskRepo constructs a TaskRepo with the given pool.
func NewTaskRepo(p PgxPool) *TaskRepo { return &TaskRepo{Pool: p} }

// Create inserts a new task and returns its id (generates one if empty).
func (r *TaskRepo) Create(ctx domain.Context, t domain.Task) (string, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Create")
	defer span.End()
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	q := `INSERT INTO tasks (id, animal_id, type, due_date, notes, done, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.Pool.Exec(ctx, q, id, t.AnimalID, string(t.Type), t.DueDate, t.Notes, t.Done, created); err != nil {
		return "", fmt.Errorf("op=task.create: %w", mapErr(err))
	}
	return id, nil
}

// List loads tasks matching the filter ordered by creation.
func (r *TaskRepo) List(ctx domain.Context, f domain.TaskFilter) ([]domain.Task, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.List")
	defer span.End()
	var where []string
	var args []any
	if f.AnimalID != "" {
		args = append(args, f.AnimalID)
		where = append(where, fmt.Sprintf("animal_id=$%d", len(args)))
	}
	if f.PendingOnly {
		where = append(where, "NOT done")
	}
	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=task.list: %w", err)
	}
	defer rows.Close()
	out := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("op=task.list: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=task.list: %w", err)
	}
	return out, nil
}

const taskColumns = `id, animal_id, type, due_date, notes, done, created_at`

func (r *TaskRepo) Get(ctx domain.Context, id string) (domain.Task, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Get")
	defer span.End()
	t, err := scanTask(r.Pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1`, id))
	if err != nil {
		return domain.Task{}, fmt.Errorf("op=task.get: %w", mapErr(err))
	}
	return t, nil
}

// Update rewrites the mutable columns of an existing task.
func (r *TaskRepo) Update(ctx domain.Context, t domain.Task) error {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Update")
	defer span.End()
	q := `UPDATE tasks SET animal_id=$2, type=$3, due_date=$4, notes=$5, done=$6 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, t.ID, t.AnimalID, string(t.Type), t.DueDate, t.Notes, t.Done)
	if err != nil {
		return fmt.Errorf("op=task.update: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=task.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Delete")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("op=task.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=task.delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *TaskRepo) DeleteByAnimal(ctx domain.Context, animalID string) (int, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.DeleteByAnimal")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE animal_id=$1`, animalID)
	if err != nil {
		return 0, fmt.Errorf("op=task.delete_by_animal: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	var typ string
	if err := row.Scan(&t.ID, &t.AnimalID, &typ, &t.DueDate, &t.Notes, &t.Done, &t.CreatedAt); err != nil {
		return domain.Task{}, err
	}
	if parsed, ok := domain.ParseTaskType(typ); ok {
		t.Type = parsed
	} else {
		t.Type = domain.TaskType(typ)
	}
	return t, nil
}
