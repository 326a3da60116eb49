package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/pkg/textx"
)

// TaskService schedules care tasks and reports how close they are.
type TaskService struct {
	Tasks    domain.TaskRepository
	Animals  domain.AnimalRepository
	Adopters domain.AdopterRepository
	Now      func() time.Time
}

// NewTaskService constructs a TaskService using the wall clock.
func NewTaskService(t domain.TaskRepository, a domain.AnimalRepository, ad domain.AdopterRepository) TaskService {
	return TaskService{Tasks: t, Animals: a, Adopters: ad, Now: func() time.Time { return time.Now().UTC() }}
}

func (s TaskService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

// CountdownFor computes t's countdown against the service clock.
func (s TaskService) CountdownFor(t domain.Task) domain.Countdown {
	return domain.ComputeCountdown(t.DueDate, s.now())
}

// UpcomingTask is a pending task with its countdown.
type UpcomingTask struct {
	domain.Task
	AnimalName string           `json:"animal_name,omitempty"`
	Countdown  domain.Countdown `json:"countdown"`
}

// Schedule validates and stores a new task for an existing animal.
func (s TaskService) Schedule(ctx domain.Context, t domain.Task) (domain.Task, error) {
	t.AnimalID = strings.TrimSpace(t.AnimalID)
	if t.AnimalID == "" {
		return domain.Task{}, fmt.Errorf("%w: animal_id required", domain.ErrInvalidArgument)
	}
	typ, ok := domain.ParseTaskType(string(t.Type))
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: unknown task type %q", domain.ErrInvalidArgument, t.Type)
	}
	t.Type = typ
	due, err := domain.ParseDueDate(t.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD or DD/MM/YYYY", domain.ErrInvalidArgument)
	}
	t.DueDate = due.Format("2006-01-02")
	t.Notes = textx.SanitizeText(t.Notes)
	if _, err := s.Animals.Get(ctx, t.AnimalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Task{}, fmt.Errorf("%w: animal %s", domain.ErrNotFound, t.AnimalID)
		}
		return domain.Task{}, fmt.Errorf("op=task.schedule: %w", err)
	}
	t.CreatedAt = s.now()
	id, err := s.Tasks.Create(ctx, t)
	if err != nil {
		return domain.Task{}, fmt.Errorf("op=task.schedule: %w", err)
	}
	t.ID = id
	return t, nil
}

// TaskPatch is a partial task edit; nil fields keep the stored value.
type TaskPatch struct {
	AnimalID *string
	Type     *string
	DueDate  *string
	Notes    *string
	Done     *bool
}

// Task loads one task.
func (s TaskService) Task(ctx domain.Context, id string) (domain.Task, error) {
	return s.Tasks.Get(ctx, id)
}

// Update applies p with the same validation Schedule uses. Moving a task to
// another animal requires that animal to exist.
func (s TaskService) Update(ctx domain.Context, id string, p TaskPatch) (domain.Task, error) {
	t, err := s.Tasks.Get(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("op=task.update: %w", err)
	}
	if p.Type != nil {
		typ, ok := domain.ParseTaskType(*p.Type)
		if !ok {
			return domain.Task{}, fmt.Errorf("%w: unknown task type %q", domain.ErrInvalidArgument, *p.Type)
		}
		t.Type = typ
	}
	if p.DueDate != nil {
		due, err := domain.ParseDueDate(*p.DueDate)
		if err != nil {
			return domain.Task{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD or DD/MM/YYYY", domain.ErrInvalidArgument)
		}
		t.DueDate = due.Format("2006-01-02")
	}
	if p.Notes != nil {
		t.Notes = textx.SanitizeText(*p.Notes)
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.AnimalID != nil {
		animalID := strings.TrimSpace(*p.AnimalID)
		if animalID == "" {
			return domain.Task{}, fmt.Errorf("%w: animal_id required", domain.ErrInvalidArgument)
		}
		if animalID != t.AnimalID {
			if _, err := s.Animals.Get(ctx, animalID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.Task{}, fmt.Errorf("%w: animal %s", domain.ErrNotFound, animalID)
				}
				return domain.Task{}, fmt.Errorf("op=task.update: %w", err)
			}
			t.AnimalID = animalID
		}
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		return domain.Task{}, fmt.Errorf("op=task.update: %w", err)
	}
	return t, nil
}

// Complete marks a task done, which takes it out of Upcoming and the
// reminder sweep. Completing a done task is a no-op.
func (s TaskService) Complete(ctx domain.Context, id string) (domain.Task, error) {
	t, err := s.Tasks.Get(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("op=task.complete: %w", err)
	}
	if t.Done {
		return t, nil
	}
	t.Done = true
	if err := s.Tasks.Update(ctx, t); err != nil {
		return domain.Task{}, fmt.Errorf("op=task.complete: %w", err)
	}
	return t, nil
}

func (s TaskService) Delete(ctx domain.Context, id string) error {
	if err := s.Tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("op=task.delete: %w", err)
	}
	return nil
}

// Upcoming lists pending tasks, optionally for one animal, soonest first.
// Tasks with unreadable dates sort last.
func (s TaskService) Upcoming(ctx domain.Context, animalID string) ([]UpcomingTask, error) {
	tasks, err := s.Tasks.List(ctx, domain.TaskFilter{AnimalID: strings.TrimSpace(animalID), PendingOnly: true})
	if err != nil {
		return nil, fmt.Errorf("op=task.upcoming: %w", err)
	}
	names := s.animalNames(ctx)
	now := s.now()
	out := make([]UpcomingTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Done {
			continue
		}
		out = append(out, UpcomingTask{Task: t, AnimalName: names[t.AnimalID], Countdown: domain.ComputeCountdown(t.DueDate, now)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Countdown.Days < out[j].Countdown.Days })
	return out, nil
}

// DueWithin returns pending tasks that are overdue or due in at most
// horizonDays days.
func (s TaskService) DueWithin(ctx domain.Context, horizonDays int) ([]UpcomingTask, error) {
	all, err := s.Upcoming(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]UpcomingTask, 0, len(all))
	for _, t := range all {
		if t.Countdown.Status == domain.CountdownInvalid {
			continue
		}
		if t.Countdown.Days <= horizonDays {
			out = append(out, t)
		}
	}
	return out, nil
}

// animalNames is best effort; a failing lookup only loses display names.
func (s TaskService) animalNames(ctx domain.Context) map[string]string {
	names := map[string]string{}
	if s.Animals == nil {
		return names
	}
	animals, err := s.Animals.List(ctx)
	if err != nil {
		return names
	}
	for _, a := range animals {
		names[a.ID] = a.Name
	}
	return names
}
