// Package memory provides an in-process store for tests, local runs and the
// seed-only deployment mode. Records keep insertion order.
package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// Store holds animals, adopters and tasks behind one lock.
type Store struct {
	mu       sync.RWMutex
	animals  []domain.AnimalProfile
	adopters []domain.AdopterProfile
	tasks    []domain.Task
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// AnimalRepo exposes the store as a domain.AnimalRepository.
type AnimalRepo struct{ s *Store }

// AdopterRepo exposes the store as a domain.AdopterRepository.
type AdopterRepo struct{ s *Store }

// TaskRepo exposes the store as a domain.TaskRepository.
type TaskRepo struct{ s *Store }

func (s *Store) Animals() *AnimalRepo   { return &AnimalRepo{s: s} }
func (s *Store) Adopters() *AdopterRepo { return &AdopterRepo{s: s} }
func (s *Store) Tasks() *TaskRepo       { return &TaskRepo{s: s} }

// Create stores the animal; a duplicate id is a conflict.
func (r *AnimalRepo) Create(_ domain.Context, a domain.AnimalProfile) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	for _, x := range r.s.animals {
		if x.ID == a.ID {
			return "", fmt.Errorf("op=animal.create: %w", domain.ErrConflict)
		}
	}
	r.s.animals = append(r.s.animals, clonedAnimal(a))
	return a.ID, nil
}

func (r *AnimalRepo) Get(_ domain.Context, id string) (domain.AnimalProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.animals {
		if a.ID == id {
			return clonedAnimal(a), nil
		}
	}
	return domain.AnimalProfile{}, fmt.Errorf("op=animal.get: %w", domain.ErrNotFound)
}

func (r *AnimalRepo) List(_ domain.Context) ([]domain.AnimalProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.AnimalProfile, 0, len(r.s.animals))
	for _, a := range r.s.animals {
		out = append(out, clonedAnimal(a))
	}
	return out, nil
}

// Update replaces the animal with the same id.
func (r *AnimalRepo) Update(_ domain.Context, a domain.AnimalProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.animals {
		if x.ID == a.ID {
			r.s.animals[i] = clonedAnimal(a)
			return nil
		}
	}
	return fmt.Errorf("op=animal.update: %w", domain.ErrNotFound)
}

func (r *AnimalRepo) Delete(_ domain.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.animals {
		if x.ID == id {
			r.s.animals = append(r.s.animals[:i], r.s.animals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("op=animal.delete: %w", domain.ErrNotFound)
}

func (r *AdopterRepo) Create(_ domain.Context, a domain.AdopterProfile) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	for _, x := range r.s.adopters {
		if x.ID == a.ID {
			return "", fmt.Errorf("op=adopter.create: %w", domain.ErrConflict)
		}
	}
	r.s.adopters = append(r.s.adopters, clonedAdopter(a))
	return a.ID, nil
}

func (r *AdopterRepo) Get(_ domain.Context, id string) (domain.AdopterProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.adopters {
		if a.ID == id {
			return clonedAdopter(a), nil
		}
	}
	return domain.AdopterProfile{}, fmt.Errorf("op=adopter.get: %w", domain.ErrNotFound)
}

func (r *AdopterRepo) List(_ domain.Context) ([]domain.AdopterProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.AdopterProfile, 0, len(r.s.adopters))
	for _, a := range r.s.adopters {
		out = append(out, clonedAdopter(a))
	}
	return out, nil
}

func (r *TaskRepo) Create(_ domain.Context, t domain.Task) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	for _, x := range r.s.tasks {
		if x.ID == t.ID {
			return "", fmt.Errorf("op=task.create: %w", domain.ErrConflict)
		}
	}
	r.s.tasks = append(r.s.tasks, t)
	return t.ID, nil
}

func (r *TaskRepo) Get(_ domain.Context, id string) (domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("op=task.get: %w", domain.ErrNotFound)
}

func (r *TaskRepo) List(_ domain.Context, f domain.TaskFilter) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Task{}
	for _, t := range r.s.tasks {
		if f.AnimalID != "" && t.AnimalID != f.AnimalID {
			continue
		}
		if f.PendingOnly && t.Done {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TaskRepo) Update(_ domain.Context, t domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.tasks {
		if x.ID == t.ID {
			r.s.tasks[i] = t
			return nil
		}
	}
	return fmt.Errorf("op=task.update: %w", domain.ErrNotFound)
}

func (r *TaskRepo) Delete(_ domain.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.tasks {
		if x.ID == id {
			r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("op=task.delete: %w", domain.ErrNotFound)
}

func (r *TaskRepo) DeleteByAnimal(_ domain.Context, animalID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.tasks[:0]
	for _, t := range r.s.tasks {
		if t.AnimalID != animalID {
			kept = append(kept, t)
		}
	}
	n := len(r.s.tasks) - len(kept)
	r.s.tasks = kept
	return n, nil
}

// Callers get copies so that mutating a returned profile never leaks back.
func clonedAnimal(a domain.AnimalProfile) domain.AnimalProfile {
	a.Tags = append([]string{}, a.Tags...)
	return a
}

func clonedAdopter(a domain.AdopterProfile) domain.AdopterProfile {
	a.IdealTags = append([]string{}, a.IdealTags...)
	return a
}
