// Package mocks holds testify mocks for the domain ports.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// AnimalRepository mocks domain.AnimalRepository.
type AnimalRepository struct{ mock.Mock }

func (m *AnimalRepository) Create(ctx domain.Context, a domain.AnimalProfile) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func (m *AnimalRepository) Get(ctx domain.Context, id string) (domain.AnimalProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AnimalProfile), args.Error(1)
}

func (m *AnimalRepository) List(ctx domain.Context) ([]domain.AnimalProfile, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.AnimalProfile)
	return out, args.Error(1)
}

func (m *AnimalRepository) Update(ctx domain.Context, a domain.AnimalProfile) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AnimalRepository) Delete(ctx domain.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// AdopterRepository mocks domain.AdopterRepository.
type AdopterRepository struct{ mock.Mock }

func (m *AdopterRepository) Create(ctx domain.Context, a domain.AdopterProfile) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func (m *AdopterRepository) Get(ctx domain.Context, id string) (domain.AdopterProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AdopterProfile), args.Error(1)
}

func (m *AdopterRepository) List(ctx domain.Context) ([]domain.AdopterProfile, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.AdopterProfile)
	return out, args.Error(1)
}

// TaskRepository mocks domain.TaskRepository.
type TaskRepository struct{ mock.Mock }

func (m *TaskRepository) Create(ctx domain.Context, t domain.Task) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *TaskRepository) Get(ctx domain.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *TaskRepository) List(ctx domain.Context, f domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]domain.Task)
	return out, args.Error(1)
}

func (m *TaskRepository) Update(ctx domain.Context, t domain.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepository) Delete(ctx domain.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TaskRepository) DeleteByAnimal(ctx domain.Context, animalID string) (int, error) {
	args := m.Called(ctx, animalID)
	return args.Int(0), args.Error(1)
}

// ReminderPublisher mocks domain.ReminderPublisher.
type ReminderPublisher struct{ mock.Mock }

func (m *ReminderPublisher) PublishReminder(ctx domain.Context, r domain.TaskReminder) error {
	return m.Called(ctx, r).Error(0)
}

var (
	_ domain.AnimalRepository  = (*AnimalRepository)(nil)
	_ domain.AdopterRepository = (*AdopterRepository)(nil)
	_ domain.TaskRepository    = (*TaskRepository)(nil)
	_ domain.ReminderPublisher = (*ReminderPublisher)(nil)
)
