package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// ReminderService turns tasks that are due soon into published reminders.
type ReminderService struct {
	Tasks       TaskService
	Publisher   domain.ReminderPublisher
	HorizonDays int
}

// NewReminderService constructs a ReminderService.
func NewReminderService(tasks TaskService, p domain.ReminderPublisher, horizonDays int) ReminderService {
	return ReminderService{Tasks: tasks, Publisher: p, HorizonDays: horizonDays}
}

// DispatchResult counts the outcome of one sweep.
type DispatchResult struct {
	Published int
	Failed    int
}

// Dispatch publishes a reminder for every pending task due within the
// horizon. Publishing continues past individual failures; the first failure
// is returned alongside the counts.
func (s ReminderService) Dispatch(ctx domain.Context) (DispatchResult, error) {
	var res DispatchResult
	due, err := s.Tasks.DueWithin(ctx, s.HorizonDays)
	if err != nil {
		return res, fmt.Errorf("op=reminder.dispatch: %w", err)
	}
	var firstErr error
	issued := s.Tasks.now()
	for _, t := range due {
		r := domain.TaskReminder{
			TaskID:     t.ID,
			AnimalID:   t.AnimalID,
			AnimalName: t.AnimalName,
			Type:       t.Type,
			DueDate:    t.DueDate,
			DaysLeft:   t.Countdown.Days,
			Status:     t.Countdown.Status,
			IssuedAt:   issued.Truncate(time.Second),
		}
		if err := s.Publisher.PublishReminder(ctx, r); err != nil {
			res.Failed++
			slog.Warn("reminder publish failed", slog.String("task_id", t.ID), slog.Any("error", err))
			if firstErr == nil {
				firstErr = fmt.Errorf("op=reminder.publish: %w", err)
			}
			continue
		}
		res.Published++
	}
	return res, firstErr
}
