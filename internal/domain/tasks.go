package domain

import (
	"strings"
	"time"
)

// TaskType enumerates care task kinds.
type TaskType string

const (
	TaskBath        TaskType = "bath"
	TaskGrooming    TaskType = "grooming"
	TaskVaccination TaskType = "vaccination"
	TaskCheckup     TaskType = "checkup"
	TaskTraining    TaskType = "training"
	TaskNeutering   TaskType = "neutering"
)

var taskTypeAliases = map[string]TaskType{
	"bath":        TaskBath,
	"banho":       TaskBath,
	"grooming":    TaskGrooming,
	"tosa":        TaskGrooming,
	"vaccination": TaskVaccination,
	"vacinação":   TaskVaccination,
	"vacinacao":   TaskVaccination,
	"checkup":     TaskCheckup,
	"check-up":    TaskCheckup,
	"training":    TaskTraining,
	"treinamento": TaskTraining,
	"neutering":   TaskNeutering,
	"castração":   TaskNeutering,
	"castracao":   TaskNeutering,
}

// ParseTaskType accepts English and Portuguese task names, case-insensitive.
func ParseTaskType(s string) (TaskType, bool) {
	t, ok := taskTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Task is a scheduled care action for one animal.
// DueDate keeps the stored text; use ParseDueDate to interpret it.
type Task struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	Type      TaskType  `json:"type"`
	DueDate   string    `json:"due_date"`
	Notes     string    `json:"notes,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFilter narrows TaskRepository.List. Zero value lists everything.
type TaskFilter struct {
	AnimalID    string
	PendingOnly bool
}

// TaskReminder is the event published for a task that is due soon.
type TaskReminder struct {
	TaskID     string          `json:"task_id"`
	AnimalID   string          `json:"animal_id"`
	AnimalName string          `json:"animal_name,omitempty"`
	Type       TaskType        `json:"type"`
	DueDate    string          `json:"due_date"`
	DaysLeft   int             `json:"days_left"`
	Status     CountdownStatus `json:"status"`
	IssuedAt   time.Time       `json:"issued_at"`
}

// CountdownStatus classifies how close a task is to its due date.
type CountdownStatus string

const (
	CountdownOverdue   CountdownStatus = "overdue"
	CountdownToday     CountdownStatus = "today"
	CountdownUrgent    CountdownStatus = "urgent"
	CountdownUpcoming  CountdownStatus = "upcoming"
	CountdownScheduled CountdownStatus = "scheduled"
	CountdownInvalid   CountdownStatus = "invalid"
)

// UnknownDays is the sort key used for tasks whose date cannot be read.
const UnknownDays = 999

// Countdown is the time left until a task is due.
type Countdown struct {
	Days   int             `json:"days"`
	Status CountdownStatus `json:"status"`
	Urgent bool            `json:"urgent"`
}

var dueDateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDueDate accepts YYYY-MM-DD or DD/MM/YYYY.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ComputeCountdown returns the whole days between now's calendar date and due.
// Overdue tasks have negative Days.
func ComputeCountdown(due string, now time.Time) Countdown {
	d, err := ParseDueDate(due)
	if err != nil {
		return Countdown{Days: UnknownDays, Status: CountdownInvalid}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(today).Hours() / 24)
	c := Countdown{Days: days}
	switch {
	case days < 0:
		c.Status, c.Urgent = CountdownOverdue, true
	case days == 0:
		c.Status, c.Urgent = CountdownToday, true
	case days <= 7:
		c.Status, c.Urgent = CountdownUrgent, true
	case days <= 30:
		c.Status = CountdownUpcoming
	default:
		c.Status = CountdownScheduled
	}
	return c
}
