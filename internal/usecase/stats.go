package usecase

import (
	"fmt"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// DashboardStats summarises shelter activity.
type DashboardStats struct {
	TotalAnimals     int `json:"total_animals"`
	AvailableAnimals int `json:"available_animals"`
	InTreatment      int `json:"in_treatment"`
	TotalAdopters    int `json:"total_adopters"`
	PendingTasks     int `json:"pending_tasks"`
	UrgentTasks      int `json:"urgent_tasks"`
}

// DashboardStats counts animals, adopters and pending tasks. Urgent tasks
// are overdue, due today or due within a week.
func (s TaskService) DashboardStats(ctx domain.Context) (DashboardStats, error) {
	var st DashboardStats
	animals, err := s.Animals.List(ctx)
	if err != nil {
		return st, fmt.Errorf("op=stats.animals: %w", err)
	}
	st.TotalAnimals = len(animals)
	for _, a := range animals {
		switch a.Status {
		case domain.StatusAvailable:
			st.AvailableAnimals++
		case domain.StatusInTreatment:
			st.InTreatment++
		}
	}
	if s.Adopters != nil {
		adopters, err := s.Adopters.List(ctx)
		if err != nil {
			return st, fmt.Errorf("op=stats.adopters: %w", err)
		}
		st.TotalAdopters = len(adopters)
	}
	pending, err := s.Upcoming(ctx, "")
	if err != nil {
		return st, err
	}
	st.PendingTasks = len(pending)
	for _, t := range pending {
		if t.Countdown.Urgent {
			st.UrgentTasks++
		}
	}
	return st, nil
}
