package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

type tasksOutput struct {
	Count int                    `json:"count"`
	Tasks []usecase.UpcomingTask `json:"tasks"`
}

func newTasksCmd(opts *rootOptions) *cobra.Command {
	var (
		animalID string
		days     int
	)
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List pending care tasks with their countdowns",
		Long:  "Lists pending care tasks soonest first. With --days only overdue tasks and tasks due within that many days are shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			var list []usecase.UpcomingTask
			if days >= 0 {
				list, err = eng.tasks.DueWithin(ctx, days)
				if err == nil && animalID != "" {
					list = filterByAnimal(list, animalID)
				}
			} else {
				list, err = eng.tasks.Upcoming(ctx, animalID)
			}
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			if list == nil {
				list = []usecase.UpcomingTask{}
			}
			return writeJSON(cmd.OutOrStdout(), tasksOutput{Count: len(list), Tasks: list})
		},
	}
	cmd.Flags().StringVar(&animalID, "animal", "", "Only tasks for this animal")
	cmd.Flags().IntVar(&days, "days", -1, "Only tasks due within this many days (negative lists all)")
	cmd.AddCommand(newTaskDoneCmd(opts), newTaskDeleteCmd(opts))
	return cmd
}

func newTaskDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a care task as completed so it stops producing reminders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			t, err := eng.tasks.Complete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), usecase.UpcomingTask{Task: t, Countdown: eng.tasks.CountdownFor(t)})
		},
	}
}

func newTaskDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a care task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			if err := eng.tasks.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "deleted": true})
		},
	}
}

func filterByAnimal(in []usecase.UpcomingTask, animalID string) []usecase.UpcomingTask {
	out := make([]usecase.UpcomingTask, 0, len(in))
	for _, t := range in {
		if t.AnimalID == animalID {
			out = append(out, t)
		}
	}
	return out
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print shelter dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			st, err := eng.tasks.DashboardStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), st)
		},
	}
}
