package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

func newAnimalsCmd(opts *rootOptions) *cobra.Command {
	var availableOnly bool
	cmd := &cobra.Command{
		Use:   "animals",
		Short: "List animal profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			all, err := eng.catalog.ListAnimals(ctx)
			if err != nil {
				return fmt.Errorf("failed to list animals: %w", err)
			}
			out := make([]domain.AnimalProfile, 0, len(all))
			for _, a := range all {
				if availableOnly && !a.Available() {
					continue
				}
				out = append(out, a)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only animals that can be matched")
	cmd.AddCommand(newAnimalStatusCmd(opts), newAnimalDeleteCmd(opts))
	return cmd
}

func newAnimalStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set-status <animal-id> <status>",
		Short:   "Move an animal between available, in-process and in-treatment",
		Example: "matchctl animals set-status rex in-process",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			status := domain.ParseStatus(args[1])
			a, err := eng.catalog.UpdateAnimal(ctx, args[0], usecase.AnimalPatch{Status: &status})
			if err != nil {
				return fmt.Errorf("failed to update animal: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), a)
		},
	}
}

func newAnimalDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <animal-id>",
		Short: "Delete an animal together with its care tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			if err := eng.catalog.DeleteAnimal(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete animal: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "deleted": true})
		},
	}
}

func newAdoptersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "adopters",
		Short: "List adopter profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			all, err := eng.catalog.ListAdopters(ctx)
			if err != nil {
				return fmt.Errorf("failed to list adopters: %w", err)
			}
			if all == nil {
				all = []domain.AdopterProfile{}
			}
			return writeJSON(cmd.OutOrStdout(), all)
		},
	}
}
