package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type matchRow struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Level string  `json:"level"`
	Label string  `json:"label"`
}

type matchesOutput struct {
	Direction string     `json:"direction"`
	ID        string     `json:"id"`
	MinScore  float64    `json:"min_score"`
	Count     int        `json:"count"`
	Matches   []matchRow `json:"matches"`
}

func newMatchesCmd(opts *rootOptions) *cobra.Command {
	var minScore float64
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List ranked matches for an adopter or an animal",
	}
	cmd.PersistentFlags().Float64Var(&minScore, "min-score", 50, "Minimum compatibility score to include")

	adopter := &cobra.Command{
		Use:   "adopter <adopter-id>",
		Short: "Available animals for one adopter, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			found, err := eng.matches.FindMatchesForAdopter(ctx, args[0], minScore)
			if err != nil {
				return fmt.Errorf("failed to find matches: %w", err)
			}
			out := matchesOutput{Direction: "adopter", ID: args[0], MinScore: minScore, Matches: make([]matchRow, 0, len(found))}
			for _, m := range found {
				out.Matches = append(out.Matches, matchRow{
					ID: m.Animal.ID, Name: m.Animal.Name,
					Score: m.Result.Score, Level: m.Result.Level.Name, Label: m.Result.Level.String(),
				})
			}
			out.Count = len(out.Matches)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	animal := &cobra.Command{
		Use:   "animal <animal-id>",
		Short: "Adopters for one animal, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			found, err := eng.matches.FindMatchesForAnimal(ctx, args[0], minScore)
			if err != nil {
				return fmt.Errorf("failed to find matches: %w", err)
			}
			out := matchesOutput{Direction: "animal", ID: args[0], MinScore: minScore, Matches: make([]matchRow, 0, len(found))}
			for _, m := range found {
				out.Matches = append(out.Matches, matchRow{
					ID: m.Adopter.ID, Name: m.Adopter.Name,
					Score: m.Result.Score, Level: m.Result.Level.Name, Label: m.Result.Level.String(),
				})
			}
			out.Count = len(out.Matches)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.AddCommand(adopter, animal)
	return cmd
}
