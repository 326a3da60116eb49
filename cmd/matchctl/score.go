package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/matching"
)

type scoreOutput struct {
	AnimalID       string               `json:"animal_id"`
	AdopterID      string               `json:"adopter_id"`
	Score          float64              `json:"score"`
	Level          string               `json:"level"`
	Label          string               `json:"label"`
	Weights        matching.Weights     `json:"weights"`
	TraitAlignment float64              `json:"trait_alignment"`
	Traits         matching.TraitScores `json:"traits"`
	Housing        float64              `json:"housing"`
	Routine        float64              `json:"routine"`
	Preferences    float64              `json:"preferences"`
}

func newScoreOutput(res matching.Result) scoreOutput {
	return scoreOutput{
		AnimalID:       res.Animal.ID,
		AdopterID:      res.Adopter.ID,
		Score:          res.Score,
		Level:          res.Level.Name,
		Label:          res.Level.String(),
		Weights:        matching.WeightsFor(res.Adopter),
		TraitAlignment: res.TraitAlignment,
		Traits:         res.Traits,
		Housing:        res.Housing,
		Routine:        res.Routine,
		Preferences:    res.Preferences,
	}
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score <animal-id> <adopter-id>",
		Short: "Score one animal against one adopter",
		Long:  "Computes the compatibility score of a single animal and adopter pair and prints the weighted breakdown as JSON.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			res, err := eng.matches.ComputeCompatibility(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to compute compatibility: %w", err)
			}
			if res == nil {
				return fmt.Errorf("%w: animal %q or adopter %q", domain.ErrNotFound, args[0], args[1])
			}
			return writeJSON(cmd.OutOrStdout(), newScoreOutput(*res))
		},
	}
}
