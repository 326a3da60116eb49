package main

import (
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

type tagsOutput struct {
	Personality domain.TraitVector `json:"personality"`
	Tags        []string           `json:"tags"`
	Difficult   bool               `json:"difficult"`
}

// newTagsCmd derives tags from trait flags; it never touches the store.
func newTagsCmd() *cobra.Command {
	v := domain.NeutralTraits()
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Derive personality tags from trait values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := v.Clamped()
			tags := domain.DeriveTags(p)
			return writeJSON(cmd.OutOrStdout(), tagsOutput{
				Personality: p,
				Tags:        tags,
				Difficult:   domain.HasDifficultTag(tags),
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&v.Playful, "playful", domain.NeutralTrait, "Playful trait, 0-100")
	f.IntVar(&v.Affectionate, "affectionate", domain.NeutralTrait, "Affectionate trait, 0-100")
	f.IntVar(&v.Energetic, "energetic", domain.NeutralTrait, "Energetic trait, 0-100")
	f.IntVar(&v.Brave, "brave", domain.NeutralTrait, "Brave trait, 0-100")
	f.IntVar(&v.Obedient, "obedient", domain.NeutralTrait, "Obedient trait, 0-100")
	f.IntVar(&v.Sociable, "sociable", domain.NeutralTrait, "Sociable trait, 0-100")
	return cmd
}
