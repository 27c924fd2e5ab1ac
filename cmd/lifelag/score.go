package main

import (
	"fmt"
	"io"

	"github.com/lifelag/lifelag/internal/services"
	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	answers := services.Answers{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one set of check-in answers (1-5 each) without storing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printScore(cmd.OutOrStdout(), answers)
		},
	}

	cmd.Flags().IntVar(&answers.Energy, "energy", 0, "energy answer (1-5)")
	cmd.Flags().IntVar(&answers.Sleep, "sleep", 0, "sleep answer (1-5)")
	cmd.Flags().IntVar(&answers.Structure, "structure", 0, "structure answer (1-5)")
	cmd.Flags().IntVar(&answers.Initiation, "initiation", 0, "initiation answer (1-5)")
	cmd.Flags().IntVar(&answers.Engagement, "engagement", 0, "engagement answer (1-5)")
	cmd.Flags().IntVar(&answers.Sustainability, "sustainability", 0, "sustainability answer (1-5)")
	return cmd
}

func printScore(out io.Writer, answers services.Answers) error {
	if err := services.ValidateAnswers(answers); err != nil {
		return fmt.Errorf("every answer must be between 1 and 5: %w", err)
	}

	score := services.CalculateLagScore(answers)
	category := services.DriftCategoryForScore(score)
	weakest := services.WeakestDimension(answers)
	tip := services.TipFor(weakest, category)

	fmt.Fprintf(out, "Lag score: %d\n", score)
	fmt.Fprintf(out, "Drift: %s\n", category)
	fmt.Fprintf(out, "Weakest dimension: %s\n", weakest)
	fmt.Fprintf(out, "Focus: %s\n", tip.Focus)
	fmt.Fprintf(out, "Constraint: %s\n", tip.Constraint)
	fmt.Fprintf(out, "Choice: %s\n", tip.Choice)
	return nil
}
