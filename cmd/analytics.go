package cmd

import (
	"github.com/huangsam/elimu/core"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// predictCmd forecasts performance from a score series or a stored student.
var predictCmd = &cobra.Command{
	Use:   "predict [score]...",
	Short: "Predict the next score and term outcome from a score history.",
	Long: `Generate short-term, long-term and subject predictions.

Scores given as arguments are read oldest first. With --student, the stored
assessment history of that student is used instead.

Examples:
  # Predict from a series of scores
  elimu predict 50 55 60 65 70 72

  # Predict for a stored student
  elimu predict --student STU-2024-0001`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if viper.GetString("student") == "" {
			return nil
		}
		return openRoster()
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecutePredict(rootCtx, cfg, store, viper.GetString("student"), args); err != nil {
			contract.LogFatal("Cannot generate predictions", err)
		}
	},
}

// insightsCmd prints the insight report of a stored student.
var insightsCmd = &cobra.Command{
	Use:   "insights <elimuid>",
	Short: "Show strengths, weaknesses, risks and recommendations for a student.",
	Long: `Analyze the stored assessments and attendance of a student.

Examples:
  elimu insights STU-2024-0001 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteInsights(rootCtx, cfg, store, args[0]); err != nil {
			contract.LogFatal("Cannot generate insights", err)
		}
	},
}

// reportCmd prints the report card of a stored student.
var reportCmd = &cobra.Command{
	Use:   "report <elimuid>",
	Short: "Generate a curriculum report card for a student.",
	Long: `Build a report card from the stored assessments of a student.

The card follows the selected curriculum: mean grades for 8-4-4, competencies and
values for CBC, key stages and UCAS points for British and GPA for American.

Examples:
  elimu report STU-2024-0001 --level "Form 4"
  elimu report STU-2024-0001 --curriculum cbc --level "Grade 6" --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteReport(rootCtx, cfg, store, args[0]); err != nil {
			contract.LogFatal("Cannot generate report card", err)
		}
	},
}
