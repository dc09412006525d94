package cmd

import (
	"github.com/huangsam/elimu/core"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/spf13/cobra"
)

// gradeCmd grades raw scores under the configured curriculum.
var gradeCmd = &cobra.Command{
	Use:   "grade <score>...",
	Short: "Grade one or more scores under a curriculum.",
	Long: `Grade each score under the selected curriculum and print the grade, points and remark.

Scores accept the forms found in school spreadsheets: plain numbers, percentages,
fractions and letter grades. Values outside 0-100 are clamped.

Examples:
  # KCSE 8-4-4 grades
  elimu grade 82 55 31

  # CBC rubric for an upper primary learner
  elimu grade 65 --curriculum cbc --level "Grade 6"

  # A-Level grades with CSV output
  elimu grade 85% 17/20 --curriculum british --level "Year 13" --output csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteGrade(cfg, args); err != nil {
			contract.LogFatal("Cannot grade scores", err)
		}
	},
}

// meanCmd computes a KCSE-style mean grade.
var meanCmd = &cobra.Command{
	Use:   "mean <subject:score>...",
	Short: "Compute the 8-4-4 mean grade of several subjects.",
	Long: `Grade each subject on the 8-4-4 scale and average their points into a mean grade.

Examples:
  elimu mean Math:78 English:64 Kiswahili:71 Biology:55`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteMean(cfg, args); err != nil {
			contract.LogFatal("Cannot compute mean grade", err)
		}
	},
}

// gpaCmd computes an American GPA.
var gpaCmd = &cobra.Command{
	Use:   "gpa <course:score>...",
	Short: "Compute the weighted and unweighted GPA of several courses.",
	Long: `Grade each course on the American scale and compute its credit-weighted GPA.
Courses whose names start with "AP" earn the AP weighting.

Examples:
  elimu gpa "AP Biology:93" History:85 Algebra:78 --level "Grade 11"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteGPA(cfg, args); err != nil {
			contract.LogFatal("Cannot compute GPA", err)
		}
	},
}

// ucasCmd computes UCAS tariff points for A-Levels.
var ucasCmd = &cobra.Command{
	Use:   "ucas <subject:score>...",
	Short: "Compute UCAS tariff points for A-Level results.",
	Long: `Grade each subject as an A-Level and total its UCAS tariff points.

Examples:
  elimu ucas Maths:92 Physics:85 Chemistry:72`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteUCAS(cfg, args); err != nil {
			contract.LogFatal("Cannot compute UCAS points", err)
		}
	},
}
