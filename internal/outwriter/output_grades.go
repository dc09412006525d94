package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/internal/parquet"
	"github.com/huangsam/elimu/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var gradesCSVHeader = []string{
	"rank",
	"system",
	"subject",
	"level",
	"score",
	"grade",
	"points",
	"label",
	"remark",
	"band_min",
	"band_max",
	"code",
	"key_stage",
	"ucas_points",
	"gpa",
	"weighted_gpa",
}

// WriteGradeResults outputs graded scores in the configured format.
func WriteGradeResults(results []schema.GradeResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return formatWriters{
		json:   results,
		header: gradesCSVHeader,
		rows: func(w *csv.Writer) error {
			return writeCSVResultsForGrades(w, results, fmtFloat)
		},
		table: func(w io.Writer) error {
			return writeGradesTable(w, results, cfg, fmtFloat)
		},
		parquet: func(path string) error {
			return parquet.WriteGradesParquet(parquet.ConvertGradeResults(results), path)
		},
	}.write(cfg, "grades")
}

// writeGradesTable generates and writes the human-readable grades table.
func writeGradesTable(w io.Writer, results []schema.GradeResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"#", "Subject", "Score", "Grade", "Points", "Label"}
	switch cfg.Curriculum {
	case schema.CBCSystem:
		headers = append(headers, "Code")
	case schema.BritishSystem:
		headers = append(headers, "Key Stage", "UCAS")
	case schema.AmericanSystem:
		headers = append(headers, "GPA", "Weighted")
	}
	headers = append(headers, "Remark")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	remarkWidth := GetMaxTableTextWidth(cfg, 10*len(headers))
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			orDash(r.Subject),
			fmtFloat(r.Score),
			r.Grade,
			fmtFloat(r.Points),
			label(r.Score),
		}
		switch cfg.Curriculum {
		case schema.CBCSystem:
			row = append(row, r.Code)
		case schema.BritishSystem:
			row = append(row, r.KeyStage, formatUCAS(r))
		case schema.AmericanSystem:
			row = append(row, fmtFloat(r.UnweightedGPA), fmtFloat(r.WeightedGPA))
		}
		row = append(row, contract.TruncateText(r.Remark, remarkWidth))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Graded %d scores with the %s curriculum\n", len(results), cfg.Curriculum)
	return err
}

// writeCSVResultsForGrades writes one CSV record per graded score.
func writeCSVResultsForGrades(w *csv.Writer, results []schema.GradeResult, fmtFloat func(float64) string) error {
	for i, r := range results {
		rec := []string{
			strconv.Itoa(i + 1),
			string(r.System),
			r.Subject,
			r.Level,
			fmtFloat(r.Score),
			r.Grade,
			fmtFloat(r.Points),
			contract.GetPlainLabel(r.Score),
			r.Remark,
			fmtFloat(r.BandMin),
			fmtFloat(r.BandMax),
			r.Code,
			r.KeyStage,
			strconv.Itoa(r.UCASPoints),
			fmtFloat(r.UnweightedGPA),
			fmtFloat(r.WeightedGPA),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func formatUCAS(r schema.GradeResult) string {
	if r.Qualification == "" {
		return "-"
	}
	return strconv.Itoa(r.UCASPoints)
}

// meanOutput is the JSON shape of a mean-grade result.
type meanOutput struct {
	Mean   schema.MeanGrade     `json:"mean"`
	Grades []schema.GradeResult `json:"grades"`
}

// WriteMeanGrade outputs a KCSE-style mean grade with its inputs.
func WriteMeanGrade(mean schema.MeanGrade, grades []schema.GradeResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return formatWriters{
		json:   meanOutput{Mean: mean, Grades: grades},
		header: []string{"mean_points", "mean_grade", "total_points", "subject_count", "classification"},
		rows: func(w *csv.Writer) error {
			return w.Write([]string{
				fmtFloat(mean.MeanPoints),
				mean.MeanGrade,
				fmtFloat(mean.TotalPoints),
				fmt.Sprintf(intFmt, mean.SubjectCount),
				mean.Classification,
			})
		},
		table: func(w io.Writer) error {
			if err := writeGradesTable(w, grades, cfg, fmtFloat); err != nil {
				return err
			}
			return writeKeyValueTable(w, heading(cfg, "🎓", "Mean Grade"), [][]string{
				{"Mean Points", fmtFloat(mean.MeanPoints)},
				{"Mean Grade", mean.MeanGrade},
				{"Total Points", fmtFloat(mean.TotalPoints)},
				{"Subjects", fmt.Sprintf(intFmt, mean.SubjectCount)},
				{"Classification", mean.Classification},
			})
		},
	}.write(cfg, "mean grade")
}

// gpaOutput is the JSON shape of a GPA result.
type gpaOutput struct {
	GPA    schema.GPASummary    `json:"gpa"`
	Grades []schema.GradeResult `json:"grades"`
}

// WriteGPA outputs a credit-weighted GPA with its inputs.
func WriteGPA(summary schema.GPASummary, grades []schema.GradeResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(2)
	return formatWriters{
		json:   gpaOutput{GPA: summary, Grades: grades},
		header: []string{"unweighted_gpa", "weighted_gpa", "total_credits", "counted", "skipped"},
		rows: func(w *csv.Writer) error {
			return w.Write([]string{
				fmtFloat(summary.UnweightedGPA),
				fmtFloat(summary.WeightedGPA),
				fmtFloat(summary.TotalCredits),
				fmt.Sprintf(intFmt, summary.Counted),
				fmt.Sprintf(intFmt, summary.Skipped),
			})
		},
		table: func(w io.Writer) error {
			if err := writeGradesTable(w, grades, cfg, fmtFloat); err != nil {
				return err
			}
			return writeKeyValueTable(w, heading(cfg, "🎓", "GPA"), [][]string{
				{"Unweighted GPA", fmtFloat(summary.UnweightedGPA)},
				{"Weighted GPA", fmtFloat(summary.WeightedGPA)},
				{"Total Credits", fmtFloat(summary.TotalCredits)},
				{"Counted", fmt.Sprintf(intFmt, summary.Counted)},
				{"Skipped", fmt.Sprintf(intFmt, summary.Skipped)},
			})
		},
	}.write(cfg, "GPA")
}

// WriteUCAS outputs a UCAS tariff total.
func WriteUCAS(summary schema.UCASSummary, cfg *contract.Config) error {
	return formatWriters{
		json:   summary,
		header: []string{"subject", "grade", "points"},
		rows: func(w *csv.Writer) error {
			for _, q := range summary.Qualifications {
				if err := w.Write([]string{q.Subject, q.Grade, strconv.Itoa(q.Points)}); err != nil {
					return err
				}
			}
			return nil
		},
		table: func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Subject", "Grade", "Points"})
			var data [][]string
			for _, q := range summary.Qualifications {
				data = append(data, []string{orDash(q.Subject), q.Grade, strconv.Itoa(q.Points)})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%s: %d points (%s)\n",
				heading(cfg, "🎓", "UCAS Total"), summary.TotalPoints, summary.Eligibility)
			return err
		},
	}.write(cfg, "UCAS points")
}

// writeKeyValueTable renders a titled two-column table.
func writeKeyValueTable(w io.Writer, title string, rows [][]string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// joinOrDash joins values with ", " or returns "-" for an empty list.
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
