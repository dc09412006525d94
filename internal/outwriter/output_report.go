package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/olekukonko/tablewriter"
)

var reportCSVHeader = []string{"subject", "assessment_type", "date", "average", "assessments", "grade", "points", "remark", "comment", "target"}

// WriteReportCard outputs a curriculum report card.
// CSV carries the subject lines only; JSON carries every section.
func WriteReportCard(card schema.ReportCard, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return formatWriters{
		json:   card,
		header: reportCSVHeader,
		rows: func(w *csv.Writer) error {
			for _, s := range card.Subjects {
				date := ""
				if !s.Date.IsZero() {
					date = schema.DateKey(s.Date)
				}
				rec := []string{
					s.Subject,
					string(s.AssessmentType),
					date,
					fmtFloat(s.Average),
					strconv.Itoa(s.Assessments),
					s.Result.Grade,
					fmtFloat(s.Result.Points),
					s.Result.Remark,
					s.Comment,
					s.Target,
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
			return nil
		},
		table: func(w io.Writer) error {
			return writeReportCardText(w, card, cfg, fmtFloat)
		},
	}.write(cfg, "report cards")
}

func writeReportCardText(w io.Writer, card schema.ReportCard, cfg *contract.Config, fmtFloat func(float64) string) error {
	student := card.Student.Name
	if card.Student.ELIMUID != "" {
		student = fmt.Sprintf("%s (%s)", student, card.Student.ELIMUID)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s | %s | %s %d\n",
		heading(cfg, "📘", card.SystemName+" Report Card"),
		student, orDash(card.Student.Level), card.Term, card.Year); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subject", "Average", "Grade", "Points", "Remark"})
	remarkWidth := GetMaxTableTextWidth(cfg, 50)
	var data [][]string
	for _, s := range card.Subjects {
		remark := s.Result.Remark
		if s.Comment != "" {
			remark = s.Comment
		}
		data = append(data, []string{
			s.Subject,
			fmtFloat(s.Average),
			s.Result.Grade,
			fmtFloat(s.Result.Points),
			contract.TruncateText(remark, remarkWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	summary := reportSummaryRows(card, fmtFloat)
	if len(summary) > 0 {
		if err := writeKeyValueTable(w, heading(cfg, "🎓", "Summary"), summary); err != nil {
			return err
		}
	}

	if err := writeRatedItems(w, heading(cfg, "🧠", "Competencies"), card.Competencies); err != nil {
		return err
	}
	if err := writeRatedItems(w, heading(cfg, "🤝", "Values"), card.Values); err != nil {
		return err
	}

	if len(card.Honors) > 0 {
		if _, err := fmt.Fprintln(w, heading(cfg, "🏅", "Honors")); err != nil {
			return err
		}
		honors := tablewriter.NewWriter(w)
		honors.Header([]string{"Subject", "Grade", "Exam", "AP Score"})
		var rows [][]string
		for _, h := range card.Honors {
			rows = append(rows, []string{h.Subject, h.Grade, h.Exam, h.APScore})
		}
		if err := honors.Bulk(rows); err != nil {
			return err
		}
		if err := honors.Render(); err != nil {
			return err
		}
	}

	if c := card.Comments; c != nil {
		if _, err := fmt.Fprintf(w, "%s\n  Strengths: %s\n  Improvements: %s\n  Overall: %s\n",
			heading(cfg, "📝", "Comments"), joinOrDash(c.Strengths), joinOrDash(c.Improvements), orDash(c.Overall)); err != nil {
			return err
		}
	}
	return nil
}

// reportSummaryRows collects the curriculum-specific totals of a card.
func reportSummaryRows(card schema.ReportCard, fmtFloat func(float64) string) [][]string {
	var rows [][]string
	if m := card.MeanGrade; m != nil {
		rows = append(rows,
			[]string{"Mean Grade", m.MeanGrade},
			[]string{"Mean Points", fmtFloat(m.MeanPoints)},
			[]string{"Classification", m.Classification},
		)
	}
	if card.OverallScore > 0 {
		rows = append(rows, []string{"Overall Score", fmtFloat(card.OverallScore)})
	}
	if card.PromotionStatus != "" {
		rows = append(rows, []string{"Promotion", card.PromotionStatus})
	}
	if card.NextLevel != "" {
		rows = append(rows, []string{"Next Level", card.NextLevel})
	}
	if card.KeyStage != "" {
		rows = append(rows, []string{"Key Stage", card.KeyStage})
	}
	if u := card.UCAS; u != nil {
		rows = append(rows, []string{"UCAS Points", fmt.Sprintf("%d (%s)", u.TotalPoints, u.Eligibility)})
	}
	if g := card.GPA; g != nil {
		rows = append(rows,
			[]string{"Unweighted GPA", fmt.Sprintf("%.2f", g.UnweightedGPA)},
			[]string{"Weighted GPA", fmt.Sprintf("%.2f", g.WeightedGPA)},
		)
	}
	if card.CollegePrep != "" {
		rows = append(rows, []string{"College Prep", card.CollegePrep})
	}
	if len(card.RecommendedCourses) > 0 {
		rows = append(rows, []string{"Recommended", joinOrDash(card.RecommendedCourses)})
	}
	return rows
}

func writeRatedItems(w io.Writer, title string, items []schema.RatedItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.Name, it.Rating}
	}
	return writeKeyValueTable(w, title, rows)
}
