package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/olekukonko/tablewriter"
)

var predictionsCSVHeader = []string{"section", "type", "level", "subject", "detail"}

// WritePredictions outputs short- and long-term predictions with risks and recommendations.
func WritePredictions(p schema.Predictions, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return formatWriters{
		json:   p,
		header: predictionsCSVHeader,
		rows: func(w *csv.Writer) error {
			return w.WriteAll(predictionRecords(p, fmtFloat))
		},
		table: func(w io.Writer) error {
			return writePredictionsText(w, p, cfg, fmtFloat)
		},
	}.write(cfg, "predictions")
}

// predictionRecords flattens predictions into section rows.
func predictionRecords(p schema.Predictions, fmtFloat func(float64) string) [][]string {
	records := [][]string{
		{"short_term", string(p.ShortTerm.Trend), string(p.ShortTerm.Confidence), "",
			fmt.Sprintf("predicted %s (%s)", fmtFloat(p.ShortTerm.PredictedScore), p.ShortTerm.NextAssessmentGrade)},
		{"long_term", p.LongTerm.Consistency, string(p.LongTerm.Confidence), "",
			fmt.Sprintf("average %s, std dev %s, final %s", fmtFloat(p.LongTerm.Average), fmtFloat(p.LongTerm.StdDev), p.LongTerm.PredictedFinalGrade)},
	}
	for _, r := range p.RiskFactors {
		records = append(records, []string{"risk", r.Type, string(r.Severity), "", r.Description})
	}
	for _, r := range p.Recommendations {
		records = append(records, []string{"recommendation", r.Type, string(r.Priority), r.Subject, r.Action})
	}
	return records
}

func writePredictionsText(w io.Writer, p schema.Predictions, cfg *contract.Config, fmtFloat func(float64) string) error {
	short := p.ShortTerm
	shortRows := [][]string{
		{"Predicted Score", fmtFloat(short.PredictedScore)},
		{"Next Grade", orDash(short.NextAssessmentGrade)},
		{"Trend", orDash(string(short.Trend))},
		{"Confidence", string(short.Confidence)},
	}
	if short.Message != "" {
		shortRows = append(shortRows, []string{"Note", short.Message})
	}
	if err := writeKeyValueTable(w, heading(cfg, "📈", "Short Term"), shortRows); err != nil {
		return err
	}

	long := p.LongTerm
	longRows := [][]string{
		{"Average", fmtFloat(long.Average)},
		{"Std Dev", fmtFloat(long.StdDev)},
		{"Consistency", orDash(long.Consistency)},
		{"Predicted Final", orDash(long.PredictedFinalGrade)},
		{"Improvement Needed", fmtFloat(long.ImprovementNeeded)},
		{"Confidence", string(long.Confidence)},
	}
	if long.Message != "" {
		longRows = append(longRows, []string{"Note", long.Message})
	}
	if err := writeKeyValueTable(w, heading(cfg, "🔭", "Long Term"), longRows); err != nil {
		return err
	}

	textWidth := GetMaxTableTextWidth(cfg, 40)
	if len(p.RiskFactors) > 0 {
		if _, err := fmt.Fprintln(w, heading(cfg, "⚠️", "Risk Factors")); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Type", "Severity", "Description"})
		var data [][]string
		for _, r := range p.RiskFactors {
			data = append(data, []string{r.Type, string(r.Severity), contract.TruncateText(r.Description, textWidth)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(p.Recommendations) > 0 {
		if _, err := fmt.Fprintln(w, heading(cfg, "💡", "Recommendations")); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Priority", "Subject", "Action"})
		var data [][]string
		for _, r := range p.Recommendations {
			data = append(data, []string{string(r.Priority), orDash(r.Subject), contract.TruncateText(r.Action, textWidth)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// WriteInsights outputs a student's insight report.
func WriteInsights(report schema.InsightReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return formatWriters{
		json:   report,
		header: []string{"type", "subject", "value", "message", "recommendation"},
		rows: func(w *csv.Writer) error {
			for _, in := range report.Insights {
				if err := w.Write([]string{in.Type, in.Subject, fmtFloat(in.Value), in.Message, in.Recommendation}); err != nil {
					return err
				}
			}
			return nil
		},
		table: func(w io.Writer) error {
			textWidth := GetMaxTableTextWidth(cfg, 30)
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Type", "Subject", "Message"})
			var data [][]string
			for _, in := range report.Insights {
				data = append(data, []string{in.Type, orDash(in.Subject), contract.TruncateText(in.Message, textWidth)})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			rows := [][]string{
				{"Strengths", fmt.Sprintf(intFmt, report.Strengths)},
				{"Improvements", fmt.Sprintf(intFmt, report.Improvements)},
				{"Risks", fmt.Sprintf(intFmt, report.Risks)},
				{"Attendance Rate", fmtFloat(report.AttendanceRate) + "%"},
				{"Health", report.OverallHealth},
			}
			if c := report.Comparison; c != nil && c.Rank > 0 {
				rows = append(rows,
					[]string{"Class Rank", fmt.Sprintf("%d of %d", c.Rank, c.ClassSize)},
					[]string{"Class Mean", fmtFloat(c.ClassMean)},
					[]string{"Percentile", fmtFloat(c.Percentile)},
				)
			}
			return writeKeyValueTable(w, heading(cfg, "🩺", "Overall"), rows)
		},
	}.write(cfg, "insights")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
