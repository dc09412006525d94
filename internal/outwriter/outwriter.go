// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGrades prints graded scores using the configured output format.
func (ow *OutWriter) WriteGrades(results []schema.GradeResult, cfg *contract.Config) error {
	return WriteGradeResults(results, cfg)
}

// WriteMeanGrade prints a mean grade using the configured output format.
func (ow *OutWriter) WriteMeanGrade(mean schema.MeanGrade, grades []schema.GradeResult, cfg *contract.Config) error {
	return WriteMeanGrade(mean, grades, cfg)
}

// WriteGPA prints a GPA summary using the configured output format.
func (ow *OutWriter) WriteGPA(summary schema.GPASummary, grades []schema.GradeResult, cfg *contract.Config) error {
	return WriteGPA(summary, grades, cfg)
}

// WriteUCAS prints a UCAS tariff total using the configured output format.
func (ow *OutWriter) WriteUCAS(summary schema.UCASSummary, cfg *contract.Config) error {
	return WriteUCAS(summary, cfg)
}

// WritePredictions prints predictions using the configured output format.
func (ow *OutWriter) WritePredictions(p schema.Predictions, cfg *contract.Config) error {
	return WritePredictions(p, cfg)
}

// WriteInsights prints an insight report using the configured output format.
func (ow *OutWriter) WriteInsights(report schema.InsightReport, cfg *contract.Config) error {
	return WriteInsights(report, cfg)
}

// WriteReportCard prints a report card using the configured output format.
func (ow *OutWriter) WriteReportCard(card schema.ReportCard, cfg *contract.Config) error {
	return WriteReportCard(card, cfg)
}

// WriteImportSummary prints an import summary using the configured output format.
func (ow *OutWriter) WriteImportSummary(s schema.ImportSummary, cfg *contract.Config) error {
	return WriteImportSummary(s, cfg)
}
