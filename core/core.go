// Package core has the entry logic behind every grading, analytics and import command.
package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/elimu/core/curriculum"
	"github.com/huangsam/elimu/core/importer"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/internal/metrics"
	"github.com/huangsam/elimu/internal/outwriter"
	"github.com/huangsam/elimu/schema"
)

// ucasLevel is the British level used to grade A-Level entries.
const ucasLevel = "Year 13"

var out = outwriter.NewOutWriter()

func newEngine(cfg *contract.Config) *curriculum.Engine {
	return curriculum.NewEngine(cfg.Curriculum, curriculum.WithClock(cfg.Now))
}

// ExecuteGrade grades every score with the configured curriculum.
// Scores accept the same forms as spreadsheet cells, e.g. "85%", "17/20" or "B+".
func ExecuteGrade(cfg *contract.Config, args []string) error {
	scores, err := parseScores(args)
	if err != nil {
		return err
	}
	e := newEngine(cfg)
	results := make([]schema.GradeResult, len(scores))
	for i, s := range scores {
		results[i] = e.CalculateGrade(s, cfg.Subject, cfg.Level)
	}
	return out.WriteGrades(results, cfg)
}

// ExecuteMean grades every score on the 8-4-4 scale and prints the mean grade.
func ExecuteMean(cfg *contract.Config, args []string) error {
	entries, err := parseEntries(args)
	if err != nil {
		return err
	}
	e := curriculum.NewEngine(schema.System844, curriculum.WithClock(cfg.Now))
	grades := make([]schema.GradeResult, len(entries))
	for i, en := range entries {
		grades[i] = e.CalculateGrade(en.score, en.subject, cfg.Level)
	}
	return out.WriteMeanGrade(e.CalculateMeanGrade(grades), grades, cfg)
}

// ExecuteGPA grades "Subject:score" entries on the American scale and prints
// their credit-weighted GPA. AP courses are detected by name.
func ExecuteGPA(cfg *contract.Config, args []string) error {
	entries, err := parseEntries(args)
	if err != nil {
		return err
	}
	records := make([]schema.AssessmentRecord, len(entries))
	for i, en := range entries {
		records[i] = schema.AssessmentRecord{Subject: en.subject, Score: en.score, Level: cfg.Level}
	}
	e := curriculum.NewEngine(schema.AmericanSystem, curriculum.WithClock(cfg.Now))
	grades := e.GradeRecords(records)
	return out.WriteGPA(e.CalculateGPA(grades), grades, cfg)
}

// ExecuteUCAS grades "Subject:score" entries as A-Levels and prints their UCAS tariff.
func ExecuteUCAS(cfg *contract.Config, args []string) error {
	entries, err := parseEntries(args)
	if err != nil {
		return err
	}
	e := curriculum.NewEngine(schema.BritishSystem, curriculum.WithClock(cfg.Now))
	grades := make([]schema.GradeResult, len(entries))
	for i, en := range entries {
		grades[i] = e.CalculateGrade(en.score, en.subject, ucasLevel)
	}
	return out.WriteUCAS(e.CalculateUCASPoints(grades), cfg)
}

// ExecutePredict prints predictions for a stored student history, or for the
// given scores in chronological order when studentID is empty.
func ExecutePredict(ctx context.Context, cfg *contract.Config, r contract.Roster, studentID string, args []string) error {
	var history []schema.AssessmentRecord
	if studentID != "" {
		student, err := findStudent(ctx, r, studentID)
		if err != nil {
			return err
		}
		if history, err = r.StudentHistory(ctx, student.ID); err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
	} else {
		scores, err := parseScores(args)
		if err != nil {
			return err
		}
		history = curriculum.ScoresToHistory("", cfg.Subject, scores, cfg.Now())
	}
	return out.WritePredictions(newEngine(cfg).GeneratePredictions(history), cfg)
}

// ExecuteInsights prints the insight report of a stored student, ranked
// against the other students of their class when the class is known.
func ExecuteInsights(ctx context.Context, cfg *contract.Config, r contract.Roster, studentID string) error {
	student, err := findStudent(ctx, r, studentID)
	if err != nil {
		return err
	}
	history, err := r.StudentHistory(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	attendance, err := r.StudentAttendance(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}
	e := newEngine(cfg)
	report := e.GenerateInsights(student.ELIMUID, history, attendance)
	if student.ClassName != "" && len(history) > 0 {
		peers, err := r.ClassMeans(ctx, student.School, student.ClassName)
		if err != nil {
			return fmt.Errorf("failed to load class means: %w", err)
		}
		comparison := e.CompareWithClass(student.ID, peers)
		comparison.StudentID = student.ELIMUID
		report.Comparison = &comparison
	}
	return out.WriteInsights(report, cfg)
}

// ExecuteReport prints the report card of a stored student.
func ExecuteReport(ctx context.Context, cfg *contract.Config, r contract.Roster, studentID string) error {
	student, err := findStudent(ctx, r, studentID)
	if err != nil {
		return err
	}
	history, err := r.StudentHistory(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	// --level overrides the class stored on the roster.
	level := cmp.Or(cfg.Level, student.ClassName)
	for i := range history {
		if history[i].Level == "" {
			history[i].Level = level
		}
	}
	ref := schema.StudentRef{
		ID:      student.ID,
		ELIMUID: student.ELIMUID,
		Name:    student.Name,
		Level:   level,
		School:  student.School,
	}
	return out.WriteReportCard(newEngine(cfg).GenerateReportCard(ref, history, ""), cfg)
}

// ImportOptions selects the upload and the optional report files of an import.
type ImportOptions struct {
	Kind          schema.ImportKind
	Path          string
	ErrorReport   string
	SuccessReport string
}

// ExecuteImport applies a CSV upload to the roster and prints its run summary.
// The summary is printed even when the run ends with an error.
func ExecuteImport(ctx context.Context, cfg *contract.Config, r contract.Roster, opts ImportOptions) (schema.ImportSummary, error) {
	f, err := os.Open(opts.Path)
	if err != nil {
		return schema.ImportSummary{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, err := importer.NewCSVSource(f)
	if err != nil {
		return schema.ImportSummary{}, err
	}
	if err := importer.ValidateHeaders(opts.Kind, src.Headers()); err != nil {
		return schema.ImportSummary{}, err
	}

	collector := metrics.NewCollector()
	im := importer.New(r, cfg.School,
		importer.WithObserver(collector),
		importer.WithWorkers(cfg.Workers),
		importer.WithClock(cfg.Now),
		importer.WithIDGenerator(importer.NewIDGenerator(cfg.IDPrefix, cfg.IDRetries, nil, cfg.Now)),
		importer.WithRecordedBy(cfg.RecordedBy),
	)

	if !shouldSuppressHeader(ctx) {
		logImportHeader(cfg, opts)
	}
	summary, runErr := im.Run(ctx, opts.Kind, src.Rows())
	if err := src.Err(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("read %s: %w", opts.Path, err))
	}

	if err := out.WriteImportSummary(summary, cfg); err != nil {
		return summary, errors.Join(runErr, err)
	}
	if opts.ErrorReport != "" {
		if err := outwriter.WriteCSVReport(opts.ErrorReport, importer.ErrorReportHeader, importer.ErrorReport(summary)); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("error report: %w", err))
		}
	}
	if opts.SuccessReport != "" {
		if err := outwriter.WriteCSVReport(opts.SuccessReport, importer.SuccessReportHeader, importer.SuccessReport(summary)); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("success report: %w", err))
		}
	}
	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("metrics file: %w", err))
		}
	}
	return summary, runErr
}

func logImportHeader(cfg *contract.Config, opts ImportOptions) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "📥 "
	}
	_, _ = fmt.Fprintf(os.Stderr, "%sImporting %s for %s from %s\n", prefix, opts.Kind, cfg.School, opts.Path)
}

// findStudent resolves a student by ELIMUID.
func findStudent(ctx context.Context, r contract.Roster, elimuid string) (schema.Student, error) {
	student, found, err := r.FindStudentByELIMUID(ctx, strings.ToUpper(strings.TrimSpace(elimuid)))
	if err != nil {
		return schema.Student{}, fmt.Errorf("failed to look up student: %w", err)
	}
	if !found {
		return schema.Student{}, fmt.Errorf("student %s not found", elimuid)
	}
	return student, nil
}
