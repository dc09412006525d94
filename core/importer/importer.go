package importer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
)

// ErrMissingColumns is returned when an upload lacks a required column.
var ErrMissingColumns = errors.New("missing required columns")

var errStudentNotFound = errors.New("student not found")

func missingColumnsError(missing []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
}

// Option configures an Importer.
type Option func(*Importer)

// WithObserver reports row outcomes and generated identifiers to o.
func WithObserver(o contract.ImportObserver) Option {
	return func(im *Importer) { im.observer = o }
}

// WithWorkers bounds the number of goroutines normalizing one bucket.
func WithWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.workers = n
		}
	}
}

// WithClock overrides the source of "today" for undated rows, enrollment
// dates and identifier years.
func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

// WithIDGenerator replaces the student identifier generator.
func WithIDGenerator(g *IDGenerator) Option {
	return func(im *Importer) { im.ids = g }
}

// WithParentIDGenerator replaces the guardian identifier generator.
func WithParentIDGenerator(g *IDGenerator) Option {
	return func(im *Importer) { im.parentIDs = g }
}

// WithRecordedBy stamps imported assessments with the given recorder.
func WithRecordedBy(by string) Option {
	return func(im *Importer) { im.recordedBy = by }
}

// Importer applies normalized spreadsheet rows of one school to a roster.
type Importer struct {
	roster     contract.Roster
	observer   contract.ImportObserver
	validate   *validator.Validate
	ids        *IDGenerator
	parentIDs  *IDGenerator
	school     string
	recordedBy string
	workers    int
	now        func() time.Time
}

// New creates an Importer for school backed by r.
func New(r contract.Roster, school string, opts ...Option) *Importer {
	im := &Importer{
		roster:     r,
		observer:   contract.NopObserver{},
		validate:   validator.New(),
		school:     school,
		recordedBy: "import",
		workers:    runtime.NumCPU(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.ids == nil {
		im.ids = NewIDGenerator(DefaultIDPrefix, DefaultIDRetries, nil, im.now)
	}
	if im.parentIDs == nil {
		im.parentIDs = NewIDGenerator(DefaultParentPrefix, DefaultIDRetries, nil, im.now)
	}
	return im
}

// Run imports rows of the given kind. Rows are bucketed by day, buckets are
// applied in ascending date order and rows within a bucket in input order.
//
// Row problems never fail the run; they are counted in the summary. Run
// returns an error only when the run could not be recorded or ctx ended,
// in which case the summary covers the rows applied so far.
func (im *Importer) Run(ctx context.Context, kind schema.ImportKind, rows iter.Seq[schema.RawRow]) (schema.ImportSummary, error) {
	if _, ok := schema.ValidImportKinds[kind]; !ok {
		return schema.ImportSummary{}, fmt.Errorf("unknown import kind %q", kind)
	}

	wall := time.Now()
	summary := schema.ImportSummary{
		Kind:         kind,
		School:       im.school,
		StartedAt:    im.now(),
		Errors:       []string{},
		Warnings:     []string{},
		GeneratedIDs: []string{},
		DateBuckets:  []string{},
		Rows:         []schema.RowResult{},
	}

	runID, err := im.roster.BeginImport(ctx, kind, im.school, summary.StartedAt)
	if err != nil {
		return summary, fmt.Errorf("begin import: %w", err)
	}
	summary.RunID = runID

	runErr := im.runBuckets(ctx, kind, rows, &summary)

	summary.Duration = time.Since(wall)
	im.observer.RunFinished(kind, summary.Duration)

	// The run is closed even when ctx ended so partial counts are kept.
	end := summary.StartedAt.Add(summary.Duration)
	if err := im.roster.EndImport(context.WithoutCancel(ctx), runID, end, summary); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("end import: %w", err))
	}
	return summary, runErr
}

func (im *Importer) runBuckets(ctx context.Context, kind schema.ImportKind, rows iter.Seq[schema.RawRow], summary *schema.ImportSummary) error {
	buckets, err := im.group(ctx, kind, rows)
	if err != nil {
		return err
	}
	for _, b := range buckets {
		summary.DateBuckets = append(summary.DateBuckets, b.key)
		batch := im.prepareBucket(ctx, kind, b)
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			im.record(kind, &batch[i], im.apply(ctx, kind, &batch[i], summary), summary)
		}
	}
	return nil
}

// outcome is the result of applying one prepared row.
type outcome struct {
	kind    schema.RowOutcome
	message string
}

func created(msg string) outcome { return outcome{schema.CreatedOutcome, msg} }

func skipped(format string, args ...any) outcome {
	return outcome{schema.SkippedOutcome, fmt.Sprintf(format, args...)}
}

func failed(err error) outcome { return outcome{schema.FailedOutcome, err.Error()} }

func (im *Importer) apply(ctx context.Context, kind schema.ImportKind, p *prepared, summary *schema.ImportSummary) outcome {
	summary.Warnings = append(summary.Warnings, p.warnings...)
	if p.err != nil {
		return failed(p.err)
	}
	switch kind {
	case schema.StudentImport:
		return im.applyStudent(ctx, p, summary)
	case schema.MarksImport:
		return im.applyAssessment(ctx, p)
	default:
		return im.applyAttendance(ctx, p)
	}
}

// record folds a row outcome into the summary.
func (im *Importer) record(kind schema.ImportKind, p *prepared, o outcome, summary *schema.ImportSummary) {
	summary.Processed++
	switch o.kind {
	case schema.CreatedOutcome:
		summary.Created++
	case schema.SkippedOutcome:
		summary.Skipped++
		summary.Warnings = append(summary.Warnings, o.message)
	case schema.FailedOutcome:
		summary.Failed++
		summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", p.line, o.message))
	}
	summary.Rows = append(summary.Rows, schema.RowResult{
		Line:    p.line,
		Date:    p.date,
		Outcome: o.kind,
		Name:    p.key.String(),
		Message: o.message,
	})
	im.observer.RowApplied(kind, o.kind)
}

func (im *Importer) applyStudent(ctx context.Context, p *prepared, summary *schema.ImportSummary) outcome {
	rec := *p.student

	existing, err := im.roster.FindStudentsByName(ctx, im.school, rec.Name)
	if err != nil {
		return failed(fmt.Errorf("look up %s: %w", rec.Name, err))
	}
	if len(existing) > 0 {
		return skipped("Student %s already exists, skipping", rec.Name)
	}

	generated := false
	if rec.ELIMUID != "" {
		taken, err := im.roster.ELIMUIDTaken(ctx, rec.ELIMUID)
		if err != nil {
			return failed(fmt.Errorf("check ELIMUID %s: %w", rec.ELIMUID, err))
		}
		if taken || im.ids.Issued(rec.ELIMUID) {
			return skipped("ELIMUID %s already assigned, skipping %s", rec.ELIMUID, rec.Name)
		}
		im.ids.Reserve(rec.ELIMUID)
	} else {
		id, err := im.ids.Next(ctx, im.roster.ELIMUIDTaken)
		if err != nil {
			return failed(fmt.Errorf("generate ELIMUID for %s: %w", rec.Name, err))
		}
		rec.ELIMUID = id
		generated = true
	}

	student, err := im.roster.CreateStudent(ctx, rec)
	if err != nil {
		return failed(fmt.Errorf("create student %s: %w", rec.Name, err))
	}
	if generated {
		summary.GeneratedIDs = append(summary.GeneratedIDs, student.ELIMUID)
		im.observer.IDGenerated()
	}

	if rec.Parent != nil {
		if err := im.assignParent(ctx, student, *rec.Parent); err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("Failed to assign parent for %s: %v", rec.Name, err))
		}
	}
	return created(student.ELIMUID)
}

// assignParent links the student to the guardian registered under the
// contact's email, creating the guardian first when needed.
func (im *Importer) assignParent(ctx context.Context, student schema.Student, contact schema.ParentContact) error {
	parent, found, err := im.roster.FindParentByEmail(ctx, contact.Email)
	if err != nil {
		return err
	}
	if !found {
		id, err := im.parentIDs.Next(ctx, im.roster.ParentIDTaken)
		if err != nil {
			return err
		}
		if parent, err = im.roster.CreateParent(ctx, im.school, id, contact); err != nil {
			return err
		}
	}
	return im.roster.LinkParent(ctx, student.ID, parent.ID, contact.Relationship)
}

// resolve finds the student a row refers to: by ELIMUID first, then by
// name within the school. Unknown and ambiguous names are errors.
func (im *Importer) resolve(ctx context.Context, key studentKey) (schema.Student, error) {
	if key.elimuid != "" {
		st, found, err := im.roster.FindStudentByELIMUID(ctx, key.elimuid)
		if err != nil {
			return schema.Student{}, err
		}
		if found {
			return st, nil
		}
	}
	if key.name != "" {
		matches, err := im.roster.FindStudentsByName(ctx, im.school, key.name)
		if err != nil {
			return schema.Student{}, err
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return schema.Student{}, fmt.Errorf("ambiguous student name %s matches %d students", key.name, len(matches))
		}
	}
	return schema.Student{}, fmt.Errorf("%w: %s", errStudentNotFound, key)
}

func (im *Importer) applyAssessment(ctx context.Context, p *prepared) outcome {
	st, err := im.resolve(ctx, p.key)
	if err != nil {
		return failed(err)
	}
	rec := *p.assessment
	rec.StudentID = st.ID

	exists, err := im.roster.AssessmentExists(ctx, rec)
	if err != nil {
		return failed(fmt.Errorf("check assessment for %s: %w", st.Name, err))
	}
	if exists {
		return skipped("Assessment already exists for %s: %s %s on %s", st.Name, rec.Subject, rec.AssessmentType, p.date)
	}
	if err := im.roster.CreateAssessment(ctx, rec); err != nil {
		return failed(fmt.Errorf("create assessment for %s: %w", st.Name, err))
	}
	return created(st.ELIMUID)
}

func (im *Importer) applyAttendance(ctx context.Context, p *prepared) outcome {
	st, err := im.resolve(ctx, p.key)
	if err != nil {
		return failed(err)
	}
	rec := *p.attendance
	rec.StudentID = st.ID

	exists, err := im.roster.AttendanceExists(ctx, st.ID, rec.Date)
	if err != nil {
		return failed(fmt.Errorf("check attendance for %s: %w", st.Name, err))
	}
	if exists {
		return skipped("Attendance already recorded for %s on %s", st.Name, p.date)
	}
	if err := im.roster.CreateAttendance(ctx, rec); err != nil {
		return failed(fmt.Errorf("create attendance for %s: %w", st.Name, err))
	}
	return created(st.ELIMUID)
}
