package curriculum

import (
	"github.com/huangsam/elimu/schema"
)

// subjectScores is one subject's scores in record order.
type subjectScores struct {
	name   string
	scores []float64
	ap     bool
}

// groupBySubject collects scores per subject in order of first appearance.
func groupBySubject(records []schema.AssessmentRecord) []subjectScores {
	index := make(map[string]int)
	var out []subjectScores
	for _, r := range records {
		i, ok := index[r.Subject]
		if !ok {
			i = len(out)
			index[r.Subject] = i
			out = append(out, subjectScores{name: r.Subject})
		}
		out[i].scores = append(out[i].scores, r.Score)
		if r.IsAP || IsAPSubject(r.Subject) {
			out[i].ap = true
		}
	}
	return out
}

// GenerateReportCard builds a report card for one student. An empty system
// uses the engine's curriculum; unknown systems fall back to 8-4-4. The term
// and year come from the latest record, or from the engine clock when there
// are no records.
func (e *Engine) GenerateReportCard(student schema.StudentRef, records []schema.AssessmentRecord, system schema.CurriculumCode) schema.ReportCard {
	sys := e.system
	if system != "" {
		sys = e.catalog.Lookup(system)
	}
	profile := sys.Profile()

	now := e.now()
	ref := now
	var latest schema.AssessmentRecord
	for _, r := range records {
		if r.Date.After(latest.Date) {
			latest = r
		}
	}
	if !latest.Date.IsZero() {
		ref = latest.Date
	}

	card := schema.ReportCard{
		System:      profile.Code,
		SystemName:  profile.Name,
		Student:     student,
		Term:        schema.TermForDate(ref),
		Year:        ref.Year(),
		GeneratedAt: now,
		Subjects:    []schema.SubjectReport{},
	}
	if latest.Term != "" {
		card.Term = latest.Term
	}
	sys.Report(e, &card, records)
	return card
}
