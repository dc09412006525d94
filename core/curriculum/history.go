package curriculum

import (
	"time"

	"github.com/huangsam/elimu/schema"
)

// ScoresToHistory turns bare scores into one subject's assessment history,
// one record per day ending on end. The last score is the most recent.
func ScoresToHistory(studentID, subject string, scores []float64, end time.Time) []schema.AssessmentRecord {
	last := schema.Day(end)
	out := make([]schema.AssessmentRecord, len(scores))
	for i, s := range scores {
		date := last.AddDate(0, 0, i-len(scores)+1)
		out[i] = schema.AssessmentRecord{
			StudentID:      studentID,
			Subject:        subject,
			Score:          schema.Clamp(s, 0, 100),
			AssessmentType: schema.TestAssessment,
			Date:           date,
			Term:           schema.TermForDate(date),
			Year:           date.Year(),
		}
	}
	return out
}
