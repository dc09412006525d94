package curriculum

import (
	"testing"

	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(subject string, scores ...float64) []schema.AssessmentRecord {
	out := make([]schema.AssessmentRecord, len(scores))
	for i, s := range scores {
		out[i] = schema.AssessmentRecord{Subject: subject, Score: s}
	}
	return out
}

func attendance(statuses ...schema.AttendanceStatus) []schema.AttendanceRecord {
	out := make([]schema.AttendanceRecord, len(statuses))
	for i, s := range statuses {
		out[i] = schema.AttendanceRecord{Status: s}
	}
	return out
}

func TestGenerateInsights(t *testing.T) {
	e := NewEngine(schema.System844)

	var records []schema.AssessmentRecord
	records = append(records, series("Mathematics", 50, 60, 70)...)
	records = append(records, series("Science", 85, 90, 95)...)
	records = append(records, series("History", 60, 50, 40)...)
	records = append(records, series("Art", 90, 20)...)

	r := e.GenerateInsights("s1", records, attendance(schema.Present, schema.Late, schema.Present, schema.Absent, schema.Sick))

	byKey := make(map[string]schema.Insight)
	for _, in := range r.Insights {
		byKey[in.Type+"/"+in.Subject] = in
	}
	require.Contains(t, byKey, "improvement/Mathematics")
	assert.Equal(t, 40.0, byKey["improvement/Mathematics"].Value)
	require.Contains(t, byKey, "strength/Science")
	assert.Equal(t, "Exceptional performance in Science", byKey["strength/Science"].Message)
	require.Contains(t, byKey, "improvement/Science")
	require.Contains(t, byKey, "risk/History")
	assert.Equal(t, "Immediate intervention recommended", byKey["risk/History"].Recommendation)
	require.Contains(t, byKey, "warning/")
	assert.NotContains(t, byKey, "strength/Art")
	assert.NotContains(t, byKey, "risk/Art")

	assert.Equal(t, 60.0, r.AttendanceRate)
	assert.Equal(t, 1, r.Strengths)
	assert.Equal(t, 2, r.Improvements)
	assert.Equal(t, 2, r.Risks)
	assert.Equal(t, "Good", r.OverallHealth)
}

func TestGenerateInsights_NeedsAttention(t *testing.T) {
	e := NewEngine(schema.System844)
	var records []schema.AssessmentRecord
	for _, subject := range []string{"Mathematics", "English", "Kiswahili"} {
		records = append(records, series(subject, 60, 50, 40)...)
	}
	r := e.GenerateInsights("s1", records, nil)
	assert.Equal(t, 3, r.Risks)
	assert.Equal(t, "Needs Attention", r.OverallHealth)
	assert.Equal(t, 0.0, r.AttendanceRate)
}

func TestGenerateInsights_Empty(t *testing.T) {
	r := NewEngine(schema.System844).GenerateInsights("s1", nil, nil)
	assert.Empty(t, r.Insights)
	assert.Equal(t, "Good", r.OverallHealth)
}

func TestCompareWithClass(t *testing.T) {
	e := NewEngine(schema.System844)
	peers := []schema.StudentMean{
		{StudentID: "a", Mean: 70},
		{StudentID: "b", Mean: 90},
		{StudentID: "c", Mean: 80},
	}

	c := e.CompareWithClass("a", peers)
	assert.Equal(t, 3, c.Rank)
	assert.Equal(t, 3, c.ClassSize)
	assert.Equal(t, 70.0, c.Mean)
	assert.Equal(t, 80.0, c.ClassMean)
	assert.Equal(t, 33.3, c.Percentile)

	top := e.CompareWithClass("b", peers)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 100.0, top.Percentile)

	// Input order is untouched.
	assert.Equal(t, "a", peers[0].StudentID)

	missing := e.CompareWithClass("z", peers)
	assert.Equal(t, 0, missing.Rank)
	assert.Equal(t, 0.0, missing.Percentile)
}
