package curriculum

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same values on every draw.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func TestCalculateGrade_BandCoverage(t *testing.T) {
	cases := []struct {
		code  schema.CurriculumCode
		level string
	}{
		{schema.System844, "Form 3"},
		{schema.CBCSystem, "Grade 2"},
		{schema.CBCSystem, "Grade 7"},
		{schema.BritishSystem, "Year 2"},
		{schema.BritishSystem, "Year 10"},
		{schema.BritishSystem, "Year 12"},
		{schema.AmericanSystem, "Grade 10"},
	}

	src := rand.New(rand.NewPCG(7, 11))
	scores := make([]float64, 0, 400)
	for s := 0.0; s <= 100; s += 0.5 {
		scores = append(scores, s)
	}
	for range 200 {
		scores = append(scores, src.Float64()*100)
	}

	for _, tc := range cases {
		t.Run(string(tc.code)+"/"+tc.level, func(t *testing.T) {
			e := NewEngine(tc.code, WithRand(fixedRand{f: 0.5}))
			for _, s := range scores {
				g := e.CalculateGrade(s, "Mathematics", tc.level)
				require.NotEmpty(t, g.Grade, "score %v", s)
				floor := math.Floor(s)
				assert.LessOrEqual(t, g.BandMin, floor, "score %v grade %s", s, g.Grade)
				assert.GreaterOrEqual(t, g.BandMax, floor, "score %v grade %s", s, g.Grade)
			}
		})
	}
}

func TestCalculateGrade_OutOfRange(t *testing.T) {
	for _, code := range schema.AllCurricula {
		e := NewEngine(code, WithRand(fixedRand{f: 0.5}))
		lowest := e.Profile().GradingBands[len(e.Profile().GradingBands)-1].Label
		highest := e.Profile().GradingBands[0].Label

		assert.NotPanics(t, func() {
			for _, s := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -12, 250} {
				e.CalculateGrade(s, "", "")
			}
		})
		assert.Equal(t, lowest, e.CalculateGrade(-12, "", "").Grade, string(code))
		assert.Equal(t, lowest, e.CalculateGrade(math.NaN(), "", "").Grade, string(code))
		assert.Equal(t, highest, e.CalculateGrade(250, "", "").Grade, string(code))
	}
}

func TestNewEngine_UnknownCodeFallsBack(t *testing.T) {
	e := NewEngine("ib")
	assert.Equal(t, schema.System844, e.Code())
	assert.Equal(t, "A", e.CalculateGrade(85, "", "").Grade)
}

func TestCalculateGrade_844(t *testing.T) {
	e := NewEngine(schema.System844)
	tests := []struct {
		score  float64
		grade  string
		points float64
	}{
		{100, "A", 12},
		{80, "A", 12},
		{79.5, "A-", 11},
		{70, "B+", 10},
		{54, "C", 6},
		{30, "D-", 2},
		{29.9, "E", 1},
		{0, "E", 1},
	}
	for _, tt := range tests {
		g := e.CalculateGrade(tt.score, "Mathematics", "Form 2")
		assert.Equal(t, tt.grade, g.Grade, "score %v", tt.score)
		assert.Equal(t, tt.points, g.Points, "score %v", tt.score)
		assert.Equal(t, schema.System844, g.System)
	}
}

func TestCalculateGrade_CBC(t *testing.T) {
	e := NewEngine(schema.CBCSystem, WithRand(fixedRand{f: 0.5}))

	g := e.CalculateGrade(85, "Mathematics", "Grade 6")
	assert.Equal(t, "EE", g.Code)
	assert.Equal(t, "Exceeding Expectations", g.Grade)
	assert.Equal(t, upperCategory, g.LevelCategory)
	require.Len(t, g.Competencies, len(competencies))
	for _, c := range g.Competencies {
		assert.Equal(t, 85.0, c.Score, c.Name)
	}

	g = e.CalculateGrade(45, "Literacy", "PP2")
	assert.Equal(t, "AE", g.Code)
	assert.Equal(t, lowerCategory, g.LevelCategory)
}

func TestCalculateGrade_CBCJitterIsClamped(t *testing.T) {
	high := NewEngine(schema.CBCSystem, WithRand(fixedRand{f: 0.999}))
	for _, c := range high.CalculateGrade(98, "", "").Competencies {
		assert.LessOrEqual(t, c.Score, 100.0)
	}

	low := NewEngine(schema.CBCSystem, WithRand(fixedRand{f: 0}))
	for _, c := range low.CalculateGrade(2, "", "").Competencies {
		assert.Equal(t, 0.0, c.Score)
	}

	// Jitter stays inside [-5, +5] with the real source.
	e := NewEngine(schema.CBCSystem)
	for _, c := range e.CalculateGrade(50, "", "").Competencies {
		assert.InDelta(t, 50, c.Score, 5.05)
	}
}

func TestCalculateGrade_British(t *testing.T) {
	e := NewEngine(schema.BritishSystem)
	tests := []struct {
		name          string
		score         float64
		level         string
		grade         string
		keyStage      string
		qualification string
		ucas          int
	}{
		{"narrative above", 92, "Year 4", "Working Above", "KS2", "", 0},
		{"narrative towards", 55, "Year 8", "Working Towards", "KS3", "", 0},
		{"gcse", 73, "Year 11", "7", "KS4", gcseQualification, 0},
		{"gcse ungraded", 5, "Year 10", "U", "KS4", gcseQualification, 0},
		{"a-level", 91, "Year 13", "A*", "KS5", aLevelQualification, 56},
		{"a-level ungraded", 20, "Year 12", "U", "KS5", aLevelQualification, 0},
		{"unknown level", 75, "Reception", "Working At", "KS3", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := e.CalculateGrade(tt.score, "English", tt.level)
			assert.Equal(t, tt.grade, g.Grade)
			assert.Equal(t, tt.keyStage, g.KeyStage)
			assert.Equal(t, tt.qualification, g.Qualification)
			assert.Equal(t, tt.ucas, g.UCASPoints)
		})
	}
}

func TestCalculateGrade_American(t *testing.T) {
	e := NewEngine(schema.AmericanSystem)

	g := e.CalculateGrade(98, "Chemistry", "Grade 11")
	assert.Equal(t, "A+", g.Grade)
	assert.False(t, g.IsAP)
	assert.Equal(t, 4.0, g.GPA)
	assert.Equal(t, 1.0, g.CreditHours)
	assert.InDelta(t, 4.0, g.QualityPoints, 1e-9)

	ap := e.CalculateGrade(98, "AP Chemistry", "Grade 10")
	assert.True(t, ap.IsAP)
	assert.Equal(t, 4.3, ap.GPA)
	assert.Equal(t, 0.5, ap.CreditHours)
	assert.InDelta(t, 2.15, ap.QualityPoints, 1e-9)

	low := e.CalculateGrade(50, "Art", "Grade 5")
	assert.Equal(t, "F", low.Grade)
	assert.Equal(t, 0.25, low.CreditHours)
}

func TestIsAPSubject(t *testing.T) {
	tests := map[string]bool{
		"AP Calculus":                   true,
		"Biology (AP)":                  true,
		"Advanced Placement Literature": true,
		"Apprenticeship":                false,
		"Geography":                     false,
		"":                              false,
	}
	for subject, expected := range tests {
		assert.Equal(t, expected, IsAPSubject(subject), subject)
	}
}

func TestGradeRecords_APFlag(t *testing.T) {
	e := NewEngine(schema.AmericanSystem)
	grades := e.GradeRecords([]schema.AssessmentRecord{
		{Subject: "Physics", Score: 95, Level: "Grade 12", IsAP: true},
		{Subject: "History", Score: 95, Level: "Grade 12"},
	})
	require.Len(t, grades, 2)
	assert.True(t, grades[0].IsAP)
	assert.False(t, grades[1].IsAP)
}

func TestNextLevel(t *testing.T) {
	assert.Equal(t, "Grade 5", nextLevel(levelsCBC, "Grade 4"))
	assert.Equal(t, "", nextLevel(levelsCBC, "Grade 9"))
	assert.Equal(t, "", nextLevel(levelsCBC, "Form 1"))
}
