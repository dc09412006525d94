package curriculum

import (
	"slices"

	"github.com/huangsam/elimu/core/algo"
	"github.com/huangsam/elimu/schema"
)

// Level categories for CBC subjects.
const (
	lowerCategory = "lower"
	upperCategory = "upper"
)

type systemCBC struct {
	profile *Profile
}

func newSystemCBC() *systemCBC {
	return &systemCBC{profile: &Profile{
		Code:   schema.CBCSystem,
		Name:   "Competency Based Curriculum",
		Levels: levelsCBC,
		SubjectsByLevelCategory: map[string][]string{
			lowerCategory: {"Literacy", "Numeracy", "Environmental Activities", "Psychomotor and Creative Activities", "Religious Education"},
			upperCategory: {"English", "Kiswahili", "Mathematics", "Science and Technology", "Social Studies", "CRE/IRE", "Home Science", "Agriculture", "Art and Craft", "Music", "Physical and Health Education"},
		},
		GradingBands: bandsCBC,
		Lists: map[string][]string{
			"competencies": competencies,
			"core_values":  coreValues,
		},
	}}
}

func (s *systemCBC) Profile() *Profile { return s.profile }

// Grade also attaches the competency vector. The vector is a presentation
// placeholder: each competency is the base score with random jitter in
// [-5, +5], clamped to [0, 100], so it differs on every call.
func (s *systemCBC) Grade(score float64, subject, level string, r Rand) schema.GradeResult {
	b := lookupBand(s.profile.GradingBands, score)
	g := bandResult(schema.CBCSystem, b, score, subject, level)
	g.Remark = b.Label
	g.Code = b.Code
	g.Color = b.Color
	g.LevelCategory = cbcLevelCategory(level)
	g.Competencies = competencyVector(score, r)
	return g
}

func cbcLevelCategory(level string) string {
	if _, ok := upperCBCLevels[level]; ok {
		return upperCategory
	}
	return lowerCategory
}

func competencyVector(score float64, r Rand) []schema.CompetencyScore {
	out := make([]schema.CompetencyScore, 0, len(competencies))
	for _, name := range competencies {
		jitter := r.Float64()*10 - 5
		out = append(out, schema.CompetencyScore{
			Name:  name,
			Score: schema.Round(schema.Clamp(score+jitter, 0, 100), 1),
		})
	}
	return out
}

func competencyDescriptor(score float64) string {
	switch {
	case score >= 80:
		return "Exceeds Expectations"
	case score >= 60:
		return "Meets Expectations"
	case score >= 40:
		return "Approaching Expectations"
	default:
		return "Below Expectations"
	}
}

// Report averages each subject, rates competencies and core values and
// decides promotion.
func (s *systemCBC) Report(e *Engine, card *schema.ReportCard, records []schema.AssessmentRecord) {
	comments := &schema.ReportComments{}
	var averages []float64
	for _, sub := range groupBySubject(records) {
		avg := algo.Mean(sub.scores)
		g := s.Grade(avg, sub.name, card.Student.Level, e.rand)
		g.Competencies = nil
		averages = append(averages, avg)
		card.Subjects = append(card.Subjects, schema.SubjectReport{
			Subject:     sub.name,
			Average:     schema.Round(avg, 1),
			Assessments: len(sub.scores),
			Result:      g,
		})
		switch g.Code {
		case "EE":
			comments.Strengths = append(comments.Strengths, sub.name)
		case "AE", "BE":
			comments.Improvements = append(comments.Improvements, sub.name)
		}
	}

	for _, name := range competencies {
		score := float64(60 + e.rand.IntN(30))
		card.Competencies = append(card.Competencies, schema.RatedItem{
			Name:   name,
			Score:  score,
			Rating: competencyDescriptor(score),
		})
	}
	for _, name := range coreValues {
		card.Values = append(card.Values, schema.RatedItem{
			Name:   name,
			Rating: valueRatings[e.rand.IntN(len(valueRatings))],
		})
	}

	card.OverallScore = schema.Round(algo.Mean(averages), 1)
	card.NextLevel = nextLevel(levelsCBC, card.Student.Level)
	if len(averages) > 0 && card.OverallScore >= 40 {
		card.PromotionStatus = "Progressing"
		comments.Overall = "Progressing well across learning areas"
	} else {
		card.PromotionStatus = "Needs Support"
		comments.Overall = "Requires additional support before the next level"
	}
	card.Comments = comments
}

// nextLevel returns the level after current, or "" at the end of the list or when unknown.
func nextLevel(levels []string, current string) string {
	i := slices.Index(levels, current)
	if i < 0 || i+1 >= len(levels) {
		return ""
	}
	return levels[i+1]
}
