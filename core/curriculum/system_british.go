package curriculum

import (
	"fmt"

	"github.com/huangsam/elimu/core/algo"
	"github.com/huangsam/elimu/schema"
)

// Qualification names.
const (
	gcseQualification   = "GCSE"
	aLevelQualification = "A-Level"
)

// defaultKeyStage applies when the level is missing or not a British year.
const defaultKeyStage = "KS3"

type systemBritish struct {
	profile *Profile
}

func newSystemBritish() *systemBritish {
	return &systemBritish{profile: &Profile{
		Code:   schema.BritishSystem,
		Name:   "British Curriculum",
		Levels: levelsBritish,
		SubjectsByLevelCategory: map[string][]string{
			"core":       {"English", "Mathematics", "Science"},
			"foundation": {"Art and Design", "Citizenship", "Computing", "Design and Technology", "Geography", "History", "Languages", "Music", "Physical Education"},
		},
		GradingBands: bandsNarrative,
		SpecialMetrics: map[string][]schema.Band{
			gcseQualification:   bandsGCSE,
			aLevelQualification: bandsALevel,
		},
	}}
}

func (s *systemBritish) Profile() *Profile { return s.profile }

// KeyStage maps a British year level to its key stage, defaulting to KS3.
func KeyStage(level string) string {
	if ks, ok := keyStages[level]; ok {
		return ks
	}
	return defaultKeyStage
}

// Grade resolves the key stage first: KS4 grades on the GCSE 9-U scale, KS5 on
// A-Level letters with UCAS tariff and earlier stages on narrative descriptors.
func (s *systemBritish) Grade(score float64, subject, level string, _ Rand) schema.GradeResult {
	ks := KeyStage(level)
	var g schema.GradeResult
	switch ks {
	case "KS4":
		g = bandResult(schema.BritishSystem, lookupBand(bandsGCSE, score), score, subject, level)
		g.Qualification = gcseQualification
	case "KS5":
		b := lookupBand(bandsALevel, score)
		g = bandResult(schema.BritishSystem, b, score, subject, level)
		g.Qualification = aLevelQualification
		g.UCASPoints = b.UCAS
	default:
		g = bandResult(schema.BritishSystem, lookupBand(s.profile.GradingBands, score), score, subject, level)
	}
	g.KeyStage = ks
	g.LevelCategory = ks
	return g
}

// Report averages each subject, adds next-band targets and a UCAS block at KS5.
func (s *systemBritish) Report(e *Engine, card *schema.ReportCard, records []schema.AssessmentRecord) {
	ks := KeyStage(card.Student.Level)
	card.KeyStage = ks
	bands := s.profile.GradingBands
	switch ks {
	case "KS4":
		bands = bandsGCSE
	case "KS5":
		bands = bandsALevel
	}

	grades := make([]schema.GradeResult, 0, len(records))
	comments := &schema.ReportComments{}
	for _, sub := range groupBySubject(records) {
		avg := algo.Mean(sub.scores)
		g := s.Grade(avg, sub.name, card.Student.Level, e.rand)
		grades = append(grades, g)

		target := nextBandUp(bands, g.Grade)
		aim := "Aim for " + target.Label
		if target.Label == g.Grade {
			aim = "Maintain " + g.Grade
		}
		card.Subjects = append(card.Subjects, schema.SubjectReport{
			Subject:     sub.name,
			Average:     schema.Round(avg, 1),
			Assessments: len(sub.scores),
			Result:      g,
			Comment:     fmt.Sprintf("%s - %s", g.Grade, g.Remark),
			Target:      aim,
		})
		if g.Points >= bands[1].Points {
			comments.Strengths = append(comments.Strengths, sub.name)
		} else if g.Points <= bands[len(bands)-2].Points {
			comments.Improvements = append(comments.Improvements, sub.name)
		}
	}

	if ks == "KS5" {
		ucas := CalculateUCASPoints(grades)
		card.UCAS = &ucas
		comments.Overall = "University eligibility: " + ucas.Eligibility
	} else {
		comments.Overall = fmt.Sprintf("%d subjects assessed at %s", len(grades), ks)
	}
	card.Comments = comments
}
