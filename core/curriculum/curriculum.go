// Package curriculum converts raw scores into curriculum-specific grades,
// aggregates, predictions and report cards.
//
// Each supported curriculum is a System registered in a Catalog keyed by
// its code. Adding a curriculum means adding one System, not editing a switch.
package curriculum

import (
	"math"

	"github.com/huangsam/elimu/schema"
)

// Rand is the randomness source used by presentation heuristics such as the
// CBC competency vector. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Profile is the read-only reference data of one curriculum.
type Profile struct {
	Code   schema.CurriculumCode
	Name   string
	Levels []string

	// SubjectsByLevelCategory lists the recommended subjects per level grouping.
	SubjectsByLevelCategory map[string][]string

	// GradingBands is the primary band table, highest band first.
	GradingBands []schema.Band

	// SpecialMetrics holds secondary tables such as GCSE, A-Level or AP exam bands.
	SpecialMetrics map[string][]schema.Band

	// Lists holds named reference lists such as competencies or core values.
	Lists map[string][]string
}

// System is the grading strategy of one curriculum.
type System interface {
	// Profile returns the reference data the system grades with.
	Profile() *Profile

	// Grade converts a score into a grade. It never panics, whatever the score.
	Grade(score float64, subject, level string, r Rand) schema.GradeResult

	// Report fills the curriculum-specific sections of a report card.
	Report(e *Engine, card *schema.ReportCard, records []schema.AssessmentRecord)
}

// Catalog maps curriculum codes to their systems. It is built once and never mutated.
type Catalog map[schema.CurriculumCode]System

// DefaultCatalog returns a catalog with all four supported curricula.
func DefaultCatalog() Catalog {
	return Catalog{
		schema.System844:      newSystem844(),
		schema.CBCSystem:      newSystemCBC(),
		schema.BritishSystem:  newSystemBritish(),
		schema.AmericanSystem: newSystemAmerican(),
	}
}

// Lookup returns the system for code, falling back to 8-4-4 for unknown codes.
func (c Catalog) Lookup(code schema.CurriculumCode) System {
	if s, ok := c[code]; ok {
		return s
	}
	if s, ok := c[schema.System844]; ok {
		return s
	}
	return newSystem844()
}

// lookupBand returns the first band, scanning from the top, whose minimum the
// score reaches. Scores between two integer bands therefore take the lower
// band, and scores below every minimum (or NaN) take the lowest band.
func lookupBand(bands []schema.Band, score float64) schema.Band {
	if !math.IsNaN(score) {
		for _, b := range bands {
			if score >= b.Min {
				return b
			}
		}
	}
	return bands[len(bands)-1]
}

// findBand returns the band labelled label.
func findBand(bands []schema.Band, label string) (schema.Band, bool) {
	for _, b := range bands {
		if b.Label == label {
			return b, true
		}
	}
	return schema.Band{}, false
}

// nextBandUp returns the band immediately above b, or b itself at the top.
func nextBandUp(bands []schema.Band, label string) schema.Band {
	for i, b := range bands {
		if b.Label == label {
			if i == 0 {
				return b
			}
			return bands[i-1]
		}
	}
	return bands[0]
}

// bandResult builds the common part of a GradeResult.
func bandResult(code schema.CurriculumCode, b schema.Band, score float64, subject, level string) schema.GradeResult {
	return schema.GradeResult{
		System:  code,
		Subject: subject,
		Level:   level,
		Score:   score,
		Grade:   b.Label,
		Points:  b.Points,
		Remark:  b.Remark,
		BandMin: b.Min,
		BandMax: b.Max,
	}
}
