package curriculum

import (
	"math/rand/v2"
	"time"

	"github.com/huangsam/elimu/schema"
)

// globalRand draws from the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Engine grades scores and builds analytics for one selected curriculum.
// An Engine is immutable after construction and safe for concurrent use
// as long as its Rand is.
type Engine struct {
	catalog Catalog
	system  System
	rand    Rand
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the randomness source used for competency and value ratings.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithClock injects the clock used to date report cards.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCatalog replaces the default curriculum catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// NewEngine creates an engine for the given curriculum code.
// Unknown codes fall back to the 8-4-4 system instead of failing.
func NewEngine(code schema.CurriculumCode, opts ...Option) *Engine {
	e := &Engine{rand: globalRand{}, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	e.system = e.catalog.Lookup(code)
	return e
}

// Code returns the curriculum the engine actually grades with.
func (e *Engine) Code() schema.CurriculumCode {
	return e.system.Profile().Code
}

// Profile returns the reference data of the selected curriculum.
func (e *Engine) Profile() *Profile {
	return e.system.Profile()
}

// CalculateGrade grades a single score. Subject and level may be empty.
func (e *Engine) CalculateGrade(score float64, subject, level string) schema.GradeResult {
	return e.system.Grade(score, subject, level, e.rand)
}

// GradeRecords grades each record with its own subject, level and AP flag.
func (e *Engine) GradeRecords(records []schema.AssessmentRecord) []schema.GradeResult {
	out := make([]schema.GradeResult, 0, len(records))
	for _, r := range records {
		g := e.CalculateGrade(r.Score, r.Subject, r.Level)
		if r.IsAP && !g.IsAP && e.Code() == schema.AmericanSystem {
			g = applyAP(g)
		}
		out = append(out, g)
	}
	return out
}
