package importer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrIDSpaceExhausted is returned when no free identifier was found within the retry budget.
var ErrIDSpaceExhausted = errors.New("no free identifier within retry budget")

// Identifier defaults.
const (
	DefaultIDPrefix     = "STU"
	DefaultParentPrefix = "PAR"
	DefaultIDRetries    = 100
)

// Rand draws identifier suffixes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// TakenFunc reports whether an identifier is already in use by the roster.
type TakenFunc func(ctx context.Context, id string) (bool, error)

// IDGenerator issues random PREFIX-YEAR-NNNN identifiers. Each candidate is
// checked against the identifiers it already issued and against the roster.
// Collisions are only retried, so the space of 9000 suffixes per year and
// prefix is a hard limit.
type IDGenerator struct {
	prefix  string
	retries int
	rand    Rand
	now     func() time.Time

	mu     sync.Mutex
	issued map[string]struct{}
}

// NewIDGenerator creates a generator. A nil rand uses the global source and a
// non-positive retries uses DefaultIDRetries.
func NewIDGenerator(prefix string, retries int, r Rand, now func() time.Time) *IDGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	if retries <= 0 {
		retries = DefaultIDRetries
	}
	if r == nil {
		r = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{
		prefix:  prefix,
		retries: retries,
		rand:    r,
		now:     now,
		issued:  make(map[string]struct{}),
	}
}

// Next returns a collision-free identifier or ErrIDSpaceExhausted.
func (g *IDGenerator) Next(ctx context.Context, taken TakenFunc) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	year := g.now().Year()
	for range g.retries {
		candidate := fmt.Sprintf("%s-%d-%d", g.prefix, year, 1000+g.rand.IntN(9000))
		if _, ok := g.issued[candidate]; ok {
			continue
		}
		if taken != nil {
			used, err := taken(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("check identifier %s: %w", candidate, err)
			}
			if used {
				continue
			}
		}
		g.issued[candidate] = struct{}{}
		return candidate, nil
	}
	return "", fmt.Errorf("%s after %d attempts: %w", g.prefix, g.retries, ErrIDSpaceExhausted)
}

// Reserve marks an externally supplied identifier as issued.
func (g *IDGenerator) Reserve(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[id] = struct{}{}
}

// Issued reports whether the generator has issued or reserved id.
func (g *IDGenerator) Issued(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.issued[id]
	return ok
}
