package importer

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constRand always draws the same suffix.
type constRand int

func (r constRand) IntN(int) int { return int(r) }

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
}

func TestIDGenerator_Format(t *testing.T) {
	g := NewIDGenerator("", 0, rand.New(rand.NewPCG(1, 2)), fixedClock)
	pattern := regexp.MustCompile(`^STU-2024-[1-9]\d{3}$`)

	seen := make(map[string]struct{})
	for range 50 {
		id, err := g.Next(context.Background(), nil)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.True(t, g.Issued(id))
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 50, "identifiers are never reissued")
}

func TestIDGenerator_SkipsTaken(t *testing.T) {
	draws := []int{1, 1, 2}
	i := 0
	r := randFunc(func(int) int {
		n := draws[i%len(draws)]
		i++
		return n
	})
	g := NewIDGenerator("PAR", 10, r, fixedClock)

	taken := func(_ context.Context, id string) (bool, error) {
		return id == "PAR-2024-1001", nil
	}
	id, err := g.Next(context.Background(), taken)
	require.NoError(t, err)
	assert.Equal(t, "PAR-2024-1002", id)
}

func TestIDGenerator_Exhausted(t *testing.T) {
	g := NewIDGenerator("STU", 5, constRand(0), fixedClock)

	id, err := g.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "STU-2024-1000", id)

	_, err = g.Next(context.Background(), nil)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)

	calls := 0
	fresh := NewIDGenerator("STU", 5, constRand(7), fixedClock)
	_, err = fresh.Next(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, 5, calls)
}

func TestIDGenerator_TakenError(t *testing.T) {
	g := NewIDGenerator("STU", 5, constRand(3), fixedClock)
	boom := errors.New("connection reset")
	_, err := g.Next(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.Issued("STU-2024-1003"))
}

func TestIDGenerator_Reserve(t *testing.T) {
	g := NewIDGenerator("STU", 3, constRand(5), fixedClock)
	g.Reserve("STU-2024-1005")
	_, err := g.Next(context.Background(), nil)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}

type randFunc func(int) int

func (f randFunc) IntN(n int) int { return f(n) }
