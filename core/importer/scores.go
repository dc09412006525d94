package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/elimu/schema"
)

// defaultScore replaces scores that cannot be interpreted.
const defaultScore = 50.0

// letterScores approximates a numeric score for common letter grades.
var letterScores = map[string]float64{
	"A+": 95, "A": 90, "A-": 87,
	"B+": 85, "B": 80, "B-": 77,
	"C+": 75, "C": 70, "C-": 67,
	"D+": 65, "D": 60, "D-": 57,
	"E": 50, "F": 40,
}

// ParseScore converts a score cell into [0, 100]. It accepts fractions such as
// "45/50", percentages, plain numbers and letter grades. Anything else yields
// 50 together with a warning; the warning is empty when the cell was understood.
func ParseScore(v string) (float64, string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return 0, "empty score, using 0"
	case strings.Contains(v, "/"):
		num, den, ok := strings.Cut(v, "/")
		x, errX := parseFinite(num)
		y, errY := parseFinite(den)
		if !ok || errX != nil || errY != nil || y == 0 {
			return defaultScore, fmt.Sprintf("unreadable fraction %q, using %g", v, defaultScore)
		}
		return schema.Clamp(math.Round(x/y*100), 0, 100), ""
	case strings.HasSuffix(v, "%"):
		x, err := parseFinite(strings.TrimSuffix(v, "%"))
		if err != nil {
			return defaultScore, fmt.Sprintf("unreadable percentage %q, using %g", v, defaultScore)
		}
		return schema.Clamp(x, 0, 100), ""
	}

	if x, err := parseFinite(v); err == nil {
		return schema.Clamp(x, 0, 100), ""
	}
	if s, ok := letterScores[strings.ToUpper(v)]; ok {
		return s, ""
	}
	return defaultScore, fmt.Sprintf("unrecognized score %q, using %g", v, defaultScore)
}

func parseFinite(s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("non-finite score %q", s)
	}
	return x, nil
}
