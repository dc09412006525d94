package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/elimu/core/importer"
)

// entry is one "Subject:score" command argument.
type entry struct {
	subject string
	score   float64
}

// parseScore reads one score argument. Unlike spreadsheet cells, an
// unreadable argument is an error instead of a default.
func parseScore(arg string) (float64, error) {
	score, warning := importer.ParseScore(arg)
	if warning != "" {
		return 0, fmt.Errorf("invalid score %q: %s", arg, warning)
	}
	return score, nil
}

func parseScores(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one score is required")
	}
	scores := make([]float64, len(args))
	for i, a := range args {
		s, err := parseScore(a)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// parseEntries reads "Subject:score" arguments. A bare score has no subject.
func parseEntries(args []string) ([]entry, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one score is required")
	}
	entries := make([]entry, len(args))
	for i, a := range args {
		subject, raw := "", a
		if idx := strings.LastIndex(a, ":"); idx >= 0 {
			subject, raw = strings.TrimSpace(a[:idx]), a[idx+1:]
		}
		s, err := parseScore(raw)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{subject: importer.NormalizeSubject(subject), score: s}
	}
	return entries, nil
}
