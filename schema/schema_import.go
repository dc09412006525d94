package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawRow is one spreadsheet line keyed by its original (untrusted) header.
// Values are usually strings but numeric cells are accepted as-is.
type RawRow map[string]any

// Text returns the cell for key as trimmed text, or "" when absent.
func (r RawRow) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// FirstText returns the first non-empty cell among keys.
func (r RawRow) FirstText(keys ...string) string {
	for _, k := range keys {
		if s := r.Text(k); s != "" {
			return s
		}
	}
	return ""
}

// RowOutcome classifies how an import applied a row.
type RowOutcome string

// Row outcomes.
const (
	CreatedOutcome RowOutcome = "created"
	SkippedOutcome RowOutcome = "skipped"
	FailedOutcome  RowOutcome = "failed"
)

// RowResult records what happened to one input row.
type RowResult struct {
	Line    int        `json:"line"`
	Date    string     `json:"date"`
	Outcome RowOutcome `json:"outcome"`
	Name    string     `json:"name,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ImportSummary is the run summary of one import.
// Processed always equals Created + Skipped + Failed.
type ImportSummary struct {
	RunID        string        `json:"run_id"`
	Kind         ImportKind    `json:"kind"`
	School       string        `json:"school"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Processed    int           `json:"processed"`
	Created      int           `json:"created"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	Errors       []string      `json:"errors"`
	Warnings     []string      `json:"warnings"`
	GeneratedIDs []string      `json:"generated_ids"`
	DateBuckets  []string      `json:"date_buckets"`
	Rows         []RowResult   `json:"rows"`
}
