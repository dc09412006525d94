// Package importer turns heterogeneous spreadsheet rows into ordered student,
// assessment and attendance records and applies them to a roster.
package importer

import (
	"slices"
	"strings"

	"github.com/huangsam/elimu/schema"
)

// headerSynonyms maps squashed header spellings to canonical keys.
var headerSynonyms = map[string]string{
	"fullname":     "name",
	"studentname":  "name",
	"student":      "name",
	"pupil":        "name",
	"child":        "name",
	"givenname":    "firstname",
	"surname":      "lastname",
	"id":           "elimuid",
	"studentid":    "elimuid",
	"admission":    "elimuid",
	"regno":        "elimuid",
	"registration": "elimuid",
	"class":        "grade",
	"form":         "grade",
	"year":         "grade",
	"level":        "grade",
	"mark":         "score",
	"marks":        "score",
	"grade":        "score",
	"result":       "score",
	"points":       "score",
	"attend":       "status",
	"attendance":   "status",
	"present":      "status",
	"subjectname":  "subject",
	"course":       "subject",
	"ap":           "isap",
	"apcourse":     "isap",
}

// NormalizeHeader lower-cases h, strips everything outside [a-z0-9] and maps
// the result through the synonym table. Unknown headers pass through squashed.
//
// The table is applied once: "Class" becomes "grade" and "Grade" becomes
// "score", so a class column must not be headed "Grade".
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	key := b.String()
	if canonical, ok := headerSynonyms[key]; ok {
		return canonical
	}
	return key
}

// NormalizeRow rekeys a raw row by normalized headers. When two headers
// collapse to the same key, the first non-empty value wins in sorted key order
// of the original headers so the result does not depend on map iteration.
func NormalizeRow(row schema.RawRow) schema.RawRow {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(schema.RawRow, len(row))
	for _, k := range keys {
		nk := NormalizeHeader(k)
		if nk == "" {
			continue
		}
		if existing := out.Text(nk); existing != "" {
			continue
		}
		out[nk] = row[k]
	}
	if out.Text("name") == "" {
		first, last := out.Text("firstname"), out.Text("lastname")
		if full := strings.TrimSpace(first + " " + last); full != "" {
			out["name"] = full
		}
	}
	return out
}

// ValidateHeaders checks that the headers of an upload carry the columns its
// kind requires. A name column is also satisfied by a first-name and
// last-name pair, and for marks and attendance by an ELIMUID column. Any of
// the recognized date columns satisfies a date requirement.
func ValidateHeaders(kind schema.ImportKind, headers []string) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[NormalizeHeader(h)] = struct{}{}
	}
	has := func(k string) bool {
		_, ok := present[k]
		return ok
	}

	var missing []string
	for _, col := range schema.RequiredColumns(kind) {
		if has(col) {
			continue
		}
		if col == "name" && ((has("firstname") && has("lastname")) || (kind != schema.StudentImport && has("elimuid"))) {
			continue
		}
		if col == "date" && slices.ContainsFunc(dateFields, has) {
			continue
		}
		missing = append(missing, col)
	}
	if len(missing) > 0 {
		return missingColumnsError(missing)
	}
	return nil
}
