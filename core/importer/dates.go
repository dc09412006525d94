package importer

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first wins over month-first for
// ambiguous values such as 03/04/2024, which is read as 3 April. Unpadded
// layouts also accept zero-padded input.
var dateLayouts = []string{
	"2006-1-2",        // YYYY-MM-DD
	"2/1/2006",        // DD/MM/YYYY
	"1/2/2006",        // MM/DD/YYYY
	"2-1-2006",        // DD-MM-YYYY
	"1-2-2006",        // MM-DD-YYYY
	"2006/1/2",        // YYYY/MM/DD
	"2.1.2006",        // DD.MM.YYYY
	"January 2, 2006", // MMMM DD, YYYY
	"2 Jan 2006",      // DD MMM YYYY
	"Jan 2, 2006",     // MMM DD, YYYY
}

// Spreadsheet serial dates count days from 1900-01-01 with two days of
// offset for the 1900 leap-year quirk. Smaller numbers are not treated as dates.
const (
	minSerialDate = 40000
	maxSerialDate = 2958465 // 9999-12-31
)

var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDate reads a calendar date in any supported layout, then as a
// spreadsheet serial number. It reports false when nothing matches.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return parseSerialDate(v)
}

// parseSerialDate reads the leading digits of v as a serial day number.
func parseSerialDate(v string) (time.Time, bool) {
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 || end > 7 {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil || n <= minSerialDate || n > maxSerialDate {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, n-2), true
}
