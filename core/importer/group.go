package importer

import (
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/elimu/schema"
)

// dateFields are the normalized columns that can date a row, in priority order.
var dateFields = []string{"date", "assessmentdate", "examdate", "testdate", "attendancedate"}

// lineRow is a normalized row with its 1-based position in the input.
type lineRow struct {
	line  int
	row   schema.RawRow
	dated bool
}

// bucket holds the rows that share one calendar day.
type bucket struct {
	key  string
	date time.Time
	rows []lineRow
}

// rowDate returns the first parseable date among dateFields.
func rowDate(row schema.RawRow) (time.Time, bool) {
	for _, f := range dateFields {
		if v := row.Text(f); v != "" {
			if d, ok := ParseDate(v); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// group normalizes every row and buckets it by day in ascending order.
// Undated rows land in today's bucket. Students are never date bucketed,
// they form a single bucket in input order.
func (im *Importer) group(ctx context.Context, kind schema.ImportKind, rows iter.Seq[schema.RawRow]) ([]*bucket, error) {
	today := schema.Day(im.now())
	byKey := make(map[string]*bucket)
	line := 0
	for raw := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		row := NormalizeRow(raw)

		date, dated := today, false
		if kind != schema.StudentImport {
			if d, ok := rowDate(row); ok {
				date, dated = d, true
			}
		}
		key := schema.DateKey(date)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key, date: date}
			byKey[key] = b
		}
		b.rows = append(b.rows, lineRow{line: line, row: row, dated: dated})
	}

	buckets := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	slices.SortFunc(buckets, func(a, b *bucket) int {
		return a.date.Compare(b.date)
	})
	return buckets, nil
}

// prepareBucket normalizes the rows of one bucket on a bounded worker pool.
// Results keep input order. Rows not reached before ctx is done are left zero.
func (im *Importer) prepareBucket(ctx context.Context, kind schema.ImportKind, b *bucket) []prepared {
	out := make([]prepared, len(b.rows))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(im.workers, len(b.rows)) {
		wg.Go(func() {
			for i := range jobs {
				out[i] = im.prepare(kind, b.rows[i], b.date)
			}
		})
	}

feed:
	for i := range b.rows {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return out
}

func (im *Importer) prepare(kind schema.ImportKind, r lineRow, date time.Time) prepared {
	p := prepared{line: r.line, date: schema.DateKey(date)}
	switch kind {
	case schema.StudentImport:
		im.prepareStudent(&p, r.row)
	case schema.MarksImport:
		im.prepareAssessment(&p, r.row, date, r.dated)
	case schema.AttendanceImport:
		im.prepareAttendance(&p, r.row, date, r.dated)
	}
	return p
}
