package algo

import (
	"sort"

	"github.com/huangsam/elimu/schema"
)

// RankStudents sorts students by mean score in descending order and returns
// the top 'limit' entries. Ties keep their input order. A non-positive
// limit returns every student.
func RankStudents(students []schema.StudentMean, limit int) []schema.StudentMean {
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].Mean > students[j].Mean
	})
	if limit > 0 && len(students) > limit {
		return students[:limit]
	}
	return students
}

// Percentile returns the share of the class (0-100) that a 1-based rank beats or equals.
func Percentile(rank, size int) float64 {
	if size <= 0 || rank <= 0 {
		return 0
	}
	return schema.Round(float64(size-rank+1)/float64(size)*100, 1)
}
