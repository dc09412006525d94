package importer

import (
	"slices"
	"strings"
	"testing"

	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource(t *testing.T) {
	input := "\ufeffName,Subject,Marks,Marks\n" +
		"Amani Otieno,Math,78,\n" +
		",,,\n" +
		"Baraka Mwangi,Eng,,64\n" +
		"Chebet Kiprono,Bio\n"

	src, err := NewCSVSource(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Subject", "Marks", "Marks"}, src.Headers())

	rows := slices.Collect(src.Rows())
	require.NoError(t, src.Err())
	require.Len(t, rows, 3, "blank lines are skipped")

	assert.Equal(t, "78", rows[0].Text("Marks"))
	assert.Equal(t, "64", rows[1].Text("Marks"), "first non-empty duplicate wins")
	assert.Equal(t, "", rows[2].Text("Marks"), "short rows are tolerated")
	assert.Equal(t, "Bio", rows[2].Text("Subject"))
}

func TestCSVSource_Empty(t *testing.T) {
	_, err := NewCSVSource(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestCSVSource_EarlyStop(t *testing.T) {
	src, err := NewCSVSource(strings.NewReader("Name\nA\nB\nC\n"))
	require.NoError(t, err)

	var names []string
	for row := range src.Rows() {
		names = append(names, row.Text("Name"))
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestReports(t *testing.T) {
	s := schema.ImportSummary{
		Rows: []schema.RowResult{
			{Line: 1, Date: "2024-03-05", Outcome: schema.CreatedOutcome, Name: "Amani", Message: "STU-2024-1234"},
			{Line: 2, Date: "2024-03-05", Outcome: schema.SkippedOutcome, Name: "Baraka", Message: "exists"},
			{Line: 3, Date: "2024-03-05", Outcome: schema.FailedOutcome, Name: "Chebet", Message: "student not found: Chebet"},
		},
	}

	errs := ErrorReport(s)
	require.Len(t, errs, 1)
	assert.Equal(t, "3", errs[0][0])
	assert.Equal(t, "error", errs[0][4])
	assert.Len(t, errs[0], len(ErrorReportHeader))

	ok := SuccessReport(s)
	require.Len(t, ok, 1)
	assert.Equal(t, []string{"1", "Amani", "STU-2024-1234", "2024-03-05", "Created"}, ok[0])
}
