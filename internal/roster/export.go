package roster

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/elimu/internal/parquet"
)

// ExportParquet writes the academic records and import runs of store to
// <outputFile>.academic_records.parquet and <outputFile>.import_runs.parquet.
// Progress lines go to w.
func ExportParquet(ctx context.Context, store Store, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get roster status: %w", err)
	}
	if status.TableSizes[academicRecordsTable] == 0 && status.TotalRuns == 0 {
		return errors.New("no roster data found to export")
	}
	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	records, err := store.AcademicRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve academic records: %w", err)
	}
	runs, err := store.ImportRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve import runs: %w", err)
	}

	recordsFile := outputFile + ".academic_records.parquet"
	if err := parquet.WriteAcademicRecordsParquet(parquet.ConvertAcademicRecordRows(records), recordsFile); err != nil {
		return fmt.Errorf("failed to write academic records: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d academic records to: %s\n", len(records), recordsFile)

	runsFile := outputFile + ".import_runs.parquet"
	if err := parquet.WriteImportRunsParquet(parquet.ConvertImportRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write import runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d import runs to: %s\n", len(runs), runsFile)
	return nil
}
