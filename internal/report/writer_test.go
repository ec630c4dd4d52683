package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathbatch/internal/analyze"
	"pathbatch/internal/model"
)

func sampleResults() *analyze.Results {
	return &analyze.Results{
		Config: model.DefaultConfig(),
		Warnings: []analyze.WarningRow{{
			Tag: "WARNING", Message: "Directory local file count over limit",
			FileLimit: 30000, Path: `X\BIG`,
			LocalPlusChild: 31000, SubdirPlusChild: 0, TotalPlusChild: 31000,
		}},
		Trimmed: []analyze.TrimRow{{
			Depth: 2, FileLimit: 30000, Path: `X\DEEP`, TrimmedFolder: "DEEP",
			LocalPlusChild: 12, TotalPlusChild: 12, LocalPathLength: 6,
		}},
		Batches: []analyze.BatchRow{{
			Depth: 1, FileLimit: 30000, Path: "X",
			LocalPlusChild: 5, SubdirPlusChild: 7, TotalPlusChild: 12,
			HasOutliers1: true, HasShortened: true,
		}},
		Outliers1: []analyze.Outlier1Row{{Depth: 2, Length: 200, Filename: "f", Path: `X\A`}},
		Outliers2: []analyze.Outlier2Row{{Depth: 2, Length: 260, ParentFile: `A\f`, Path: `X\A`}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteAllCreatesFiveReports(t *testing.T) {
	dir := t.TempDir()
	ts := Timestamp(time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC))

	paths, err := WriteAll(sampleResults(), dir, ts)
	require.NoError(t, err)

	for _, p := range []string{paths.Batch, paths.Outliers1, paths.Outliers2, paths.Shortened, paths.Warnings} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	assert.Equal(t, filepath.Join(dir, "batch_ts20260826T093000.csv"), paths.Batch)
}

func TestWriteAllHeaders(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteAll(sampleResults(), dir, Timestamp(time.Now()))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"TAG", "Message", "File Limit", "Path", "Num Local Files",
			"Num Sub-directory Files", "Total Files"},
		readCSV(t, paths.Warnings)[0])
	assert.Equal(t,
		[]string{"Depth", "Filename Length", "Filename", "Directory Path"},
		readCSV(t, paths.Outliers1)[0])
	assert.Equal(t,
		[]string{"Depth", "Parent File Path Length", "Parent File Path", "Directory Path"},
		readCSV(t, paths.Outliers2)[0])

	batch := readCSV(t, paths.Batch)
	assert.Equal(t,
		[]string{"Depth", "File Limit", "Directory Path", "Num Local Files",
			"Num Sub-directory Files", "Total Files", "Local Path Length",
			"Longest Filename", "Longest Filepath", "Has Outliers 1",
			"Has Outliers 2", "Has Shortened Paths", "Num Local Outliers 1",
			"Num Local Outliers 2"},
		batch[0])
	require.Len(t, batch, 2)
	assert.Equal(t,
		[]string{"1", "30000", "X", "5", "7", "12", "0", "0", "0",
			"true", "false", "true", "0", "0"},
		batch[1])

	shortened := readCSV(t, paths.Shortened)
	assert.Equal(t,
		[]string{"Depth", "File Limit", "Directory Path", "Trimmed Folder",
			"Num Warnings (Cannot Shorten)", "Num Local Files",
			"Num Sub-directory Files", "Total Files", "Local Path Length",
			"Longest Filename", "Longest Filepath", "Has Outliers 1",
			"Has Outliers 2", "Num Local Outliers 1", "Num Local Outliers 2"},
		shortened[0])
}

func TestWriteAllEmptyResultsStillWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteAll(&analyze.Results{}, dir, Timestamp(time.Now()))
	require.NoError(t, err)
	assert.Len(t, readCSV(t, paths.Warnings), 1)
	assert.Len(t, readCSV(t, paths.Batch), 1)
}

func TestRunDirIsUnixTimeNextToInput(t *testing.T) {
	at := time.Unix(1756200000, 0)
	got := RunDir(filepath.Join("data", "listing.tsv"), at)
	assert.Equal(t, filepath.Join("data", "1756200000"), got)
}

func TestTimestampFormat(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "ts20260102T030405", Timestamp(at))
}
