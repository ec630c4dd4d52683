// Package report serializes analysis results to the five per-run CSV
// files: batch list, two outlier lists, the shortened (trim) list and the
// warnings list. Rows are always UTF-8 regardless of the input encoding.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pathbatch/internal/analyze"
)

// Report file headers. The columns are fixed; downstream tooling matches
// on them, so they must be reproduced exactly.
var (
	warningsHeader = []string{"TAG", "Message", "File Limit", "Path",
		"Num Local Files", "Num Sub-directory Files", "Total Files"}

	trimHeader = []string{"Depth", "File Limit", "Directory Path",
		"Trimmed Folder", "Num Warnings (Cannot Shorten)", "Num Local Files",
		"Num Sub-directory Files", "Total Files", "Local Path Length",
		"Longest Filename", "Longest Filepath", "Has Outliers 1",
		"Has Outliers 2", "Num Local Outliers 1", "Num Local Outliers 2"}

	batchHeader = []string{"Depth", "File Limit", "Directory Path",
		"Num Local Files", "Num Sub-directory Files", "Total Files",
		"Local Path Length", "Longest Filename", "Longest Filepath",
		"Has Outliers 1", "Has Outliers 2", "Has Shortened Paths",
		"Num Local Outliers 1", "Num Local Outliers 2"}

	outliers1Header = []string{"Depth", "Filename Length", "Filename",
		"Directory Path"}

	outliers2Header = []string{"Depth", "Parent File Path Length",
		"Parent File Path", "Directory Path"}
)

// Paths lists where one run's artifacts were written.
type Paths struct {
	Dir       string
	Batch     string
	Outliers1 string
	Outliers2 string
	Shortened string
	Warnings  string
}

// Timestamp formats a run time the way report filenames embed it.
func Timestamp(t time.Time) string {
	return t.Format("ts20060102T150405")
}

// RunDir returns the per-run output directory: a unix-time-named folder
// next to the input listing.
func RunDir(inputFile string, t time.Time) string {
	return filepath.Join(filepath.Dir(inputFile), strconv.FormatInt(t.Unix(), 10))
}

// WriteAll writes the five report files into dir. Every opened handle is
// flushed and closed on every exit path, including errors; the first error
// encountered is returned after cleanup.
func WriteAll(res *analyze.Results, dir, timestamp string) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output dir: %w", err)
	}
	name := func(kind string) string {
		return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", kind, timestamp))
	}
	paths := Paths{
		Dir:       dir,
		Batch:     name("batch"),
		Outliers1: name("outliers1"),
		Outliers2: name("outliers2"),
		Shortened: name("shortened"),
		Warnings:  name("warnings"),
	}
	err := writeFile(paths.Warnings, warningsHeader, len(res.Warnings), func(i int) []string {
		return warningRecord(res.Warnings[i])
	})
	if err == nil {
		err = writeFile(paths.Shortened, trimHeader, len(res.Trimmed), func(i int) []string {
			return trimRecord(res.Trimmed[i])
		})
	}
	if err == nil {
		err = writeFile(paths.Batch, batchHeader, len(res.Batches), func(i int) []string {
			return batchRecord(res.Batches[i])
		})
	}
	if err == nil {
		err = writeFile(paths.Outliers1, outliers1Header, len(res.Outliers1), func(i int) []string {
			o := res.Outliers1[i]
			return []string{itoa(o.Depth), itoa(o.Length), o.Filename, o.Path}
		})
	}
	if err == nil {
		err = writeFile(paths.Outliers2, outliers2Header, len(res.Outliers2), func(i int) []string {
			o := res.Outliers2[i]
			return []string{itoa(o.Depth), itoa(o.Length), o.ParentFile, o.Path}
		})
	}
	return paths, err
}

// writeFile writes one CSV file: header then n rows. The deferred close
// guarantees the handle is released even when a row write fails.
func writeFile(path string, header []string, n int, row func(i int) []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	defer func() {
		w.Flush()
		if ferr := w.Error(); ferr != nil && err == nil {
			err = fmt.Errorf("flushing %s: %w", path, ferr)
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func warningRecord(r analyze.WarningRow) []string {
	return []string{r.Tag, r.Message, itoa(r.FileLimit), r.Path,
		itoa(r.LocalPlusChild), itoa(r.SubdirPlusChild), itoa(r.TotalPlusChild)}
}

func trimRecord(r analyze.TrimRow) []string {
	return []string{itoa(r.Depth), itoa(r.FileLimit), r.Path, r.TrimmedFolder,
		itoa(r.NumUnableToShorten), itoa(r.LocalPlusChild),
		itoa(r.SubdirPlusChild), itoa(r.TotalPlusChild),
		itoa(r.LocalPathLength), itoa(r.LongestFnLength),
		itoa(r.LongestFpLength), btoa(r.HasOutliers1), btoa(r.HasOutliers2),
		itoa(r.NumLocalOutliers1), itoa(r.NumLocalOutliers2)}
}

func batchRecord(r analyze.BatchRow) []string {
	return []string{itoa(r.Depth), itoa(r.FileLimit), r.Path,
		itoa(r.LocalPlusChild), itoa(r.SubdirPlusChild),
		itoa(r.TotalPlusChild), itoa(r.LocalPathLength),
		itoa(r.LongestFnLength), itoa(r.LongestFpLength),
		btoa(r.HasOutliers1), btoa(r.HasOutliers2), btoa(r.HasShortened),
		itoa(r.NumLocalOutliers1), itoa(r.NumLocalOutliers2)}
}

func itoa(n int) string { return strconv.Itoa(n) }

func btoa(b bool) string { return strconv.FormatBool(b) }
